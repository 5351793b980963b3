package web

import (
	"net/http"

	sessioncfg "github.com/KasumiMercury/todo-web/internal/auth/config/session"
)

type sessionCookies struct {
	cfg *sessioncfg.Config
}

func (c sessionCookies) read(r *http.Request) string {
	cookie, err := r.Cookie(c.cfg.CookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func (c sessionCookies) set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.cfg.Duration.Seconds()),
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c sessionCookies) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
