package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicRecoveryHTTP turns a handler panic into a 500 response. The
// connection stays usable; http.ErrAbortHandler is passed through untouched.
func PanicRecoveryHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "panic recovered",
				slog.String("event", "app.panic"),
				slog.Any("error", rec),
				slog.String("stack", string(debug.Stack())),
			)

			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
