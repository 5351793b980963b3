package user

import "golang.org/x/oauth2"

// Grant is the outcome of a successful credential check. Token is nil when
// the provider created the account without opening a session, which happens
// while an email confirmation is pending.
type Grant struct {
	User  *User
	Token *oauth2.Token
}

func (g *Grant) HasSession() bool {
	return g != nil && g.Token != nil && g.Token.AccessToken != ""
}
