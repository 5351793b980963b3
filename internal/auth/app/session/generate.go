package session

//go:generate mockgen -destination=mock_token_verifier.go -package=session github.com/KasumiMercury/todo-web/internal/auth/app/session TokenVerifier
//go:generate mockgen -destination=mock_identity_provider.go -package=session github.com/KasumiMercury/todo-web/internal/auth/app/session IdentityProvider
