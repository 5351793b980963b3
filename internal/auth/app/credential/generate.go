package credential

//go:generate mockgen -destination=mock_provider.go -package=credential . Provider
//go:generate mockgen -destination=mock_session_token_generator.go -package=credential . SessionTokenGenerator
