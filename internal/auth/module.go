package auth

import (
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/todo-web/internal/auth/app/credential"
	"github.com/KasumiMercury/todo-web/internal/auth/app/logout"
	appsession "github.com/KasumiMercury/todo-web/internal/auth/app/session"
	authconfig "github.com/KasumiMercury/todo-web/internal/auth/config"
	sessioncfg "github.com/KasumiMercury/todo-web/internal/auth/config/session"
	domainsession "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
	"github.com/KasumiMercury/todo-web/internal/auth/infra/gotrue"
	sessionjwt "github.com/KasumiMercury/todo-web/internal/auth/infra/jwt"
	"github.com/KasumiMercury/todo-web/internal/auth/infra/local"
	"github.com/KasumiMercury/todo-web/internal/backend"
	"github.com/KasumiMercury/todo-web/internal/observability/logging"
)

const moduleName logging.Module = "auth"

// Provider is everything the module needs from an account provider.
type Provider interface {
	credential.Provider
	appsession.IdentityProvider
	logout.SignOutProvider
}

var (
	_ Provider = (*gotrue.Client)(nil)
	_ Provider = (*local.Provider)(nil)
)

type Repositories struct {
	Sessions domainsession.SessionRepository
	Provider Provider
}

// Module exposes the auth use cases to the web layer.
type Module struct {
	SignIn  credential.SignInUseCase
	SignUp  credential.SignUpUseCase
	Resolve appsession.ResolveSessionUseCase
	Logout  logout.LogoutUseCase
	Session *sessioncfg.Config
}

// NewProvider builds the account provider selected in cfg. backendClient may
// be nil for the local provider.
func NewProvider(cfg *authconfig.AuthConfig, backendClient *backend.Client) (Provider, error) {
	if cfg == nil {
		return nil, ErrConfigMissing
	}

	switch cfg.Provider {
	case authconfig.ProviderLocal:
		slog.Default().Warn("using in-memory auth provider; accounts are lost on restart",
			slog.String("module", string(moduleName)),
		)

		return local.NewProvider(), nil
	case authconfig.ProviderGoTrue:
		if backendClient == nil {
			return nil, ErrBackendMissing
		}

		return gotrue.NewClient(backendClient), nil
	default:
		return nil, fmt.Errorf("%w, got: %q", authconfig.ErrProviderInvalid, cfg.Provider)
	}
}

func NewModule(cfg *authconfig.AuthConfig, repos Repositories) (*Module, error) {
	logger := slog.Default().With(
		slog.String("module", string(moduleName)),
	).WithGroup("auth")

	if cfg == nil || cfg.Session == nil {
		return nil, ErrConfigMissing
	}

	if repos.Sessions == nil {
		return nil, ErrSessionRepoMissing
	}

	if repos.Provider == nil {
		return nil, ErrProviderMissing
	}

	generator := sessionjwt.NewSessionJWTGenerator(cfg.Session)
	validator := sessionjwt.NewSessionJWTValidator(cfg.Session)

	credentials := credential.NewCredentialHandler(repos.Provider, repos.Sessions, generator, cfg.Session)

	module := &Module{
		SignIn:  credentials,
		SignUp:  credentials,
		Resolve: appsession.NewResolveSessionHandler(repos.Sessions, validator, repos.Provider),
		Logout:  logout.NewLogoutHandler(repos.Sessions, validator, repos.Provider),
		Session: cfg.Session,
	}

	logger.Info("auth module initialized", slog.String("provider", string(cfg.Provider)))

	return module, nil
}
