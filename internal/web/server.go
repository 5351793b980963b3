// Package web serves the HTML pages and form posts of the task list app.
package web

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/KasumiMercury/todo-web/internal/auth"
	appsession "github.com/KasumiMercury/todo-web/internal/auth/app/session"
	"github.com/KasumiMercury/todo-web/internal/health"
	"github.com/KasumiMercury/todo-web/internal/observability/logging"
	"github.com/KasumiMercury/todo-web/internal/observability/middleware"
	"github.com/KasumiMercury/todo-web/internal/task"
	domainuser "github.com/KasumiMercury/todo-web/internal/task/domain/user"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

const moduleName logging.Module = "web"

type Dependencies struct {
	Auth   *auth.Module
	Tasks  *task.Module
	Health *health.Checker
}

type Handler struct {
	auth    *auth.Module
	tasks   *task.Module
	health  *health.Checker
	cookies sessionCookies
	pages   *template.Template
	logger  *slog.Logger
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Auth == nil || deps.Auth.Session == nil {
		return nil, ErrAuthModuleMissing
	}

	if deps.Tasks == nil || deps.Tasks.Views == nil {
		return nil, ErrTaskModuleMissing
	}

	if deps.Health == nil {
		return nil, ErrHealthMissing
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Handler{
		auth:    deps.Auth,
		tasks:   deps.Tasks,
		health:  deps.Health,
		cookies: sessionCookies{cfg: deps.Auth.Session},
		pages:   pages,
		logger:  slog.Default().WithGroup("web"),
	}, nil
}

// Router registers every route. Mutations are POST forms answered with
// 303 See Other.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(nameSpanAfterRoute)

	r.HandleFunc("/", h.home).Methods(http.MethodGet)

	r.HandleFunc("/auth", h.authForm).Methods(http.MethodGet)
	r.HandleFunc("/auth/signin", h.signIn).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", h.signUp).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodPost)

	r.HandleFunc("/todos", h.listTodos).Methods(http.MethodGet)
	r.HandleFunc("/todos", h.addTodo).Methods(http.MethodPost)
	r.HandleFunc("/todos/edit/cancel", h.cancelEdit).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id}/toggle", h.toggleTodo).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id}/delete", h.deleteTodo).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id}/edit", h.startEdit).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id}/save", h.saveEdit).Methods(http.MethodPost)

	r.HandleFunc("/healthz", h.health.LiveHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.health.ReadyHandler).Methods(http.MethodGet)

	return r
}

// HTTPHandler is the router wrapped in tracing, request logging and panic
// recovery.
func (h *Handler) HTTPHandler(serviceName string) http.Handler {
	var handler http.Handler = h.Router()
	handler = middleware.PanicRecoveryHTTP(handler)
	handler = middleware.LoggingHTTP(moduleName)(handler)

	return otelhttp.NewHandler(handler, serviceName)
}

// nameSpanAfterRoute renames the server span to the route template so ids do
// not end up in span names.
func nameSpanAfterRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				trace.SpanFromContext(r.Context()).SetName(r.Method + " " + tmpl)
			}
		}

		next.ServeHTTP(w, r)
	})
}

// session resolves the cookie into the caller's session and the principal
// task operations run as.
func (h *Handler) session(ctx context.Context, r *http.Request) (*appsession.ResolveSessionResult, domainuser.Principal, error) {
	resolved, err := h.auth.Resolve.Resolve(ctx, &appsession.ResolveSessionRequest{
		SessionToken: h.cookies.read(r),
	})
	if err != nil {
		return nil, domainuser.Principal{}, err
	}

	principal, err := domainuser.NewPrincipal(domainuser.ID(resolved.UserID), resolved.Token)
	if err != nil {
		return nil, domainuser.Principal{}, fmt.Errorf("%w: %v", appsession.ErrUnauthorized, err)
	}

	return resolved, principal, nil
}
