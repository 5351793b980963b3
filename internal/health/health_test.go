package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KasumiMercury/todo-web/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		want   Response
	}{
		{
			name: "no checks",
			want: Response{Status: StatusHealthy, Version: "v1", Checks: map[string]CheckResult{}},
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"backend": PingCheck(pingerFunc(func(context.Context) error { return nil })),
			},
			want: Response{
				Status:  StatusHealthy,
				Version: "v1",
				Checks:  map[string]CheckResult{"backend": {Status: StatusHealthy}},
			},
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"backend": func(context.Context) error { return nil },
				"redis":   func(context.Context) error { return errors.New("connection refused") },
			},
			want: Response{
				Status:  StatusUnhealthy,
				Version: "v1",
				Checks: map[string]CheckResult{
					"backend": {Status: StatusHealthy},
					"redis":   {Status: StatusUnhealthy, Error: "connection refused"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker("v1")
			for name, check := range tt.checks {
				checker.Register(name, check)
			}

			got := checker.Check(context.Background())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Check() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckTimeout(t *testing.T) {
	checker := NewChecker("v1")
	checker.timeout = 10 * time.Millisecond
	checker.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()

		return ctx.Err()
	})

	got := checker.Check(context.Background())
	if got.Status != StatusUnhealthy {
		t.Fatalf("Check() status = %s, want %s", got.Status, StatusUnhealthy)
	}
}

func TestHandlers(t *testing.T) {
	tests := []struct {
		name       string
		failing    bool
		handler    func(*Checker) http.HandlerFunc
		wantStatus int
		wantBody   Status
	}{
		{name: "live ignores checks", failing: true, handler: func(c *Checker) http.HandlerFunc { return c.LiveHandler }, wantStatus: http.StatusOK, wantBody: StatusHealthy},
		{name: "ready healthy", handler: func(c *Checker) http.HandlerFunc { return c.ReadyHandler }, wantStatus: http.StatusOK, wantBody: StatusHealthy},
		{name: "ready unhealthy", failing: true, handler: func(c *Checker) http.HandlerFunc { return c.ReadyHandler }, wantStatus: http.StatusServiceUnavailable, wantBody: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker("v1")
			checker.Register("dep", func(context.Context) error {
				if tt.failing {
					return errors.New("down")
				}

				return nil
			})

			rec := httptest.NewRecorder()
			tt.handler(checker)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body Response
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}

			if body.Status != tt.wantBody {
				t.Errorf("body status = %s, want %s", body.Status, tt.wantBody)
			}
		})
	}
}

func TestRedisCheckIntegration(t *testing.T) {
	ctx := context.Background()

	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	t.Cleanup(cleanup)

	if err := RedisCheck(client)(ctx); err != nil {
		t.Fatalf("RedisCheck() unexpected error: %v", err)
	}
}

func TestDatabaseCheckIntegration(t *testing.T) {
	ctx := context.Background()

	db, cleanup := testutil.SetupPostgresContainer(ctx, t)
	t.Cleanup(cleanup)

	if err := DatabaseCheck(db)(ctx); err != nil {
		t.Fatalf("DatabaseCheck() unexpected error: %v", err)
	}
}
