package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/KasumiMercury/todo-web/internal/observability/logging"
)

const requestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}

	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}

	n, err := r.ResponseWriter.Write(b)
	r.bytes += n

	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// LoggingHTTP tags the request context with a request id and module, echoes
// the id back in X-Request-Id, and logs one record per request.
func LoggingHTTP(module logging.Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := logging.ValidateAndExtractRequestID(r.Header.Get(requestIDHeader))

			ctx := logging.WithRequestID(r.Context(), requestID)
			if module != "" {
				ctx = logging.WithModule(ctx, module)
			}

			w.Header().Set(requestIDHeader, requestID)

			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r.WithContext(ctx))

			status := recorder.status
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", recorder.bytes),
				slog.Duration("duration", time.Since(start)),
			}

			if status >= http.StatusInternalServerError {
				slog.ErrorContext(ctx, "http request failed",
					append([]any{slog.String("event", "http.request.fail")}, attrs...)...,
				)

				return
			}

			slog.InfoContext(ctx, "http request completed",
				append([]any{slog.String("event", "http.request.finish")}, attrs...)...,
			)
		})
	}
}
