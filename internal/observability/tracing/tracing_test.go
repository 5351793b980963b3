package tracing

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStdoutProviderExportsSpans(t *testing.T) {
	var buf bytes.Buffer

	provider, err := NewProvider(context.Background(), Config{
		ServiceName: "todo-web",
		Environment: "dev",
		Stdout:      true,
		Output:      &buf,
	})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	_, span := provider.Tracer("test").Start(context.Background(), "unit-span")
	span.End()

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}

	if !strings.Contains(buf.String(), "unit-span") {
		t.Fatalf("expected exported span, got %q", buf.String())
	}
}

func TestDisabledProviderDoesNotSample(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{ServiceName: "todo-web"})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := provider.Tracer("test").Start(context.Background(), "unsampled")
	defer span.End()

	if span.SpanContext().IsSampled() {
		t.Fatalf("expected span to be unsampled")
	}
}

func TestPropagationRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	provider, err := NewProvider(context.Background(), Config{ServiceName: "todo-web", Stdout: true, Output: &buf})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	provider.Install()

	ctx, span := provider.Tracer("test").Start(context.Background(), "outgoing")
	defer span.End()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	InjectToHTTPRequest(ctx, req)

	if req.Header.Get("traceparent") == "" {
		t.Fatalf("expected traceparent header")
	}

	extracted := ExtractFromHTTPRequest(context.Background(), req)

	_, child := provider.Tracer("test").Start(extracted, "incoming")
	defer child.End()

	if child.SpanContext().TraceID() != span.SpanContext().TraceID() {
		t.Fatalf("expected child to share the trace id")
	}
}
