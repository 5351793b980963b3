package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const moduleAttrKey = "module"

// handlerOp is a WithAttrs or WithGroup call recorded for replay.
type handlerOp struct {
	group string
	attrs []slog.Attr
}

// contextHandler puts request-scoped values from the context at the top
// level of every record, outside any group the logger has opened.
type contextHandler struct {
	root          slog.Handler
	ops           []handlerOp
	defaultModule Module
	// hasModule is set once a top-level module attribute was attached with
	// WithAttrs. It then takes precedence over the context and the default.
	hasModule bool
}

func newContextHandler(root slog.Handler, defaultModule Module) *contextHandler {
	return &contextHandler{root: root, defaultModule: defaultModule}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.root.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	var ctxAttrs []slog.Attr

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		ctxAttrs = append(ctxAttrs, slog.String("request_id", requestID))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		ctxAttrs = append(ctxAttrs, slog.String("trace_id", sc.TraceID().String()))
	}

	if !h.hasModule && !h.recordHasModule(record) {
		module := ModuleFromContext(ctx)
		if module == "" {
			module = h.defaultModule
		}

		if module != "" {
			ctxAttrs = append(ctxAttrs, slog.String(moduleAttrKey, string(module)))
		}
	}

	handler := h.root
	if len(ctxAttrs) > 0 {
		handler = handler.WithAttrs(ctxAttrs)
	}

	for _, op := range h.ops {
		if op.group != "" {
			handler = handler.WithGroup(op.group)
		} else {
			handler = handler.WithAttrs(op.attrs)
		}
	}

	return handler.Handle(ctx, record)
}

// recordHasModule reports whether the record itself sets a top-level module.
func (h *contextHandler) recordHasModule(record slog.Record) bool {
	if h.inGroup() {
		return false
	}

	found := false

	record.Attrs(func(a slog.Attr) bool {
		if a.Key == moduleAttrKey {
			found = true

			return false
		}

		return true
	})

	return found
}

func (h *contextHandler) inGroup() bool {
	for _, op := range h.ops {
		if op.group != "" {
			return true
		}
	}

	return false
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	next := h.with(handlerOp{attrs: attrs})

	if !h.inGroup() {
		for _, a := range attrs {
			if a.Key == moduleAttrKey {
				next.hasModule = true
			}
		}
	}

	return next
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return h.with(handlerOp{group: name})
}

func (h *contextHandler) with(op handlerOp) *contextHandler {
	ops := make([]handlerOp, 0, len(h.ops)+1)
	ops = append(ops, h.ops...)
	ops = append(ops, op)

	return &contextHandler{
		root:          h.root,
		ops:           ops,
		defaultModule: h.defaultModule,
		hasModule:     h.hasModule,
	}
}
