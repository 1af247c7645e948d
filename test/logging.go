package test

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/quay/claircore/toolkit/log"
)

// InstallHandler makes the default logger consult the Context for its output.
var installHandler = sync.OnceFunc(func() {
	slog.SetDefault(slog.New(&ctxHandler{}))
})

type handlerKey struct{}

// CtxHandler implements [slog.Handler] by forwarding records to the handler
// stored in the record's [context.Context], if any.
//
// Calls to WithAttrs and WithGroup are recorded and replayed onto the
// per-test handler.
type ctxHandler struct {
	ops []func(slog.Handler) slog.Handler
}

var _ slog.Handler = (*ctxHandler)(nil)

func (h *ctxHandler) target(ctx context.Context) slog.Handler {
	th, ok := ctx.Value(handlerKey{}).(slog.Handler)
	if !ok {
		return nil
	}
	for _, op := range h.ops {
		th = op(th)
	}
	return th
}

// Enabled implements [slog.Handler].
func (h *ctxHandler) Enabled(ctx context.Context, l slog.Level) bool {
	th, ok := ctx.Value(handlerKey{}).(slog.Handler)
	return ok && th.Enabled(ctx, l)
}

// Handle implements [slog.Handler].
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	th := h.target(ctx)
	if th == nil {
		return nil
	}
	if v, ok := ctx.Value(log.AttrsKey).(slog.Value); ok {
		r.AddAttrs(v.Group()...)
	}
	return th.Handle(ctx, r)
}

func (h *ctxHandler) with(op func(slog.Handler) slog.Handler) *ctxHandler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	return &ctxHandler{ops: append(ops, op)}
}

// WithAttrs implements [slog.Handler].
func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
}

// WithGroup implements [slog.Handler].
func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return h.with(func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
}

// Logging returns a [context.Context] that directs output from the default
// [slog.Logger] to the test's output, at debug level.
//
// Attributes added with [log.With] are included.
func Logging(t testing.TB) context.Context {
	installHandler()
	start := time.Now()
	h := slog.NewTextHandler(t.Output(), &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(g []string, a slog.Attr) slog.Attr {
			if len(g) != 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.String(slog.TimeKey, "+"+time.Since(start).String())
			case slog.SourceKey:
				src, ok := a.Value.Any().(*slog.Source)
				if !ok {
					break
				}
				fn := src.Function
				if i := strings.LastIndexByte(fn, '/'); i != -1 {
					fn = fn[i+1:]
				}
				return slog.String(slog.SourceKey, fn)
			}
			return a
		},
	})
	return context.WithValue(context.Background(), handlerKey{}, h)
}
