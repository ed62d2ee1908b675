// Package requestctx carries per-request metadata through context.Context.
package requestctx

import (
	"context"
	"time"
)

// Info describes one inbound request for the lifetime of its pipeline run.
type Info struct {
	ID        string
	Method    string
	Path      string
	StartedAt time.Time
}

// Elapsed returns the time since the request entered the pipeline.
func (i Info) Elapsed() time.Duration {
	return time.Since(i.StartedAt)
}

type infoKey struct{}

// WithInfo stores request metadata in ctx.
func WithInfo(ctx context.Context, info Info) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, infoKey{}, info)
}

// FromContext returns the request metadata stored in ctx.
func FromContext(ctx context.Context) (Info, bool) {
	if ctx == nil {
		return Info{}, false
	}
	info, ok := ctx.Value(infoKey{}).(Info)
	return info, ok
}

// RequestID returns the correlation id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	info, _ := FromContext(ctx)
	return info.ID
}
