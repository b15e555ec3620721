package actor

import "context"

type contextKey struct{}

// WithContext returns a context carrying the actor.
func WithContext(ctx context.Context, act Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, act)
}

// FromContext returns the actor stored by WithContext.
func FromContext(ctx context.Context) (Actor, bool) {
	act, ok := ctx.Value(contextKey{}).(Actor)
	return act, ok
}
