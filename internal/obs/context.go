package obs

import "context"

type ctxKeyRoutePattern struct{}

// WithRoutePattern annotates ctx with the matched route pattern so metrics
// and tracing label by template rather than raw path.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKeyRoutePattern{}, pattern)
}

// RoutePatternFromContext returns the stored pattern, or "".
func RoutePatternFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	pattern, _ := ctx.Value(ctxKeyRoutePattern{}).(string)
	return pattern
}
