package scope

import (
	"context"

	"report-srv/internal/model"
)

type scopeCtxKey struct{}

func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, sc)
}

// GetScopeFromContext returns the scope set by the auth middleware, or the
// zero Scope when the request is anonymous.
func GetScopeFromContext(ctx context.Context) model.Scope {
	sc, _ := ctx.Value(scopeCtxKey{}).(model.Scope)
	return sc
}
