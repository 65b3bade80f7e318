// Package session carries the authenticated caller through request contexts.
package session

import "context"

// Principal is the authenticated caller. LojaID is empty for users without
// a store.
type Principal struct {
	UserID string
	Email  string
	LojaID string
	Pasta  string
}

// HasStore reports whether the caller is attached to a store.
func (p Principal) HasStore() bool {
	return p.LojaID != ""
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
