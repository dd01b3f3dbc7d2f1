// Package environment names the deployment environment and carries it on
// request contexts, so handlers can tell production apart without access to
// the application config.
package environment

import (
	"context"
	"net/http"
)

// Environment is decoded straight from APP_ENV. The short forms "dev",
// "stage" and "prod" are accepted by the predicates.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

func (e Environment) IsProduction() bool  { return e == Production || e == "prod" }
func (e Environment) IsStaging() bool     { return e == Staging || e == "stage" }
func (e Environment) IsDevelopment() bool { return e == Development || e == "dev" }

type contextKey struct{}

func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns "" when no environment was attached.
func FromContext(ctx context.Context) Environment {
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

func IsProduction(ctx context.Context) bool { return FromContext(ctx).IsProduction() }

// Middleware attaches env to every request context.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}
