// Package session carries the authenticated user through a request. There is
// no process-wide current user: handlers and services receive the user ID
// explicitly, either as an argument or inside a context.Context.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNoUser       = errors.New("no authenticated user")
	ErrInvalidToken = errors.New("invalid token")
)

// User is the identity a bearer token resolves to.
type User struct {
	ID    uuid.UUID
	Email string
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the user stored by WithUser.
func FromContext(ctx context.Context) (User, error) {
	u, ok := ctx.Value(ctxKey{}).(User)
	if !ok || u.ID == uuid.Nil {
		return User{}, ErrNoUser
	}
	return u, nil
}
