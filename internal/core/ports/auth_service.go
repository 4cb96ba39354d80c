package ports

import (
	"context"
)

// SignInResult is the authenticated session handed back to the transport
// layer: a signed token plus the identity it asserts.
type SignInResult struct {
	Token    string
	ID       string
	Username string
	Email    string
	Roles    []string
}

// AuthService verifies credentials and issues session tokens.
type AuthService interface {
	SignIn(ctx context.Context, username, password string) (*SignInResult, error)
}
