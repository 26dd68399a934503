package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// LoginInput carries the credentials and, when present, the id of the
// caller's existing session so it can be discarded on success.
type LoginInput struct {
	Email         string
	Senha         string
	PrevSessionID string
}

type AuthService interface {
	// Login validates credentials and issues a fresh session. The
	// no-such-user and wrong-password paths are indistinguishable to the
	// caller: both return domain.ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput) (*domain.Session, error)
	// Logout destroys the session. Idempotent.
	Logout(ctx context.Context, sessionID string) error
}
