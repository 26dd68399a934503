package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Email uniqueness is enforced by the store; Create surfaces a violation
// as domain.ErrEmailTaken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
