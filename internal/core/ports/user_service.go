package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// UserInput carries user create/update fields. ActorRole is the role of the
// requesting session ("" for anonymous); only an owner actor may assign a
// role other than buyer.
type UserInput struct {
	Nome      string
	Email     string
	Senha     string
	Cargo     string
	Role      string
	ActorRole domain.Role
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	ListCargos() []string
	Create(ctx context.Context, input UserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UserInput) error
	Delete(ctx context.Context, id string) error
}
