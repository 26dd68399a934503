package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// UserService implements user administration. Creation is open to the
// public (self-registration as buyer); only an owner actor may assign other
// roles or manage existing accounts.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) ListCargos() []string {
	return domain.PermittedCargos()
}

func (s *UserService) Create(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if input.Nome == "" || email == "" || input.Senha == "" {
		return nil, domain.ErrMissingFields
	}

	role := resolveRole(domain.RoleBuyer, input.Role, input.ActorRole)
	cargo, err := domain.ValidateRoleCargo(role, input.Cargo)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Nome:     input.Nome,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Cargo:    cargo,
		CriadoEm: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("role", string(role)).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UserInput) error {
	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	role := resolveRole(current.Role, input.Role, input.ActorRole)
	cargo, err := domain.ValidateRoleCargo(role, input.Cargo)
	if err != nil {
		return err
	}

	current.Role = role
	current.Cargo = cargo
	if input.Nome != "" {
		current.Nome = input.Nome
	}
	return s.users.Update(ctx, current)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// resolveRole keeps the base role unless an owner actor requested a valid
// different one. Invalid requested values are silently ignored.
func resolveRole(base domain.Role, requested string, actor domain.Role) domain.Role {
	if actor != domain.RoleOwner || requested == "" {
		return base
	}
	r := domain.Role(requested)
	if !r.IsValid() {
		return base
	}
	return r
}
