package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

// AuthService implements login and logout over the credential and session
// stores.
type AuthService struct {
	users       ports.UserRepository
	sessions    ports.SessionStore
	serverStart int64
	logger      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, serverStart int64, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, serverStart: serverStart, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.Session, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Senha == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error as a wrong password, to avoid user enumeration.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Senha)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Regenerate: the pre-login session (and its cart) is discarded so a
	// fixated id can never become authenticated.
	if input.PrevSessionID != "" {
		if err := s.sessions.Delete(ctx, input.PrevSessionID); err != nil {
			s.logger.Warn().Err(err).Msg("failed to discard pre-login session")
		}
	}

	id, err := domain.NewSessionID()
	if err != nil {
		return nil, err
	}

	sess := &domain.Session{
		ID:          id,
		UserID:      user.ID,
		Nome:        user.Nome,
		Role:        user.Role,
		Cargo:       user.Cargo,
		ServerStart: s.serverStart,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("role", string(user.Role)).Msg("login ok")
	return sess, nil
}

// Logout destroys the session. Destroying an already-absent session is not
// an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}
