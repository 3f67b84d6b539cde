package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-system/internal/core/domain"
	"github.com/99minutos/auth-system/internal/core/ports"
)

const (
	MessageSignupSuccess = "Registration done successfully"
	MessageLoginSuccess  = "Login successful"
)

// AuthService implements signup and login over injected collaborators.
type AuthService struct {
	store  ports.UserStore
	hasher ports.PasswordHasher
	ids    ports.IDGenerator
	tokens ports.TokenIssuer
	logger zerolog.Logger
	now    func() time.Time
}

// Option customises an AuthService.
type Option func(*AuthService)

// WithClock overrides the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(
	store ports.UserStore,
	hasher ports.PasswordHasher,
	ids ports.IDGenerator,
	tokens ports.TokenIssuer,
	logger zerolog.Logger,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		store:  store,
		hasher: hasher,
		ids:    ids,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup registers a new NORMAL user and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthOutput, error) {
	// Email must not be registered yet.
	_, err := s.store.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		s.logger.Debug().Str("email", in.Email).Msg("signup rejected: email already registered")
		return nil, domain.ErrAlreadyExists
	case !errors.Is(err, domain.ErrNotFound):
		return nil, persistenceErr("signup: find user", err)
	}

	// Only the hash ever leaves this function.
	id := s.ids.Generate()

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	user := &domain.User{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleNormal,
		CreatedAt:    domain.FormatTimestamp(s.now()),
	}

	// Persist before any token exists.
	if err := s.store.Insert(ctx, user.ToRecord()); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, persistenceErr("signup: insert user", err)
	}

	token, err := s.tokens.Sign(user.TokenPayload())
	if err != nil {
		return nil, fmt.Errorf("signup: sign token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return &ports.AuthOutput{Message: MessageSignupSuccess, Token: token}, nil
}

// Login verifies the credentials of an existing user and returns a token for it.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthOutput, error) {
	rec, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, persistenceErr("login: find user", err)
	}

	if !s.hasher.Compare(in.Password, rec.Password) {
		s.logger.Debug().Str("user_id", rec.ID).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	user := domain.UserFromRecord(*rec)

	token, err := s.tokens.Sign(user.TokenPayload())
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.AuthOutput{Message: MessageLoginSuccess, Token: token}, nil
}

// persistenceErr tags a store failure with domain.ErrPersistence unless the
// adapter already did so.
func persistenceErr(op string, err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}
