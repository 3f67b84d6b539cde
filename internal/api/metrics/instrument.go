package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/99minutos/auth-system/internal/core/domain"
	"github.com/99minutos/auth-system/internal/core/ports"
)

type instrumentedAuthService struct {
	next ports.AuthService
}

// InstrumentAuthService wraps next so every call updates RequestsTotal and
// OperationDuration. Results and errors pass through unchanged.
func InstrumentAuthService(next ports.AuthService) ports.AuthService {
	return &instrumentedAuthService{next: next}
}

func (s *instrumentedAuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthOutput, error) {
	start := time.Now()
	out, err := s.next.Signup(ctx, in)
	observe(OperationSignup, start, err)
	return out, err
}

func (s *instrumentedAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthOutput, error) {
	start := time.Now()
	out, err := s.next.Login(ctx, in)
	observe(OperationLogin, start, err)
	return out, err
}

func observe(operation string, start time.Time, err error) {
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	RequestsTotal.WithLabelValues(operation, Result(err)).Inc()
}

// Result maps an auth error onto its result label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, domain.ErrAlreadyExists):
		return ResultAlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return ResultInvalidCredentials
	case errors.Is(err, domain.ErrPersistence):
		return ResultPersistenceError
	default:
		return ResultError
	}
}
