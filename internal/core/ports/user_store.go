package ports

import (
	"context"

	"github.com/99minutos/auth-system/internal/core/domain"
)

// UserStore defines the persistence contract for user records.
type UserStore interface {
	// FindByEmail returns domain.ErrNotFound when no record has the email.
	FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error)
	// Insert stores the record. It either fully succeeds or fails; a
	// uniqueness violation on email is reported as domain.ErrAlreadyExists.
	Insert(ctx context.Context, record domain.UserRecord) error
}
