package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/auth-system/internal/core/domain"
)

const keyPrefix = "user:email:"

// UserStore implements ports.UserStore on Redis. Each user is one JSON value
// keyed by its normalised email; SETNX makes the insert the uniqueness check.
type UserStore struct {
	client redis.Cmdable
}

func NewUserStore(client redis.Cmdable) *UserStore {
	return &UserStore{client: client}
}

// Insert writes the record only if no user holds the email yet.
func (s *UserStore) Insert(ctx context.Context, rec domain.UserRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode user: %w: %w", domain.ErrPersistence, err)
	}

	ok, err := s.client.SetNX(ctx, key(rec.Email), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("insert user: %w: %w", domain.ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("insert user: %w", domain.ErrAlreadyExists)
	}
	return nil
}

// FindByEmail returns the record registered under email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	raw, err := s.client.Get(ctx, key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w: %w", domain.ErrPersistence, err)
	}

	var rec domain.UserRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode user: %w: %w", domain.ErrPersistence, err)
	}
	return &rec, nil
}

func key(email string) string {
	return keyPrefix + email
}
