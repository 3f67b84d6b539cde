package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/auth-system/internal/core/domain"
)

const usersCollection = "users"

// UserStore implements ports.UserStore on a MongoDB collection.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Email     string `bson:"email"`
	Password  string `bson:"password"`
	Role      string `bson:"role"`
	CreatedAt string `bson:"created_at"`
}

func toMongoUser(r domain.UserRecord) mongoUser {
	return mongoUser{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}

func (m mongoUser) record() *domain.UserRecord {
	return &domain.UserRecord{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

// Insert stores a new user document. The unique email index turns a
// concurrent duplicate signup into domain.ErrAlreadyExists.
func (s *UserStore) Insert(ctx context.Context, rec domain.UserRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, toMongoUser(rec)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert user: %w", domain.ErrAlreadyExists)
		}
		return fmt.Errorf("insert user: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// FindByEmail returns the record registered under email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w: %w", domain.ErrPersistence, err)
	}
	return mu.record(), nil
}

// EnsureIndexes creates the unique email index on the users collection.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	return nil
}
