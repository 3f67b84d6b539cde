package ports

import "github.com/99minutos/auth-system/internal/core/domain"

// PasswordHasher hashes passwords one way and verifies plaintext against a hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) bool
}

// IDGenerator produces unique opaque identifiers.
type IDGenerator interface {
	Generate() string
}

// TokenIssuer signs a payload into an opaque bearer token.
type TokenIssuer interface {
	Sign(payload domain.TokenPayload) (string, error)
}

// TokenVerifier checks a bearer token and returns the claims it carries.
type TokenVerifier interface {
	Verify(token string) (*domain.TokenPayload, error)
}
