package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/auth-system/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned by Verify for any token that fails parsing,
// signature, algorithm or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// tokenClaims is the JWT body: the user payload plus the registered claims.
type tokenClaims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 tokens carrying a domain.TokenPayload.
// It implements both ports.TokenIssuer and ports.TokenVerifier.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Sign issues a token for p that expires after the configured TTL.
func (j *JWTIssuer) Sign(p domain.TokenPayload) (string, error) {
	now := j.now()
	c := tokenClaims{
		UserID: p.ID,
		Name:   p.Name,
		Role:   p.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and returns its payload.
func (j *JWTIssuer) Verify(token string) (*domain.TokenPayload, error) {
	var c tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &domain.TokenPayload{
		ID:   c.UserID,
		Name: c.Name,
		Role: domain.Role(c.Role),
	}, nil
}
