package security

import "github.com/google/uuid"

// UUIDGenerator implements ports.IDGenerator with random (v4) UUIDs.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
