package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered identifiers for sessions and chat
// turns. V7 keeps them sortable by creation time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
