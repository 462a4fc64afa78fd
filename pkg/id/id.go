package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique identifiers for persisted rows. It is an
// interface so tests can substitute a deterministic source.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// NewGenerator returns the UUIDv4-backed generator used in production.
func NewGenerator() Generator {
	return uuidGenerator{}
}

// Sequence is a deterministic generator for tests: prefix-1, prefix-2, ...
type Sequence struct {
	Prefix string
	n      int
}

func (s *Sequence) NewID() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}
