package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestGeneratorProducesValidUniqueIDs(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := gen.NewID()

		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("Expected valid UUID, got %q: %v", got, err)
		}

		if seen[got] {
			t.Fatalf("Duplicate ID generated: %s", got)
		}
		seen[got] = true
	}
}

func TestSequenceIsDeterministic(t *testing.T) {
	seq := &Sequence{Prefix: "chat"}

	if got := seq.NewID(); got != "chat-1" {
		t.Errorf("Expected chat-1, got %s", got)
	}
	if got := seq.NewID(); got != "chat-2" {
		t.Errorf("Expected chat-2, got %s", got)
	}
}
