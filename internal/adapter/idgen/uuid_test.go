package idgen

import (
	"testing"

	"github.com/walletsavior/walletsavior/internal/domain"
)

func TestUUIDGeneratorProducesValidIdentifiers(t *testing.T) {
	gen := NewUUIDGenerator()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		raw := gen.Generate()
		if _, err := domain.NewTransactionID(raw); err != nil {
			t.Fatalf("generated id %q rejected: %v", raw, err)
		}
		if seen[raw] {
			t.Fatalf("duplicate id %q", raw)
		}
		seen[raw] = true
	}
}
