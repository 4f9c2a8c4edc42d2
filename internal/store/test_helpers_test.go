package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestCalculation creates a calculation with minimal required fields.
func createTestCalculation(id, queryHash string, seq int64) Calculation {
	return Calculation{
		ID:        id,
		QueryHash: queryHash,
		Start:     "(0,0)",
		Goal:      "(2,0)",
		Moveset:   "cardinal",
		Outcome:   "succeeded",
		Cost:      2,
		Expanded:  3,
		Visited:   7,
		Elapsed:   1500 * time.Microsecond,
		Path:      `[{"x":0,"y":0},{"move":"right","x":1,"y":0},{"move":"right","x":2,"y":0}]`,
		Seq:       seq,
	}
}
