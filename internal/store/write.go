package store

import (
	"context"
	"fmt"
	"time"
)

// Calculation is one row of history.
type Calculation struct {
	ID        string        `json:"id"`
	QueryHash string        `json:"query_hash"`
	Start     string        `json:"start"`
	Goal      string        `json:"goal"`
	Moveset   string        `json:"moveset"`
	Outcome   string        `json:"outcome"`
	Cost      float64       `json:"cost"`
	Expanded  int           `json:"expanded"`
	Visited   int           `json:"visited"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Path      string        `json:"path"`
	Seq       int64         `json:"seq"`
}

// WriteCalculation inserts a calculation record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
// Other constraint violations (e.g., NOT NULL) will still return errors.
func (s *Store) WriteCalculation(ctx context.Context, c Calculation) error {
	if c.Path == "" {
		c.Path = "[]"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations
		(id, query_hash, start, goal, moveset, outcome, cost, expanded, visited, elapsed_ns, path, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		c.ID,
		c.QueryHash,
		c.Start,
		c.Goal,
		c.Moveset,
		c.Outcome,
		c.Cost,
		c.Expanded,
		c.Visited,
		c.Elapsed.Nanoseconds(),
		c.Path,
		c.Seq,
	)
	if err != nil {
		return fmt.Errorf("write calculation: %w", err)
	}

	return nil
}
