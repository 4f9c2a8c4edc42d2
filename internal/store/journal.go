package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/pathfind/internal/canon"
	"github.com/roach88/pathfind/internal/config"
	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/pathing"
)

// Query describes a 2D calculation as recorded in history.
type Query struct {
	Plane []string
	Moves pathing.Moveset[geom.Vector2i]
	// Moveset is the display name of Moves ("cardinal", a file name, ...).
	Moveset string
	Start   geom.Vector2i
	Goal    geom.Vector2i
	// Config tunes costs and the time budget, so it changes the answer.
	Config config.Configuration
}

// Hash returns the content hash identifying q.
func (q Query) Hash() (string, error) {
	return canon.QueryHash(q.Plane, q.Moves, q.Start, q.Goal, q.Config)
}

// Journal appends calculation results to a Store.
//
// Thread-safety: Journal is safe for concurrent use; ordering between
// concurrent Record calls follows the order seq numbers are drawn.
type Journal struct {
	store *Store
	ids   IDGenerator
	clock *Clock
}

// NewJournal creates a journal whose logical clock resumes after the newest
// row already in s.
func NewJournal(ctx context.Context, s *Store, ids IDGenerator) (*Journal, error) {
	last, err := s.MaxSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	return &Journal{store: s, ids: ids, clock: NewClockAt(last)}, nil
}

// Record stores res as the answer to q and returns the written row.
func (j *Journal) Record(ctx context.Context, q Query, res pathing.Result[geom.Vector2i]) (Calculation, error) {
	hash, err := q.Hash()
	if err != nil {
		return Calculation{}, fmt.Errorf("record calculation: %w", err)
	}

	path, err := canon.MarshalPath(res.Path)
	if err != nil {
		return Calculation{}, fmt.Errorf("record calculation: %w", err)
	}

	c := Calculation{
		ID:        j.ids.Generate(),
		QueryHash: hash,
		Start:     q.Start.String(),
		Goal:      q.Goal.String(),
		Moveset:   q.Moveset,
		Outcome:   res.Outcome.String(),
		Cost:      res.Cost,
		Expanded:  res.Expanded,
		Visited:   res.Visited,
		Elapsed:   res.Elapsed,
		Path:      string(path),
		Seq:       j.clock.Next(),
	}

	if err := j.store.WriteCalculation(ctx, c); err != nil {
		return Calculation{}, err
	}

	slog.Debug("calculation recorded",
		"id", c.ID,
		"seq", c.Seq,
		"query_hash", c.QueryHash,
		"outcome", c.Outcome,
	)
	return c, nil
}

// Previous returns the newest recorded answer to q, if any.
func (j *Journal) Previous(ctx context.Context, q Query) (Calculation, bool, error) {
	hash, err := q.Hash()
	if err != nil {
		return Calculation{}, false, fmt.Errorf("lookup calculation: %w", err)
	}
	return j.store.LatestForQuery(ctx, hash)
}
