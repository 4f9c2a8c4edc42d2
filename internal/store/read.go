package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const selectCalculation = `
	SELECT id, query_hash, start, goal, moveset, outcome, cost, expanded, visited, elapsed_ns, path, seq
	FROM calculations
`

// ReadCalculation retrieves a single calculation by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadCalculation(ctx context.Context, id string) (Calculation, error) {
	row := s.db.QueryRowContext(ctx, selectCalculation+`WHERE id = ?`, id)
	return scanCalculation(row)
}

// ListCalculations returns the most recent calculations, newest first.
// A limit of zero or less returns every row.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListCalculations(ctx context.Context, limit int) ([]Calculation, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, selectCalculation+`
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	calcs := []Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	return calcs, nil
}

// LatestForQuery returns the newest calculation recorded for queryHash.
// The bool is false when the query has never been recorded.
func (s *Store) LatestForQuery(ctx context.Context, queryHash string) (Calculation, bool, error) {
	row := s.db.QueryRowContext(ctx, selectCalculation+`
		WHERE query_hash = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, queryHash)

	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Calculation{}, false, nil
	}
	if err != nil {
		return Calculation{}, false, err
	}
	return c, true, nil
}

// MaxSeq returns the highest seq in the store, or 0 when it is empty.
func (s *Store) MaxSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM calculations`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query max seq: %w", err)
	}
	return seq.Int64, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (Calculation, error) {
	var (
		c         Calculation
		elapsedNS int64
	)
	err := row.Scan(
		&c.ID,
		&c.QueryHash,
		&c.Start,
		&c.Goal,
		&c.Moveset,
		&c.Outcome,
		&c.Cost,
		&c.Expanded,
		&c.Visited,
		&elapsedNS,
		&c.Path,
		&c.Seq,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Calculation{}, err
	}
	if err != nil {
		return Calculation{}, fmt.Errorf("scan calculation: %w", err)
	}
	c.Elapsed = time.Duration(elapsedNS)
	return c, nil
}
