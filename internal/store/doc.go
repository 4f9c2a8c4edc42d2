// Package store provides SQLite-backed history of path calculations.
//
// Every calculation run through a Journal is appended to the calculations
// table together with the content hash of its query (plane, moveset, start,
// goal, configuration), so repeated queries can be looked up and compared
// across runs. Triggers reject UPDATE and DELETE on recorded rows.
//
// # Ordering
//
// Rows are ordered by seq, a logical clock, never by wall time. All list
// queries use ORDER BY seq, id COLLATE BINARY so results are identical
// across runs.
//
// # Database Configuration
//
//   - WAL mode: history can be listed while find appends
//   - synchronous=NORMAL
//   - busy_timeout=5000
//
// Open reads each pragma back and fails if SQLite did not accept it.
//
// Query hashes and path encodings come from internal/canon.
package store
