package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pathfind/internal/store"
)

// seedHistory writes n calculations with seq 1..n to a new database.
func seedHistory(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	for i := 1; i <= n; i++ {
		outcome := "succeeded"
		if i%2 == 0 {
			outcome = "exhausted"
		}
		require.NoError(t, st.WriteCalculation(context.Background(), store.Calculation{
			ID:        fmt.Sprintf("calc-%04d", i),
			QueryHash: "hash",
			Start:     "(0,0)",
			Goal:      "(2,0)",
			Moveset:   "cardinal",
			Outcome:   outcome,
			Cost:      float64(i),
			Expanded:  3,
			Visited:   7,
			Elapsed:   time.Millisecond,
			Path:      `[{"x":0,"y":0}]`,
			Seq:       int64(i),
		}))
	}
	return path
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	out, _, err := executeRoot(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No calculations recorded.")
}

func TestHistory_ListNewestFirst(t *testing.T) {
	db := seedHistory(t, 3)

	out, _, err := executeRoot(t, "history", "--db", db)
	require.NoError(t, err)

	assert.Contains(t, out, "OUTCOME")
	assert.Contains(t, out, "3 calculation(s)")
	third := strings.Index(out, "calc-0003")
	first := strings.Index(out, "calc-0001")
	require.GreaterOrEqual(t, third, 0)
	require.GreaterOrEqual(t, first, 0)
	assert.Less(t, third, first, "newest first")
}

func TestHistory_LimitJSON(t *testing.T) {
	db := seedHistory(t, 5)

	out, _, err := executeRoot(t, "--format", "json", "history", "--db", db, "--limit", "2")
	require.NoError(t, err)

	var raw struct {
		Status string        `json:"status"`
		Data   HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Equal(t, "ok", raw.Status)
	require.Len(t, raw.Data.Calculations, 2)
	assert.Equal(t, "calc-0005", raw.Data.Calculations[0].ID)
	assert.Equal(t, "calc-0004", raw.Data.Calculations[1].ID)

	out, _, err = executeRoot(t, "--format", "json", "history", "--db", db, "--limit", "0")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Len(t, raw.Data.Calculations, 5)
}

func TestHistory_ShowOne(t *testing.T) {
	db := seedHistory(t, 2)

	out, _, err := executeRoot(t, "history", "--db", db, "--id", "calc-0002")
	require.NoError(t, err)
	assert.Contains(t, out, "id:       calc-0002")
	assert.Contains(t, out, "outcome:  exhausted")
	assert.Contains(t, out, "cost:     -")
	assert.Contains(t, out, `path:     [{"x":0,"y":0}]`)
}

func TestHistory_ShowMissing(t *testing.T) {
	db := seedHistory(t, 1)

	out, _, err := executeRoot(t, "--format", "json", "history", "--db", db, "--id", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestHistory_RequiresDB(t *testing.T) {
	_, _, err := executeRoot(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}
