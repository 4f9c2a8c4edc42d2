package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pathfind/internal/config"
	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/space"
)

func TestLoadPlane(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plane.txt")
	require.NoError(t, os.WriteFile(path, []byte("\nO_X\r\n__G\n\n"), 0644))

	rows, err := LoadPlane(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"O_X", "__G"}, rows)
}

func TestLoadPlane_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadPlane(filepath.Join(dir, "missing.txt"))
	var in *InputError
	require.ErrorAs(t, err, &in)
	assert.Equal(t, ErrCodeNotFound, in.Code)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0644))
	_, err = LoadPlane(empty)
	require.ErrorAs(t, err, &in)
	assert.Equal(t, ErrCodeInvalidPlane, in.Code)
	assert.Contains(t, err.Error(), "plane is empty")
}

func TestLoadMoveset(t *testing.T) {
	moves, name, err := LoadMoveset("")
	require.NoError(t, err)
	assert.Equal(t, "cardinal", name)
	assert.Len(t, moves, 4)

	moves, name, err = LoadMoveset("octile")
	require.NoError(t, err)
	assert.Equal(t, "octile", name)
	assert.Len(t, moves, 8)

	cue := filepath.Join("..", "harness", "testdata", "scenarios", "moves", "right_down.cue")
	moves, name, err = LoadMoveset(cue)
	require.NoError(t, err)
	assert.Equal(t, "right_down.cue", name)
	require.Len(t, moves, 2)
	assert.Equal(t, geom.Vec2(0, 1), moves[1].Offset)
}

func TestLoadMoveset_ThreeDimensionalRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxel.cue")
	require.NoError(t, os.WriteFile(path, []byte(`dimensions: 3
moves: [{name: "up", cost: 1, offset: [0, 0, 1]}]
`), 0644))

	_, _, err := LoadMoveset(path)
	var in *InputError
	require.ErrorAs(t, err, &in)
	assert.Equal(t, ErrCodeInvalidMoveset, in.Code)
	assert.Contains(t, err.Error(), "expected 2")
}

func TestResolvePosition(t *testing.T) {
	flat := space.NewFlatSpace([]string{"O_G", "___"}, config.Default())

	pos, err := resolvePosition("1,1", "from", flat, space.CellStart)
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2(1, 1), pos)

	pos, err = resolvePosition("", "to", flat, space.CellGoal)
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2(2, 0), pos)

	_, err = resolvePosition("", "to", flat, space.CellHazardous)
	var in *InputError
	require.ErrorAs(t, err, &in)
	assert.Equal(t, ErrCodeNoMarker, in.Code)
}
