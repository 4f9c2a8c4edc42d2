package moveset

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/pathing"
)

//go:embed schema.cue
var schemaCUE string

// Definition is a moveset decoded from CUE.
//
// Example document:
//
//	dimensions: 2
//	moves: [
//		{name: "right", cost: 1, offset: [1, 0]},
//		{name: "jump", cost: 3, offset: [2, 0]},
//	]
type Definition struct {
	Dimensions int        `json:"dimensions"`
	Moves      []MoveSpec `json:"moves"`
}

// MoveSpec is one move of a Definition.
type MoveSpec struct {
	Name   string  `json:"name"`
	Cost   float64 `json:"cost"`
	Offset []int32 `json:"offset"`
}

// CompileError reports an invalid moveset document.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and compiles a CUE moveset file.
func Load(path string) (*Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read moveset file: %w", err)
	}
	return Compile(path, src)
}

// Compile validates src against the moveset schema and decodes it.
// filename is used for error positions only.
func Compile(filename string, src []byte) (*Definition, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("moveset schema: %w", err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var def Definition
	if err := unified.Decode(&def); err != nil {
		return nil, formatCUEError(err)
	}

	for i, m := range def.Moves {
		if len(m.Offset) != def.Dimensions {
			return nil, &CompileError{
				Field:   fmt.Sprintf("moves[%d].offset", i),
				Message: fmt.Sprintf("has %d components, expected %d", len(m.Offset), def.Dimensions),
				Pos:     unified.LookupPath(cue.MakePath(cue.Str("moves"), cue.Index(i))).Pos(),
			}
		}
	}

	return &def, nil
}

// Moveset2D converts a 2-dimensional definition.
func (d *Definition) Moveset2D() (pathing.Moveset[geom.Vector2i], error) {
	if d.Dimensions != 2 {
		return nil, fmt.Errorf("moveset has %d dimensions, expected 2", d.Dimensions)
	}
	out := make(pathing.Moveset[geom.Vector2i], len(d.Moves))
	for i, m := range d.Moves {
		offset := geom.Vec2(m.Offset[0], m.Offset[1])
		if offset.IsZero() {
			return nil, fmt.Errorf("moves[%d]: offset must not be zero", i)
		}
		out[i] = pathing.MoveAction[geom.Vector2i]{Name: m.Name, Cost: m.Cost, Offset: offset}
	}
	return out, nil
}

// Moveset3D converts a 3-dimensional definition.
func (d *Definition) Moveset3D() (pathing.Moveset[geom.Vector3i], error) {
	if d.Dimensions != 3 {
		return nil, fmt.Errorf("moveset has %d dimensions, expected 3", d.Dimensions)
	}
	out := make(pathing.Moveset[geom.Vector3i], len(d.Moves))
	for i, m := range d.Moves {
		offset := geom.Vec3(m.Offset[0], m.Offset[1], m.Offset[2])
		if offset.IsZero() {
			return nil, fmt.Errorf("moves[%d]: offset must not be zero", i)
		}
		out[i] = pathing.MoveAction[geom.Vector3i]{Name: m.Name, Cost: m.Cost, Offset: offset}
	}
	return out, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
