package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/moveset"
	"github.com/roach88/pathfind/internal/pathing"
	"github.com/roach88/pathfind/internal/space"
)

// Error codes for CLI responses.
const (
	// General errors (E001-E099)
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeInvalidConfig = "E008" // Configuration file invalid

	// Input errors (E100-E199)
	ErrCodeInvalidPlane    = "E101" // Plane file malformed
	ErrCodeInvalidMoveset  = "E102" // Unknown moveset or bad CUE definition
	ErrCodeInvalidPosition = "E103" // --from/--to not parseable
	ErrCodeNoMarker        = "E104" // Plane lacks the O/G marker a default needs

	// Runtime errors (E200-E299)
	ErrCodeNoPath   = "E201" // Search finished without a path
	ErrCodeInternal = "E202" // Calculator invariant violation
	ErrCodeStore    = "E203" // History database error
)

// InputError is a problem with user-supplied input, tagged with its code.
type InputError struct {
	Code    string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// LoadPlane reads a plane file: one row per line, all rows the same width.
// Blank lines at either end are ignored.
func LoadPlane(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &InputError{Code: ErrCodeNotFound, Message: fmt.Sprintf("plane file not found: %s", path)}
	}
	if err != nil {
		return nil, &InputError{Code: ErrCodeGeneric, Message: "failed to read plane file", Err: err}
	}

	text := strings.Trim(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	rows, err := space.ParsePlane(text)
	if err != nil {
		return nil, &InputError{Code: ErrCodeInvalidPlane, Message: fmt.Sprintf("invalid plane %s", path), Err: err}
	}
	return rows, nil
}

// LoadMoveset resolves a stock moveset name or a .cue file. The second return
// value is the name recorded in history.
func LoadMoveset(name string) (pathing.Moveset[geom.Vector2i], string, error) {
	if strings.HasSuffix(name, ".cue") {
		def, err := moveset.Load(name)
		if err != nil {
			return nil, "", &InputError{Code: ErrCodeInvalidMoveset, Message: fmt.Sprintf("invalid moveset %s", name), Err: err}
		}
		moves, err := def.Moveset2D()
		if err != nil {
			return nil, "", &InputError{Code: ErrCodeInvalidMoveset, Message: fmt.Sprintf("invalid moveset %s", name), Err: err}
		}
		return moves, filepath.Base(name), nil
	}

	moves, err := moveset.Named2D(name)
	if err != nil {
		return nil, "", &InputError{Code: ErrCodeInvalidMoveset, Message: "invalid moveset", Err: err}
	}
	if name == "" {
		name = "cardinal"
	}
	return moves, name, nil
}

// resolvePosition parses flag as "x,y". An empty flag falls back to the only
// cell of the plane holding marker.
func resolvePosition(flag, which string, flat *space.FlatSpace, marker rune) (geom.Vector2i, error) {
	if flag != "" {
		pos, err := geom.ParseVector2i(flag)
		if err != nil {
			return pos, &InputError{Code: ErrCodeInvalidPosition, Message: fmt.Sprintf("invalid --%s", which), Err: err}
		}
		return pos, nil
	}

	found := flat.Find(marker)
	switch len(found) {
	case 0:
		return geom.Vector2i{}, &InputError{Code: ErrCodeNoMarker, Message: fmt.Sprintf("--%s not set and plane has no %q cell", which, marker)}
	case 1:
		return found[0], nil
	default:
		return geom.Vector2i{}, &InputError{Code: ErrCodeNoMarker, Message: fmt.Sprintf("--%s not set and plane has %d %q cells", which, len(found), marker)}
	}
}
