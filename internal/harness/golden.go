package harness

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders a result as stable text for golden comparison:
//
//	scenario: corridor
//
//	case: across
//	outcome: succeeded
//	cost: 2
//	@>%
//
// Expanded counts are left out so heuristic tweaks that keep the same
// answer do not churn golden files.
func Snapshot(r *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario)
	for _, c := range r.Cases {
		fmt.Fprintf(&b, "\ncase: %s\noutcome: %s\ncost: %s\n",
			c.Name, c.Outcome, strconv.FormatFloat(c.Cost, 'f', -1, 64))
		for _, row := range c.Drawing {
			b.WriteString(row)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario, opts...)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an already computed result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(result))
}
