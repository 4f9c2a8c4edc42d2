package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/pathing"
	"github.com/roach88/pathfind/internal/space"
)

// costTolerance absorbs floating-point noise in expected costs.
const costTolerance = 1e-9

// Option configures scenario execution.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder pathing.Recorder
	parallel int
}

// WithLogger sets the logger handed to each calculator.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRecorder sets the metrics recorder handed to each calculator.
// Defaults to none.
func WithRecorder(r pathing.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithParallelism bounds how many scenarios RunAll executes at once.
// Defaults to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallel = n }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		parallel: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run evaluates every case of scenario with a single calculator, reset
// between cases.
//
// The returned error is reserved for problems running the scenario at all
// (bad moveset, internal calculator fault, cancelled context). Expectation
// mismatches are reported in Result.Errors.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	cfg, err := scenario.Configuration()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	moves, err := scenario.Moves()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	flat := space.NewFlatSpace(scenario.Plane, cfg)
	calc := pathing.NewCalculator(moves, cfg, flat,
		pathing.WithLogger(o.logger.With("scenario", scenario.Name)),
		pathing.WithRecorder(o.recorder),
	)

	result := NewResult(scenario.Name)
	for _, c := range scenario.Cases {
		cr, err := runCase(ctx, calc, flat, c)
		if err != nil {
			return nil, fmt.Errorf("scenario %s, case %s: %w", scenario.Name, c.Name, err)
		}
		result.Cases = append(result.Cases, cr)

		for _, msg := range checkExpect(c, cr) {
			result.AddError(fmt.Sprintf("%s: %s", c.Name, msg))
		}
		calc.Reset()
	}

	o.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"cases", len(result.Cases),
		"pass", result.Pass,
	)
	return result, nil
}

// RunAll runs scenarios concurrently, one calculator per scenario. Results
// are in the same order as scenarios. The first error cancels the rest.
func RunAll(ctx context.Context, scenarios []*Scenario, opts ...Option) ([]*Result, error) {
	o := buildOptions(opts)
	results := make([]*Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if o.parallel > 0 {
		g.SetLimit(o.parallel)
	}
	for i, s := range scenarios {
		g.Go(func() error {
			r, err := Run(ctx, s, opts...)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runCase(ctx context.Context, calc *pathing.Calculator[geom.Vector2i], flat *space.FlatSpace, c Case) (CaseResult, error) {
	start, err := geom.ParseVector2i(c.Start)
	if err != nil {
		return CaseResult{}, err
	}
	goal, err := geom.ParseVector2i(c.Goal)
	if err != nil {
		return CaseResult{}, err
	}

	res, err := calc.Run(ctx, start, goal)
	if err != nil {
		return CaseResult{}, err
	}

	return CaseResult{
		Name:     c.Name,
		Outcome:  res.Outcome.String(),
		Found:    res.Found(),
		Cost:     res.Cost,
		Length:   len(res.Path),
		Expanded: res.Expanded,
		Drawing:  Draw(flat.Rows(), res.Path),
	}, nil
}

// checkExpect compares a case result against its expectation.
func checkExpect(c Case, cr CaseResult) []string {
	var errs []string
	want := c.Expect

	if cr.Found != want.Found {
		errs = append(errs, fmt.Sprintf("found = %v, want %v (outcome %s)", cr.Found, want.Found, cr.Outcome))
		return errs
	}
	if want.Cost != nil && math.Abs(cr.Cost-*want.Cost) > costTolerance {
		errs = append(errs, fmt.Sprintf("cost = %g, want %g", cr.Cost, *want.Cost))
	}
	if want.Length != nil && cr.Length != *want.Length {
		errs = append(errs, fmt.Sprintf("length = %d, want %d", cr.Length, *want.Length))
	}
	if want.Drawing != nil && !slices.Equal(cr.Drawing, want.Drawing) {
		errs = append(errs, fmt.Sprintf("drawing mismatch:\n got:\n  %s\n want:\n  %s",
			strings.Join(cr.Drawing, "\n  "), strings.Join(want.Drawing, "\n  ")))
	}
	return errs
}
