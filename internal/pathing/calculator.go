package pathing

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/pathfind/internal/config"
)

// MinimumImprovement is how much cheaper a new route must be before a node is
// relaxed. Smaller differences are floating-point noise and would only churn
// the heap.
const MinimumImprovement = 0.01

// State is the lifecycle position of a Calculator.
type State int

const (
	// StateIdle means no calculation is in progress or retained.
	StateIdle State = iota
	// StateRunning means Calculate is executing.
	StateRunning
	// StateSucceeded means the last calculation reached the goal.
	StateSucceeded
	// StateExhausted means the last calculation ran out of nodes.
	StateExhausted
	// StateTimedOut means the last calculation exceeded its time budget.
	StateTimedOut
	// StateCancelled means the caller's context ended the last calculation.
	StateCancelled
	// StateFailed means the last calculation hit an internal error.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	case StateTimedOut:
		return "timed-out"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is how a finished calculation ended.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota + 1
	OutcomeExhausted
	OutcomeTimedOut
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeTimedOut:
		return "timed-out"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (o Outcome) state() State {
	switch o {
	case OutcomeSucceeded:
		return StateSucceeded
	case OutcomeExhausted:
		return StateExhausted
	case OutcomeTimedOut:
		return StateTimedOut
	case OutcomeCancelled:
		return StateCancelled
	default:
		return StateFailed
	}
}

// Result is the full report of one calculation.
type Result[P Position[P]] struct {
	// Path runs start to goal inclusive. Empty unless Outcome is succeeded.
	Path []PathNode[P]
	// Outcome is how the calculation ended.
	Outcome Outcome
	// Cost is the accumulated cost of Path (zero when there is no path).
	Cost float64
	// Expanded counts nodes popped from the open set.
	Expanded int
	// Visited counts distinct identities referenced.
	Visited int
	// Elapsed is the wall-clock duration of the calculation.
	Elapsed time.Duration
}

// Found reports whether a path was found.
func (r Result[P]) Found() bool {
	return len(r.Path) > 0
}

// Option configures a Calculator.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	now      func() time.Time
	recorder Recorder
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the time source used for the time budget.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRecorder sets the metrics recorder. Defaults to DefaultRecorder().
// Pass nil to disable metrics.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// Calculator runs A* searches for one moveset, space and configuration.
//
// The open set and visited store are owned by the calculator and reused
// across calls; Reset (or the next Calculate) discards them. A Calculator
// must not be used from more than one goroutine at a time.
type Calculator[P Position[P]] struct {
	moves  Moveset[P]
	space  Space[P]
	config config.Configuration

	open    *OpenSet[P]
	visited *Visited[P]
	state   State

	logger   *slog.Logger
	now      func() time.Time
	recorder Recorder
}

// NewCalculator creates an idle calculator.
func NewCalculator[P Position[P]](moves Moveset[P], cfg config.Configuration, space Space[P], opts ...Option) *Calculator[P] {
	o := options{
		logger: slog.Default(),
		now:    time.Now,
	}
	o.recorder = DefaultRecorder()
	for _, opt := range opts {
		opt(&o)
	}

	return &Calculator[P]{
		moves:    moves,
		space:    space,
		config:   cfg,
		open:     NewOpenSet[P](),
		visited:  NewVisited[P](),
		state:    StateIdle,
		logger:   o.logger,
		now:      o.now,
		recorder: o.recorder,
	}
}

// State returns the calculator's lifecycle state.
func (c *Calculator[P]) State() State {
	return c.state
}

// Visited exposes the store of the last calculation, for inspection.
func (c *Calculator[P]) Visited() *Visited[P] {
	return c.visited
}

// Moves returns the calculator's moveset.
func (c *Calculator[P]) Moves() Moveset[P] {
	return c.moves
}

// Reset discards all nodes so the calculator can be reused with a new
// start and goal.
func (c *Calculator[P]) Reset() {
	c.open.Clear()
	c.visited.Clear()
	c.state = StateIdle
}

// Calculate finds the cheapest path from start to goal.
//
// The path runs start to goal inclusive. When the goal is unreachable or the
// time budget runs out the path is empty and err is nil. err is non-nil only
// for internal invariant violations or when ctx is done.
func (c *Calculator[P]) Calculate(ctx context.Context, start, goal P) ([]PathNode[P], error) {
	res, err := c.Run(ctx, start, goal)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Run is Calculate with the full Result.
func (c *Calculator[P]) Run(ctx context.Context, start, goal P) (Result[P], error) {
	if c.state != StateIdle {
		c.logger.Debug("resetting calculator before reuse", "state", c.state.String())
		c.Reset()
	}
	c.state = StateRunning

	began := c.now()
	res, err := c.search(ctx, start, goal, began)
	res.Elapsed = c.now().Sub(began)
	res.Visited = c.visited.Len()

	if err != nil && res.Outcome == 0 {
		res.Outcome = OutcomeFailed
	}
	c.state = res.Outcome.state()
	if c.recorder != nil {
		c.recorder.Observe(res.Outcome, res.Expanded, res.Elapsed)
	}

	if err != nil {
		c.logger.Error("path calculation failed",
			"start", start,
			"goal", goal,
			"outcome", res.Outcome.String(),
			"error", err,
		)
		return Result[P]{Outcome: res.Outcome, Expanded: res.Expanded, Visited: res.Visited, Elapsed: res.Elapsed}, err
	}

	c.logger.Debug("path calculation finished",
		"start", start,
		"goal", goal,
		"outcome", res.Outcome.String(),
		"path_len", len(res.Path),
		"cost", res.Cost,
		"expanded", res.Expanded,
		"visited", res.Visited,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// search is the A* loop.
func (c *Calculator[P]) search(ctx context.Context, start, goal P, began time.Time) (Result[P], error) {
	var res Result[P]

	root := newRootNode(start, goal)
	c.visited.Put(root)
	if err := c.open.Insert(root); err != nil {
		return res, err
	}

	for !c.open.IsEmpty() {
		if err := ctx.Err(); err != nil {
			res.Outcome = OutcomeCancelled
			return res, err
		}

		current, err := c.open.Pop()
		if err != nil {
			return res, err
		}
		res.Expanded++

		if current.Action.Pos == goal {
			path, err := c.visited.Retrace(current)
			if err != nil {
				return res, err
			}
			res.Path = path
			res.Cost = current.GCost
			res.Outcome = OutcomeSucceeded
			return res, nil
		}

		if err := c.expand(current, goal); err != nil {
			return res, err
		}

		if budget := c.config.Timeout; budget > 0 {
			if elapsed := c.now().Sub(began); elapsed > budget {
				c.logger.Warn("path calculation exceeded time budget",
					"start", start,
					"goal", goal,
					"elapsed", elapsed,
					"timeout", budget,
					"expanded", res.Expanded,
				)
				res.Outcome = OutcomeTimedOut
				return res, nil
			}
		}
	}

	res.Outcome = OutcomeExhausted
	return res, nil
}

// expand relaxes every neighbor of current reachable through the moveset.
func (c *Calculator[P]) expand(current *Node[P], goal P) error {
	for _, move := range c.moves {
		pos := current.Action.Pos.Add(move.Offset)
		tentative := current.GCost + move.Cost + c.space.MaterialCost(pos)

		neighbor := c.visited.Resolve(NewSpatialAction(pos, move), current.Action, c.config.CostInf)
		if neighbor.GCost-tentative <= MinimumImprovement {
			continue
		}

		neighbor.GCost = tentative
		neighbor.HCost = pos.Distance(goal)
		neighbor.SetParent(current.Action)

		if neighbor.IsOpen() {
			if err := c.open.SiftUp(neighbor); err != nil {
				return err
			}
		} else if err := c.open.Insert(neighbor); err != nil {
			return err
		}
		c.visited.Put(neighbor)
	}
	return nil
}
