package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/harness"
	"github.com/roach88/pathfind/internal/pathing"
	"github.com/roach88/pathfind/internal/space"
	"github.com/roach88/pathfind/internal/store"
)

// FindOptions holds flags for the find command.
type FindOptions struct {
	*RootOptions
	From        string
	To          string
	Moveset     string
	Database    string
	MetricsFile string
}

// PathStep is one position of a found path.
type PathStep struct {
	X    int32  `json:"x"`
	Y    int32  `json:"y"`
	Move string `json:"move,omitempty"`
}

// PreviousAnswer summarizes an earlier recorded answer to the same query.
type PreviousAnswer struct {
	ID      string  `json:"id"`
	Outcome string  `json:"outcome"`
	Cost    float64 `json:"cost"`
}

// FindResult is the output of the find command.
type FindResult struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Moveset   string          `json:"moveset"`
	Outcome   string          `json:"outcome"`
	Found     bool            `json:"found"`
	Cost      float64         `json:"cost"`
	Length    int             `json:"length"`
	Expanded  int             `json:"expanded"`
	Visited   int             `json:"visited"`
	ElapsedNS int64           `json:"elapsed_ns"`
	Path      []PathStep      `json:"path"`
	Drawing   []string        `json:"drawing"`
	QueryHash string          `json:"query_hash"`
	ID        string          `json:"id,omitempty"`
	Previous  *PreviousAnswer `json:"previous,omitempty"`
}

// String renders the drawing followed by the search statistics.
func (r FindResult) String() string {
	var b strings.Builder
	for _, row := range r.Drawing {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if r.Found {
		fmt.Fprintf(&b, "path:     %s -> %s\n", r.From, r.To)
		fmt.Fprintf(&b, "cost:     %s\n", strconv.FormatFloat(r.Cost, 'f', -1, 64))
		fmt.Fprintf(&b, "length:   %d\n", r.Length)
	} else {
		fmt.Fprintf(&b, "no path:  %s -> %s\n", r.From, r.To)
	}
	fmt.Fprintf(&b, "outcome:  %s\n", r.Outcome)
	fmt.Fprintf(&b, "expanded: %d\n", r.Expanded)
	fmt.Fprintf(&b, "elapsed:  %s\n", time.Duration(r.ElapsedNS))
	fmt.Fprintf(&b, "query:    %s", r.QueryHash)
	if r.ID != "" {
		fmt.Fprintf(&b, "\nrecorded: %s", r.ID)
	}
	return b.String()
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find <plane-file>",
		Short: "Find the cheapest path across a plane",
		Long: `Find the cheapest path across a plane file.

The plane file holds one row per line:
  O start    G goal    _ empty    * hazardous    X solid

--from and --to default to the plane's O and G cells. The moveset is
"cardinal", "octile", or a CUE moveset file.

Exit codes:
  0 - Path found
  1 - No path (exhausted or timed out), or an internal calculator fault
  2 - Command error (bad plane, moveset, position, or database)

Examples:
  pathfind find maze.txt
  pathfind find maze.txt --from 0,0 --to 4,0 --moveset octile
  pathfind find maze.txt --moveset knight.cue --db ./history.db
  pathfind find maze.txt --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "start position x,y (defaults to the O cell)")
	cmd.Flags().StringVar(&opts.To, "to", "", "goal position x,y (defaults to the G cell)")
	cmd.Flags().StringVar(&opts.Moveset, "moveset", "cardinal", "cardinal, octile, or a .cue file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the calculation in this SQLite database")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")

	return cmd
}

func runFind(opts *FindOptions, planePath string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := opts.loadConfig()
	if err != nil {
		return failInput(f, err)
	}
	plane, err := LoadPlane(planePath)
	if err != nil {
		return failInput(f, err)
	}
	moves, movesetName, err := LoadMoveset(opts.Moveset)
	if err != nil {
		return failInput(f, err)
	}

	flat := space.NewFlatSpace(plane, cfg)
	from, err := resolvePosition(opts.From, "from", flat, space.CellStart)
	if err != nil {
		return failInput(f, err)
	}
	to, err := resolvePosition(opts.To, "to", flat, space.CellGoal)
	if err != nil {
		return failInput(f, err)
	}

	query := store.Query{Plane: plane, Moves: moves, Moveset: movesetName, Start: from, Goal: to, Config: cfg}
	hash, err := query.Hash()
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInternal, "failed to hash query", err)
	}

	result := FindResult{
		From:      from.String(),
		To:        to.String(),
		Moveset:   movesetName,
		QueryHash: hash,
	}

	var journal *store.Journal
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer st.Close()

		journal, err = store.NewJournal(ctx, st, nil)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to open history", err)
		}

		prev, ok, err := journal.Previous(ctx, query)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to look up history", err)
		}
		if ok {
			result.Previous = &PreviousAnswer{ID: prev.ID, Outcome: prev.Outcome, Cost: prev.Cost}
			f.VerboseLog("query %s answered before by %s (%s)", hash, prev.ID, prev.Outcome)
		}
	}

	f.VerboseLog("searching %s -> %s with %d moves", from, to, len(moves))
	calc := pathing.NewCalculator(moves, cfg, flat)
	res, err := calc.Run(ctx, from, to)
	if err != nil {
		if res.Outcome == pathing.OutcomeCancelled {
			return f.Fail(ExitFailure, ErrCodeGeneric, "calculation cancelled", err)
		}
		return f.Fail(ExitFailure, ErrCodeInternal, "path calculation failed", err)
	}
	result.fill(res, flat.Rows())

	if journal != nil {
		c, err := journal.Record(ctx, query, res)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to record calculation", err)
		}
		result.ID = c.ID
	}

	if opts.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, prometheus.DefaultGatherer); err != nil {
			return f.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write metrics file", err)
		}
	}

	if err := outputFind(f, result); err != nil {
		return err
	}
	if !result.Found {
		return NewExitError(ExitFailure, fmt.Sprintf("[%s] no path from %s to %s (%s)", ErrCodeNoPath, from, to, result.Outcome))
	}
	return nil
}

// fill copies a calculation result into r.
func (r *FindResult) fill(res pathing.Result[geom.Vector2i], plane []string) {
	r.Outcome = res.Outcome.String()
	r.Found = res.Found()
	r.Cost = res.Cost
	r.Length = len(res.Path)
	r.Expanded = res.Expanded
	r.Visited = res.Visited
	r.ElapsedNS = res.Elapsed.Nanoseconds()
	r.Drawing = harness.Draw(plane, res.Path)

	r.Path = make([]PathStep, len(res.Path))
	for i, step := range res.Path {
		r.Path[i] = PathStep{X: step.Action.Pos.X, Y: step.Action.Pos.Y}
		if move, ok := step.Action.Edge(); ok {
			r.Path[i].Move = move.Name
		}
	}
}

func outputFind(f *OutputFormatter, result FindResult) error {
	if f.Format != "json" {
		return f.Success(result)
	}

	response := CLIResponse{
		Status:    "ok",
		Data:      result,
		QueryHash: result.QueryHash,
	}
	if !result.Found {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeNoPath,
			Message: fmt.Sprintf("no path found (%s)", result.Outcome),
		}
	}

	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}
