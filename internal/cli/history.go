package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pathfind/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	ID       string
}

// HistoryResult is the output of the history command when listing.
type HistoryResult struct {
	Calculations []store.Calculation `json:"calculations"`
}

func (h HistoryResult) String() string {
	if len(h.Calculations) == 0 {
		return "No calculations recorded."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-36s %-10s %-8s %-10s %-10s %s\n", "SEQ", "ID", "OUTCOME", "COST", "START", "GOAL", "MOVESET")
	for _, c := range h.Calculations {
		fmt.Fprintf(&b, "%-6d %-36s %-10s %-8s %-10s %-10s %s\n",
			c.Seq, c.ID, c.Outcome, formatCost(c), c.Start, c.Goal, c.Moveset)
	}
	fmt.Fprintf(&b, "\n%d calculation(s)", len(h.Calculations))
	return b.String()
}

// CalculationDetail is the output of the history command for one row.
type CalculationDetail struct {
	store.Calculation
}

func (d CalculationDetail) String() string {
	c := d.Calculation
	var b strings.Builder
	fmt.Fprintf(&b, "id:       %s\n", c.ID)
	fmt.Fprintf(&b, "seq:      %d\n", c.Seq)
	fmt.Fprintf(&b, "query:    %s\n", c.QueryHash)
	fmt.Fprintf(&b, "moveset:  %s\n", c.Moveset)
	fmt.Fprintf(&b, "from:     %s\n", c.Start)
	fmt.Fprintf(&b, "to:       %s\n", c.Goal)
	fmt.Fprintf(&b, "outcome:  %s\n", c.Outcome)
	fmt.Fprintf(&b, "cost:     %s\n", formatCost(c))
	fmt.Fprintf(&b, "expanded: %d\n", c.Expanded)
	fmt.Fprintf(&b, "visited:  %d\n", c.Visited)
	fmt.Fprintf(&b, "elapsed:  %s\n", c.Elapsed)
	fmt.Fprintf(&b, "path:     %s", c.Path)
	return b.String()
}

func formatCost(c store.Calculation) string {
	if c.Outcome != "succeeded" {
		return "-"
	}
	return strconv.FormatFloat(c.Cost, 'f', -1, 64)
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded calculations",
		Long: `List calculations recorded by find --db, newest first.

With --id, show a single calculation including its path.

Examples:
  pathfind history --db ./history.db
  pathfind history --db ./history.db --limit 5 --format json
  pathfind history --db ./history.db --id 0192f0c4-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of calculations to list (0 for all)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show a single calculation")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	f := opts.formatter(cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	if opts.ID != "" {
		c, err := st.ReadCalculation(ctx, opts.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("calculation not found: %s", opts.ID), nil)
		}
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to read calculation", err)
		}
		return f.Success(CalculationDetail{Calculation: c})
	}

	calcs, err := st.ListCalculations(ctx, opts.Limit)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to list calculations", err)
	}
	return f.Success(HistoryResult{Calculations: calcs})
}
