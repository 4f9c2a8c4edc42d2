package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/pathfind/internal/config"
)

// DefaultConfigFile is where config init writes when --config is not set.
const DefaultConfigFile = "pathfind.yaml"

// ConfigInitOptions holds flags for the config init command.
type ConfigInitOptions struct {
	*RootOptions
	Force bool
}

// ConfigWritten is the output of config init.
type ConfigWritten struct {
	Path string `json:"path"`
}

func (c ConfigWritten) String() string {
	return fmt.Sprintf("wrote default configuration to %s", c.Path)
}

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the YAML configuration file.

The file holds the hazard multipliers, the infinite cost, and the time
budget of a calculation. Commands read it through the global --config flag.

Examples:
  pathfind config init
  pathfind --config ./tuned.yaml config init --force
  pathfind --config ./tuned.yaml config show --format json`,
	}

	cmd.AddCommand(newConfigInitCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	return cmd
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigInitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "init",
		Short:         "Write the default configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing file")
	return cmd
}

func runConfigInit(opts *ConfigInitOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	path := opts.Config
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return f.Fail(ExitCommandError, ErrCodeWriteFailed,
			fmt.Sprintf("config file already exists: %s (use --force to overwrite)", path), nil)
	}

	if err := config.Default().Write(path); err != nil {
		return f.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write configuration", err)
	}
	return f.Success(ConfigWritten{Path: path})
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration: the --config file when it exists,
the defaults otherwise.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd)
		},
	}
}

func runConfigShow(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return failInput(f, err)
	}

	if f.Format == "json" {
		return f.Success(cfg)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, "failed to render configuration", err)
	}
	_, err = f.Writer.Write(data)
	return err
}
