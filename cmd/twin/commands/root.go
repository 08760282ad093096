// Package commands implements the CLI commands for twin.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/twin/internal/adapters/detector"
	"go.trai.ch/twin/internal/app"
	"go.trai.ch/twin/internal/build"
	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for twin.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	global  app.Options
}

// Application represents the application logic interface.
type Application interface {
	Add(ctx context.Context, opts app.AddOptions) error
	Restore(ctx context.Context, opts app.RestoreOptions) error
	Detect(ctx context.Context, opts app.DetectOptions) error
	List(ctx context.Context, opts app.Options) error
	Remove(ctx context.Context, opts app.RemoveOptions) error
	Init(ctx context.Context, opts app.InitOptions) error
	Recipes(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "twin",
		Short:         "Git worktrees with their build caches hard linked in",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          positional(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&c.global.JSON, "json", false, "Write one JSON record per command for agents and scripts")
	flags.StringVarP(&c.global.OutputMode, "output", "o", "auto", "Output mode: auto, tty, or linear")
	flags.BoolVar(&c.global.Verbose, "verbose", false, "Log the duration of every step")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if !detector.ValidFlag(c.global.OutputMode) {
			return invalidArgs(fmt.Sprintf("unknown output mode %q", c.global.OutputMode))
		}
		return nil
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return domain.Fail(domain.ErrInvalidArguments, err)
	})

	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRestoreCmd())
	rootCmd.AddCommand(c.newDetectCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newRecipesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// JSON reports whether --json was given. Valid after Execute.
func (c *CLI) JSON() bool {
	return c.global.JSON
}

// positional validates the positional argument count.
func positional(minArgs, maxArgs int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < minArgs || len(args) > maxArgs {
			msg := fmt.Sprintf("accepts between %d and %d arg(s), received %d", minArgs, maxArgs, len(args))
			if minArgs == maxArgs {
				msg = fmt.Sprintf("accepts %d arg(s), received %d", minArgs, len(args))
			}
			return invalidArgs(msg)
		}
		return nil
	}
}

func invalidArgs(msg string) error {
	return domain.Fail(domain.ErrInvalidArguments, zerr.New(msg))
}
