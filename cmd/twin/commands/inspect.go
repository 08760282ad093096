package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/twin/internal/app"
)

func (c *CLI) newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [path]",
		Short: "Show the cache configuration of a project",
		Args:  positional(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.DetectOptions{Options: c.global}
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return c.app.Detect(cmd.Context(), opts)
		},
	}
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List working copies with their cache state",
		Args:    positional(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.List(cmd.Context(), c.global)
		},
	}
}

func (c *CLI) newRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the built-in recipes in priority order",
		Args:  positional(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Recipes(cmd.Context(), c.global)
		},
	}
}
