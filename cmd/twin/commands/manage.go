package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/twin/internal/app"
)

func (c *CLI) newRemoveCmd() *cobra.Command {
	var opts app.RemoveOptions

	cmd := &cobra.Command{
		Use:     "remove <path|branch>",
		Aliases: []string{"rm"},
		Short:   "Remove a working copy",
		Args:    positional(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = c.global
			opts.Target = args[0]
			return c.app.Remove(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Remove even with local changes")
	return cmd
}

func (c *CLI) newInitCmd() *cobra.Command {
	var opts app.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .twin.yaml override file",
		Args:  positional(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Options = c.global
			return c.app.Init(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Recipe, "recipe", "r", "", "Built-in recipe to extend")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Replace an existing file")
	return cmd
}
