package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/twin/internal/app"
	"go.trai.ch/twin/internal/core/domain"
)

func (c *CLI) newAddCmd() *cobra.Command {
	var opts app.AddOptions

	cmd := &cobra.Command{
		Use:   "add <branch> [path]",
		Short: "Create a working copy and link the build caches into it",
		Args:  positional(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = c.global
			opts.Branch = args[0]
			if len(args) > 1 {
				opts.Path = args[1]
			}
			return c.app.Add(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Base, "base", "", "Ref the new branch starts from")
	cmd.Flags().BoolVarP(&opts.NewBranch, "new-branch", "b", false, "Create the branch")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Skip copying build caches")
	cacheFlags(cmd, &opts.CacheOptions)
	return cmd
}

func (c *CLI) newRestoreCmd() *cobra.Command {
	var opts app.RestoreOptions

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Link build caches from another working copy into this one",
		Args:  positional(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Options = c.global
			return c.app.Restore(cmd.Context(), opts)
		},
	}
	cacheFlags(cmd, &opts.CacheOptions)
	return cmd
}

func cacheFlags(cmd *cobra.Command, opts *app.CacheOptions) {
	cmd.Flags().StringVar(&opts.From, "from", "", "Source working copy, by path or branch")
	cmd.Flags().BoolVar(&opts.Reflink, "reflink", false, "Use copy-on-write clones where the filesystem supports them")
	cmd.Flags().BoolVar(&opts.NoReconcile, "no-reconcile", false, "Skip the post-restore command")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", domain.DefaultJobs, "Number of paths copied concurrently")
}
