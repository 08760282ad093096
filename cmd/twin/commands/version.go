package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/twin/internal/build"
)

type versionRecord struct {
	Command string `json:"command"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the twin build version",
		Args:  positional(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if c.global.JSON {
				return json.NewEncoder(out).Encode(versionRecord{
					Command: "version",
					Version: build.Version,
					Commit:  build.Commit,
					Date:    build.Date,
				})
			}
			_, err := fmt.Fprintf(out, "twin version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
			return err
		},
	}
}
