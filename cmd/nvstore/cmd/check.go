package cmd

import (
	"fmt"

	"github.com/hupe1980/nvstore"
	"github.com/spf13/cobra"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate and lock the state directory",
		Long:  "Validate the state directory, acquire its lock and release it again.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDir(cmd, func(dir *nvstore.Dir) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (version %s)\n", dir.Root(), dir.Config().Version)
				return nil
			})
		},
	}
}
