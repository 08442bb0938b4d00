package cmd

import (
	"fmt"

	"github.com/hupe1980/nvstore"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List records",
		Long:    "List the records of the configured version, ordered by instance and name.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDir(cmd, func(dir *nvstore.Dir) error {
				keys, err := dir.Keys()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(keys) == 0 {
					fmt.Fprintln(out, "(no records)")
					return nil
				}
				for _, key := range keys {
					fmt.Fprintf(out, "%d\t%s\n", key.InstanceID, key.Name)
				}
				return nil
			})
		},
	}
}
