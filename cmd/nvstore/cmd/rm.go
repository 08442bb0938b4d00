package cmd

import (
	"github.com/hupe1980/nvstore"
	"github.com/spf13/cobra"
)

func newRemoveCmd(c *cli) *cobra.Command {
	var (
		instance  uint32
		mustExist bool
	)

	cmd := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Delete a record",
		Long:    "Delete a record. Deleting a missing record succeeds unless --must-exist is set.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDir(cmd, func(dir *nvstore.Dir) error {
				return dir.Delete(instance, args[0], mustExist)
			})
		},
	}

	cmd.Flags().Uint32VarP(&instance, "instance", "i", 0, "instance id")
	cmd.Flags().BoolVar(&mustExist, "must-exist", false, "fail if the record does not exist")

	return cmd
}
