package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/nvstore"
	"github.com/spf13/cobra"
)

func newGetCmd(c *cli) *cobra.Command {
	var (
		instance uint32
		output   string
	)

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Read a record",
		Long:  "Read a record and write its bytes to stdout or to a file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return c.withDir(cmd, func(dir *nvstore.Dir) error {
				data, err := dir.Load(instance, name)
				if errors.Is(err, nvstore.ErrRetry) {
					return fmt.Errorf("no record %s: %w", nvstore.Key{InstanceID: instance, Name: name}, err)
				}
				if err != nil {
					return err
				}

				if output != "" {
					return os.WriteFile(output, data, 0600)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}

	cmd.Flags().Uint32VarP(&instance, "instance", "i", 0, "instance id")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the record to this file instead of stdout")

	return cmd
}
