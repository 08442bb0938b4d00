package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/nvstore"
	"github.com/spf13/cobra"
)

func newPutCmd(c *cli) *cobra.Command {
	var (
		instance uint32
		input    string
	)

	cmd := &cobra.Command{
		Use:   "put <name>",
		Short: "Write a record",
		Long:  "Atomically replace a record with the bytes read from stdin or from a file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			return c.withDir(cmd, func(dir *nvstore.Dir) error {
				if err := dir.Store(instance, args[0], data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "stored %d bytes\n", len(data))
				return nil
			})
		},
	}

	cmd.Flags().Uint32VarP(&instance, "instance", "i", 0, "instance id")
	cmd.Flags().StringVarP(&input, "file", "f", "", "read the record from this file instead of stdin")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
