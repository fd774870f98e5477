package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"watchboard/services/board"
)

func newNormalizeCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "normalize <in>",
		Short: "Rewrite a board file with coerced categories and generated ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(appFs, args[0])
			if err != nil {
				return fmt.Errorf("read board: %w", err)
			}
			b, err := board.Import(data)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			out, err := board.Export(b)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}
			if err := afero.WriteFile(appFs, outPath, out, 0o644); err != nil {
				return fmt.Errorf("write board: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d items to %s\n", b.Len(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "Destination file (default: stdout)")
	return cmd
}
