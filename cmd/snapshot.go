package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/they4kman/prizegrid/game"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the grid as a YAML snapshot",
		Long: `Write the grid as a YAML snapshot, to stdout unless a file is given.

Each board row holds one character per box:
	#  closed, empty     .  opened, empty
	s  closed, small     $  opened, small
	L  closed, large     *  opened, large
`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			out := a.store.Snapshot().Serialize()
			if len(args) == 0 {
				_, err := io.WriteString(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(args[0], []byte(out), 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			a.log.WithField("file", args[0]).Info("snapshot exported")
			return nil
		}),
	}
}

func newImportCmd(a *app) *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the grid with a YAML snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			in, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			snapshot, err := game.LoadSnapshot(string(in))
			if err != nil {
				return err
			}
			if err := a.store.ApplySnapshot(cmd.Context(), snapshot, fresh); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", a.store.Config())
			return nil
		}),
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "Close every box of the imported grid")

	return cmd
}
