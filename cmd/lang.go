package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/they4kman/prizegrid/game"
	"github.com/they4kman/prizegrid/locale"
)

func newLangCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [tag]",
		Short: "Show or save the language used to format prizes",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, a.formatter.Tag())
				return nil
			}

			tag := locale.Match(args[0])
			if err := locale.SaveTag(cmd.Context(), a.slot, tag); err != nil {
				return err
			}
			a.formatter = locale.NewFormatter(tag)
			fmt.Fprintf(out, "Language set to %s, prizes look like %s\n", tag, a.formatter.Prize(game.LargePrize))
			return nil
		}),
	}
}
