package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/they4kman/prizegrid/game"
)

func newStartCmd(a *app) *cobra.Command {
	config := game.NewConfig()

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Generate a new grid and start the game",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if err := a.store.StartGame(cmd.Context(), config); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %s\n", config)
			return nil
		}),
	}

	// Define -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	cmd.Flags().Bool("help", false, "Help for this command")

	cmd.Flags().IntVarP(&config.Width, "width", "w", config.Width, "Width of the grid, in boxes")
	cmd.Flags().IntVarP(&config.Height, "height", "h", config.Height, "Height of the grid, in boxes")
	cmd.Flags().IntVarP(&config.LargePrizeCount, "large", "l", config.LargePrizeCount, "Number of large prizes to hide")
	cmd.Flags().IntVarP(&config.SmallPrizeCount, "small", "s", config.SmallPrizeCount, "Number of small prizes to hide")
	cmd.Flags().BoolVarP(&config.Minigame, "minigame", "m", config.Minigame, "Mark the game as a minigame")

	return cmd
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a box",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid box id %q", args[0])
			}

			opened, err := a.store.OpenBox(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			box, exists := a.store.Box(id)
			switch {
			case !exists:
				fmt.Fprintf(out, "Box %d does not exist\n", id)
			case !opened:
				fmt.Fprintf(out, "Box %d is already open\n", id)
			case box.HasPrize():
				fmt.Fprintf(out, "Box %d holds %s!\n", id, a.formatter.Prize(box.Prize))
			default:
				fmt.Fprintf(out, "Box %d is empty\n", id)
			}
			return nil
		}),
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Stop the game, keeping the grid as it is",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if err := a.store.ResetGame(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Game stopped")
			return nil
		}),
	}
}

func newStatusCmd(a *app) *cobra.Command {
	var showGrid bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the grid and what has been found so far",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			config := a.store.Config()
			stats := a.store.Stats()

			state := "not started"
			if a.store.GameStarted() {
				state = "started"
			}
			fmt.Fprintf(out, "%s, %s\n", config, state)
			if showGrid {
				renderGrid(out, config.Width, a.store.Boxes())
			}
			fmt.Fprintf(out, "Opened %d of %d boxes, %d remaining\n", stats.Opened, stats.Total, stats.Remaining)
			fmt.Fprintf(out, "Large prizes found: %d of %d (%s each)\n",
				stats.LargeFound, config.LargePrizeCount, a.formatter.Prize(game.LargePrize))
			fmt.Fprintf(out, "Small prizes found: %d of %d (%s each)\n",
				stats.SmallFound, config.SmallPrizeCount, a.formatter.Prize(game.SmallPrize))
			fmt.Fprintf(out, "Winnings: %s\n", a.formatter.Prize(stats.Winnings))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&showGrid, "grid", "g", true, "Print the grid")

	return cmd
}

// renderGrid prints one row of boxes per line. Closed boxes never reveal
// their prize.
func renderGrid(out io.Writer, width int, boxes []game.Box) {
	var row strings.Builder
	for i, box := range boxes {
		switch {
		case !box.Opened:
			row.WriteByte('#')
		case box.Prize == game.LargePrize:
			row.WriteByte('*')
		case box.Prize == game.SmallPrize:
			row.WriteByte('$')
		default:
			row.WriteByte('.')
		}
		if (i+1)%width == 0 {
			fmt.Fprintln(out, row.String())
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(out, row.String())
	}
}
