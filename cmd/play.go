package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/they4kman/prizegrid/director/random"
	"github.com/they4kman/prizegrid/game"
)

func newPlayCmd(a *app) *cobra.Command {
	var limit int
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Let the computer open boxes",
		Long: `Let the computer open closed boxes in a random order.

Starts the game first if it was not started yet.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.store.GameStarted() {
				if err := a.store.StartGame(ctx, a.store.Config()); err != nil {
					return err
				}
			}

			rng, err := game.NewRand(directorSeed(a.cfg.Seed))
			if err != nil {
				return err
			}

			opened, err := game.Play(ctx, a.store, random.New(rng), limit, interval)
			out := cmd.OutOrStdout()
			for _, box := range opened {
				if box.HasPrize() {
					fmt.Fprintf(out, "Box %d: %s\n", box.ID, a.formatter.Prize(box.Prize))
				} else {
					fmt.Fprintf(out, "Box %d: empty\n", box.ID)
				}
			}
			fmt.Fprintf(out, "Opened %d boxes, winnings %s\n", len(opened), a.formatter.Prize(a.store.Stats().Winnings))
			return err
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Stop after this many boxes, 0 opens them all")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Pause between boxes")

	return cmd
}

// directorSeed keeps the opening order independent of the grid layout when
// a fixed seed is given. Zero still draws a fresh seed.
func directorSeed(seed int64) int64 {
	if seed == 0 {
		return 0
	}
	derived := seed ^ 0x5deece66d
	if derived == 0 {
		derived = 1
	}
	return derived
}
