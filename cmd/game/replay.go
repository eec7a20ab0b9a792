package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/younwookim/tilerunner/internal/application/replay"
	"github.com/younwookim/tilerunner/internal/application/session"
)

func newReplayCmd(opts *options) *cobra.Command {
	var frames int

	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Run a recording headless and print the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.newLogger()
			if err != nil {
				return err
			}
			cfg, catalog, err := opts.loadGame()
			if err != nil {
				return err
			}
			data, err := replay.LoadReplay(args[0])
			if err != nil {
				return err
			}

			logger.Info("replaying", "file", args[0], "frames", len(data.Frames), "stage", data.StageIndex)
			m := session.NewMachine(cfg.Physics, catalog, session.WithLogger(logger))
			snap, err := replay.NewReplayer(*data).Run(m, frames)
			if err != nil {
				return err
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 0, "Stop after this many frames (default: all)")
	return cmd
}

// printSnapshot writes a one-field-per-line summary of a snapshot
func printSnapshot(w io.Writer, snap session.Snapshot) {
	fmt.Fprintf(w, "tick:     %d\n", snap.Tick)
	fmt.Fprintf(w, "state:    %s\n", snap.State)
	fmt.Fprintf(w, "stage:    %s (index %d)\n", snap.StageID, snap.StageIndex)
	fmt.Fprintf(w, "score:    %d\n", snap.Score)
	fmt.Fprintf(w, "coins:    %d\n", snap.Coins)
	fmt.Fprintf(w, "lives:    %d\n", snap.Lives)
	fmt.Fprintf(w, "time:     %d\n", snap.TimeLeft)
	fmt.Fprintf(w, "camera:   %.2f\n", snap.CameraOffset)
	fmt.Fprintf(w, "avatar:   x=%.2f y=%.2f form=%s state=%s\n",
		snap.Avatar.X, snap.Avatar.Y, snap.Avatar.Form, snap.Avatar.State)
	fmt.Fprintf(w, "hostiles: %d\n", len(snap.Hostiles))
}
