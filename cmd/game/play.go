package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/tilerunner/internal/application/game"
	"github.com/younwookim/tilerunner/internal/application/scene/playing"
	"github.com/younwookim/tilerunner/internal/infrastructure/save"
)

// appName names the per-user save directory
const appName = "tilerunner"

func newPlayCmd(opts *options) *cobra.Command {
	var (
		stage  int
		record string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the game",
		Long: `Open the game window.

Controls:
  Arrows/A,D   - Move
  Shift/X      - Run
  Z/Space/Up   - Jump (hold for height)
  Enter        - Start
  Esc          - Pause
  F5           - Save recording now

Examples:
  game play
  game play --stage 2
  game play --record run.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := opts.newLogger()
			if err != nil {
				return err
			}
			cfg, catalog, err := opts.loadGame()
			if err != nil {
				return err
			}
			if stage >= catalog.Count() {
				return fmt.Errorf("stage %d out of range, %d stages loaded", stage, catalog.Count())
			}

			scores, err := save.Open(appName)
			if err != nil {
				logger.Warn("high scores disabled", "err", err)
				scores = nil
			}

			scene, err := playing.New(cfg.Physics, catalog, playing.Options{
				StartStage: stage,
				RecordPath: record,
				Scores:     scores,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			display := cfg.Physics.Display
			ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
			ebiten.SetWindowTitle("tilerunner")
			ebiten.SetTPS(display.Framerate)

			logger.Info("starting", "stages", catalog.Count(), "record", record != "")
			g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.Framerate)
			if err := ebiten.RunGame(g); err != nil {
				return fmt.Errorf("game loop: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&stage, "stage", -1, "Start directly on this stage index (default: title screen)")
	cmd.Flags().StringVar(&record, "record", "", "Record input to file (e.g., --record replay.json)")
	return cmd
}
