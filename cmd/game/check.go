package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younwookim/tilerunner/internal/application/system"
	"github.com/younwookim/tilerunner/internal/domain/entity"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate physics and every stage in play order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, catalog, err := opts.loadGame()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var errs []error
			for i := 0; i < catalog.Count(); i++ {
				stage, err := catalog.Load(i)
				if err == nil {
					var w *system.World
					w, err = system.LoadStage(cfg.Physics, stage)
					if err == nil {
						blocks := w.Grid.Count(entity.TileQuestionCoin) + w.Grid.Count(entity.TileQuestionPowerUp)
						fmt.Fprintf(out, "ok   %-8s %dx%d tiles, %d hostiles, %d coins, %d ? blocks, goal col %d\n",
							stage.ID, w.Grid.Cols(), w.Grid.Rows(), w.Entities.CountHostiles(),
							w.Grid.Count(entity.TileCoinVisible), blocks, stage.GoalCol)
						continue
					}
				}
				fmt.Fprintf(out, "FAIL %-8s %v\n", catalog.Name(i), err)
				errs = append(errs, err)
			}

			if len(errs) > 0 {
				return fmt.Errorf("%d of %d stages invalid: %w", len(errs), catalog.Count(), errors.Join(errs...))
			}
			return nil
		},
	}
}
