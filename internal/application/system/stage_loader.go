package system

import (
	"fmt"

	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// LoadStage builds a fresh World from a stage config: the grid, the avatar
// at its spawn cell, and every hostile spawn.
func LoadStage(cfg *config.PhysicsConfig, stage *config.StageConfig) (*World, error) {
	grid, err := stage.BuildGrid()
	if err != nil {
		return nil, err
	}

	small := entity.Size{W: cfg.Avatar.Small.Width, H: cfg.Avatar.Small.Height}
	big := entity.Size{W: cfg.Avatar.Big.Width, H: cfg.Avatar.Big.Height}
	x, y := SpawnPosition(grid, stage.PlayerSpawn.Col, stage.PlayerSpawn.Row, small.W, small.H)
	avatar := entity.NewAvatar(x, y, small, big)

	w := NewWorld(cfg, grid, avatar, stage.GoalCol, stage.FallDeathY)

	hw, hh := cfg.Hostiles.Size.Width, cfg.Hostiles.Size.Height
	for i, spawn := range stage.Enemies {
		kind, ok := entity.ParseHostileKind(spawn.Type)
		if !ok {
			return nil, fmt.Errorf("%w: stage %s: enemy %d has unknown type %q", config.ErrInvalidStage, stage.ID, i, spawn.Type)
		}
		hx, hy := SpawnPosition(grid, spawn.Col, spawn.Row, hw, hh)
		h := entity.NewHostile(kind, hx, hy, hw, hh)
		if spawn.FacingRight {
			h.Dir = 1
		}
		w.SpawnHostile(h)
	}

	return w, nil
}

// SpawnPosition centres a body horizontally in a cell with its feet on the
// cell's bottom edge
func SpawnPosition(grid *entity.TileGrid, col, row int, w, h float64) (float64, float64) {
	ts := float64(grid.TileSize())
	return float64(col)*ts + (ts-w)/2, float64(row+1)*ts - h
}
