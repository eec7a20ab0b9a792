package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

func createTestConfig() *config.PhysicsConfig {
	return config.DefaultPhysics()
}

// createTestGrid decodes stage rows with the default legend, 32px tiles
func createTestGrid(t *testing.T, rows ...string) *entity.TileGrid {
	t.Helper()
	stage := &config.StageConfig{ID: "test", Tiles: rows}
	grid, err := stage.BuildGrid()
	require.NoError(t, err)
	return grid
}

// flatGrid is 20 columns wide with ground on row 3 (floor top at y=96)
func flatGrid(t *testing.T) *entity.TileGrid {
	return createTestGrid(t,
		"....................",
		"....................",
		"....................",
		"####################",
	)
}

func createTestAvatar(cfg *config.PhysicsConfig, grid *entity.TileGrid, col, row int) *entity.Avatar {
	small := entity.Size{W: cfg.Avatar.Small.Width, H: cfg.Avatar.Small.Height}
	big := entity.Size{W: cfg.Avatar.Big.Width, H: cfg.Avatar.Big.Height}
	x, y := SpawnPosition(grid, col, row, small.W, small.H)
	a := entity.NewAvatar(x, y, small, big)
	a.Grounded = true
	return a
}

func createTestController(cfg *config.PhysicsConfig, grid *entity.TileGrid, goalCol int) *AvatarController {
	return NewAvatarController(cfg, NewCollisionResolver(cfg, grid), goalCol, 0)
}
