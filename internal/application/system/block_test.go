package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/tilerunner/internal/domain/entity"
)

type blockEvents struct {
	scores []int
	coins  int
}

// createBlockWorld builds a stage with one of each block on row 1
func createBlockWorld(t *testing.T) (*World, *blockEvents) {
	t.Helper()
	cfg := createTestConfig()
	grid := createTestGrid(t,
		"..........",
		".?PBU.....",
		"..........",
		"##########",
		"..oo......",
	)
	a := createTestAvatar(cfg, grid, 1, 2)
	w := NewWorld(cfg, grid, a, 9, 0)

	ev := &blockEvents{}
	w.OnScore = func(points int) { ev.scores = append(ev.scores, points) }
	w.OnCoin = func() { ev.coins++ }
	return w, ev
}

func countEffects(w *World, kind entity.EffectKind) int {
	n := 0
	for _, e := range w.Entities.Effects.Items() {
		if e.Kind == kind && !e.Dead {
			n++
		}
	}
	return n
}

func TestBlockSystem_CoinBlock(t *testing.T) {
	cfg := createTestConfig()
	w, ev := createBlockWorld(t)

	w.Blocks.Strike(1, 1, w.Avatar)

	assert.Equal(t, entity.TileUsed, w.Grid.Get(1, 1))
	assert.Equal(t, 1, ev.coins)
	assert.Equal(t, []int{cfg.Blocks.CoinScore}, ev.scores)
	assert.Equal(t, []entity.TileRef{{Col: 1, Row: 1}}, w.Blocks.Bumps())
	assert.Equal(t, 1, countEffects(w, entity.EffectCoinPop))
	assert.Equal(t, 1, countEffects(w, entity.EffectBump))
	assert.Equal(t, 1, countEffects(w, entity.EffectScoreText))

	// A used block only bumps
	w.Blocks.Strike(1, 1, w.Avatar)
	assert.Equal(t, 1, ev.coins)
	assert.Equal(t, 1, countEffects(w, entity.EffectCoinPop))
}

func TestBlockSystem_PowerUpBlock(t *testing.T) {
	tests := []struct {
		name    string
		facing  int
		wantDir int
	}{
		{"facing right spawns walking left", 1, -1},
		{"facing left spawns walking right", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ev := createBlockWorld(t)
			w.Avatar.Facing = tt.facing

			w.Blocks.Strike(2, 1, w.Avatar)

			assert.Equal(t, entity.TileUsed, w.Grid.Get(2, 1))
			assert.Empty(t, ev.scores, "points come on pickup")
			var powerUps []*entity.Effect
			for _, e := range w.Entities.Effects.Items() {
				if e.Kind == entity.EffectPowerUp {
					powerUps = append(powerUps, e)
				}
			}
			if assert.Len(t, powerUps, 1) {
				assert.Equal(t, tt.wantDir, powerUps[0].Dir)
				assert.False(t, IsCollectible(powerUps[0]))
			}
		})
	}
}

func TestBlockSystem_Brick(t *testing.T) {
	cfg := createTestConfig()

	t.Run("small avatar bumps it", func(t *testing.T) {
		w, ev := createBlockWorld(t)

		w.Blocks.Strike(3, 1, w.Avatar)

		assert.Equal(t, entity.TileBrick, w.Grid.Get(3, 1))
		assert.Empty(t, ev.scores)
		assert.Equal(t, 1, countEffects(w, entity.EffectBump))
		assert.Len(t, w.Blocks.Bumps(), 1)
	})

	t.Run("big avatar breaks it", func(t *testing.T) {
		w, ev := createBlockWorld(t)
		w.Avatar.SetForm(entity.FormBig)

		w.Blocks.Strike(3, 1, w.Avatar)

		assert.Equal(t, entity.TileEmpty, w.Grid.Get(3, 1))
		assert.Equal(t, []int{cfg.Blocks.BrickScore}, ev.scores)
		assert.Equal(t, 4, countEffects(w, entity.EffectFragment))
		assert.Len(t, w.Blocks.Bumps(), 1, "a broken brick still bumps what stands on it")
	})
}

func TestBlockSystem_InertTiles(t *testing.T) {
	w, ev := createBlockWorld(t)

	w.Blocks.Strike(4, 1, w.Avatar)
	w.Blocks.Strike(5, 1, w.Avatar)

	assert.Equal(t, entity.TileUsed, w.Grid.Get(4, 1))
	assert.Equal(t, []entity.TileRef{{Col: 4, Row: 1}}, w.Blocks.Bumps(), "empty tiles are not bumps")
	assert.Zero(t, ev.coins)
	assert.Zero(t, w.Entities.Effects.Len())
}

func TestBlockSystem_BeginTickForgetsBumps(t *testing.T) {
	w, _ := createBlockWorld(t)
	w.Blocks.Strike(4, 1, w.Avatar)

	w.Blocks.BeginTick()

	assert.Empty(t, w.Blocks.Bumps())
}

func TestBlockSystem_CollectCoins(t *testing.T) {
	cfg := createTestConfig()
	w, ev := createBlockWorld(t)

	// Straddle the two coins on row 4
	w.Avatar.X = 80
	w.Avatar.Y = 130

	n := w.Blocks.CollectCoins(w.Avatar)

	assert.Equal(t, 2, n)
	assert.Equal(t, 2, ev.coins)
	assert.Equal(t, []int{cfg.Blocks.CoinScore, cfg.Blocks.CoinScore}, ev.scores)
	assert.Equal(t, entity.TileEmpty, w.Grid.Get(2, 4))
	assert.Equal(t, entity.TileEmpty, w.Grid.Get(3, 4))

	assert.Zero(t, w.Blocks.CollectCoins(w.Avatar), "a coin is collected once")
}

func TestBlockSystem_CollectCoinsNeedsOverlap(t *testing.T) {
	w, ev := createBlockWorld(t)

	// Right edge exactly on the coin's left edge
	w.Avatar.X = 64 - w.Avatar.W
	w.Avatar.Y = 130

	assert.Zero(t, w.Blocks.CollectCoins(w.Avatar))
	assert.Zero(t, ev.coins)
	assert.Equal(t, entity.TileCoinVisible, w.Grid.Get(2, 4))
}
