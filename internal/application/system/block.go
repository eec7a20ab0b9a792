package system

import (
	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// blockBehavior reacts to a block struck from below
type blockBehavior func(s *BlockSystem, col, row int, avatar *entity.Avatar)

// blockBehaviors is keyed by the tile code at strike time.
// Codes without an entry do nothing when struck.
var blockBehaviors = map[entity.TileCode]blockBehavior{
	entity.TileQuestionCoin:    (*BlockSystem).strikeCoinBlock,
	entity.TileQuestionPowerUp: (*BlockSystem).strikePowerUpBlock,
	entity.TileBrick:           (*BlockSystem).strikeBrick,
}

// BlockSystem mutates the tile grid: struck blocks and collected coins
type BlockSystem struct {
	config  *config.PhysicsConfig
	grid    *entity.TileGrid
	effects *EffectSystem
	bumps   []entity.TileRef

	// Event callbacks
	OnScore func(points int)
	OnCoin  func()
}

// NewBlockSystem creates the block system for one stage
func NewBlockSystem(cfg *config.PhysicsConfig, grid *entity.TileGrid, effects *EffectSystem) *BlockSystem {
	return &BlockSystem{
		config:  cfg,
		grid:    grid,
		effects: effects,
	}
}

// BeginTick forgets the bumps recorded last tick
func (s *BlockSystem) BeginTick() {
	s.bumps = s.bumps[:0]
}

// Bumps returns the solid tiles struck from below this tick
func (s *BlockSystem) Bumps() []entity.TileRef {
	return s.bumps
}

// CeilingHandler returns the collision callback for the avatar
func (s *BlockSystem) CeilingHandler(avatar *entity.Avatar) CeilingFunc {
	return func(col, row int) {
		s.Strike(col, row, avatar)
	}
}

// Strike resolves the avatar's head hitting the tile at col, row
func (s *BlockSystem) Strike(col, row int, avatar *entity.Avatar) {
	code := s.grid.Get(col, row)
	if code.IsSolid() {
		s.bumps = append(s.bumps, entity.TileRef{Col: col, Row: row})
	}
	if behavior, ok := blockBehaviors[code]; ok {
		behavior(s, col, row, avatar)
	}
}

func (s *BlockSystem) strikeCoinBlock(col, row int, _ *entity.Avatar) {
	s.grid.Set(col, row, entity.TileUsed)
	s.effects.SpawnBump(col, row)
	s.effects.SpawnCoinPop(col, row)
	s.coin()
	s.award(s.config.Blocks.CoinScore, col, row-1)
}

func (s *BlockSystem) strikePowerUpBlock(col, row int, avatar *entity.Avatar) {
	s.grid.Set(col, row, entity.TileUsed)
	s.effects.SpawnBump(col, row)
	dir := 1
	if avatar != nil {
		dir = -avatar.Facing
	}
	s.effects.SpawnPowerUp(col, row, dir)
}

func (s *BlockSystem) strikeBrick(col, row int, avatar *entity.Avatar) {
	if avatar == nil || avatar.Form != entity.FormBig {
		s.effects.SpawnBump(col, row)
		return
	}
	s.grid.Set(col, row, entity.TileEmpty)
	s.effects.SpawnFragments(col, row)
	s.award(s.config.Blocks.BrickScore, col, row)
}

// CollectCoins empties every visible coin the avatar overlaps.
// Returns how many were collected.
func (s *BlockSystem) CollectCoins(avatar *entity.Avatar) int {
	colStart := s.grid.TileIndexOf(avatar.Left())
	colEnd := s.grid.TileIndexOf(avatar.Right() - edgeEpsilon)
	rowStart := s.grid.TileIndexOf(avatar.Top())
	rowEnd := s.grid.TileIndexOf(avatar.Bottom() - edgeEpsilon)

	n := 0
	for row := rowStart; row <= rowEnd; row++ {
		for col := colStart; col <= colEnd; col++ {
			if s.grid.Get(col, row) != entity.TileCoinVisible {
				continue
			}
			s.grid.Set(col, row, entity.TileEmpty)
			n++
			s.coin()
			s.award(s.config.Blocks.CoinScore, col, row)
		}
	}
	return n
}

func (s *BlockSystem) coin() {
	if s.OnCoin != nil {
		s.OnCoin()
	}
}

// award reports points and floats them above the tile
func (s *BlockSystem) award(points, col, row int) {
	if points <= 0 {
		return
	}
	if s.OnScore != nil {
		s.OnScore(points)
	}
	ts := float64(s.grid.TileSize())
	s.effects.SpawnScoreText(float64(col)*ts, float64(row)*ts, points)
}
