package system

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/ecs"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// bumpHeight is how far a struck block pops up before settling
const bumpHeight = 8

// EffectSystem spawns and advances ephemeral entities.
// Tweens advance one unit per tick, so durations are given in ticks.
type EffectSystem struct {
	config     *config.PhysicsConfig
	resolver   *CollisionResolver
	world      *ecs.World
	fallDeathY float64
}

// NewEffectSystem creates the effect system for one stage
func NewEffectSystem(cfg *config.PhysicsConfig, resolver *CollisionResolver, world *ecs.World, fallDeathY float64) *EffectSystem {
	return &EffectSystem{
		config:     cfg,
		resolver:   resolver,
		world:      world,
		fallDeathY: fatalLine(resolver.Grid(), fallDeathY),
	}
}

func (s *EffectSystem) tileSize() float64 {
	return float64(s.resolver.Grid().TileSize())
}

// SpawnCoinPop launches a coin out of the block at col, row
func (s *EffectSystem) SpawnCoinPop(col, row int) *entity.Effect {
	ts := s.tileSize()
	ec := s.config.Effects
	half := float32(ec.CoinPopFrames) / 2

	e := &entity.Effect{
		Kind:    entity.EffectCoinPop,
		Body:    entity.NewBody(float64(col)*ts+ts/4, float64(row-1)*ts, ts/2, ts),
		OriginY: float64(row-1) * ts,
		Tile:    entity.TileRef{Col: col, Row: row},
		Rise:    gween.New(0, float32(-ec.CoinPopHeight), half, ease.OutQuad),
		Fall:    gween.New(float32(-ec.CoinPopHeight), 0, half, ease.InQuad),
	}
	e.Lifetime.Arm(ec.CoinPopFrames)
	s.world.SpawnEffect(e)
	return e
}

// SpawnFragments bursts a broken brick into four pieces
func (s *EffectSystem) SpawnFragments(col, row int) []*entity.Effect {
	ts := s.tileSize()
	ec := s.config.Effects
	x0, y0 := float64(col)*ts, float64(row)*ts
	size := ts / 4

	pieces := []struct {
		ox, oy float64
		vx, vy float64
	}{
		{0, 0, -ec.FragmentSpeedX, -ec.FragmentSpeedY},
		{ts / 2, 0, ec.FragmentSpeedX, -ec.FragmentSpeedY},
		{0, ts / 2, -ec.FragmentSpeedX, -ec.FragmentSpeedY / 2},
		{ts / 2, ts / 2, ec.FragmentSpeedX, -ec.FragmentSpeedY / 2},
	}

	out := make([]*entity.Effect, 0, len(pieces))
	for _, p := range pieces {
		e := &entity.Effect{
			Kind: entity.EffectFragment,
			Body: entity.NewBody(x0+p.ox, y0+p.oy, size, size),
			Tile: entity.TileRef{Col: col, Row: row},
		}
		e.VX, e.VY = p.vx, p.vy
		e.OriginY = e.Y
		e.Lifetime.Arm(ec.FragmentFrames)
		s.world.SpawnEffect(e)
		out = append(out, e)
	}
	return out
}

// SpawnScoreText floats a score value up from x, y
func (s *EffectSystem) SpawnScoreText(x, y float64, value int) *entity.Effect {
	ec := s.config.Effects
	e := &entity.Effect{
		Kind:    entity.EffectScoreText,
		Body:    entity.NewBody(x, y, 0, 0),
		OriginY: y,
		Value:   value,
		Rise:    gween.New(0, float32(-ec.ScoreTextRise), float32(ec.ScoreTextFrames), ease.OutCubic),
	}
	e.Lifetime.Arm(ec.ScoreTextFrames)
	s.world.SpawnEffect(e)
	return e
}

// SpawnBump nudges the block at col, row up and back
func (s *EffectSystem) SpawnBump(col, row int) *entity.Effect {
	ts := s.tileSize()
	ec := s.config.Effects
	half := float32(ec.BumpFrames) / 2

	e := &entity.Effect{
		Kind:    entity.EffectBump,
		Body:    entity.NewBody(float64(col)*ts, float64(row)*ts, ts, ts),
		OriginY: float64(row) * ts,
		Tile:    entity.TileRef{Col: col, Row: row},
		Rise:    gween.New(0, -bumpHeight, half, ease.OutQuad),
		Fall:    gween.New(-bumpHeight, 0, half, ease.InQuad),
	}
	e.Lifetime.Arm(ec.BumpFrames)
	s.world.SpawnEffect(e)
	return e
}

// SpawnPowerUp starts a power-up emerging from the block at col, row.
// Once out it walks in dir.
func (s *EffectSystem) SpawnPowerUp(col, row, dir int) *entity.Effect {
	ts := s.tileSize()
	bc := s.config.Blocks
	w, h := bc.PowerUpSize.Width, bc.PowerUpSize.Height
	if dir == 0 {
		dir = 1
	}

	originY := float64(row)*ts + ts - h
	e := &entity.Effect{
		Kind:       entity.EffectPowerUp,
		Body:       entity.NewBody(float64(col)*ts+(ts-w)/2, originY, w, h),
		OriginY:    originY,
		Persistent: true,
		Dir:        dir,
		Value:      bc.PowerUpScore,
		Tile:       entity.TileRef{Col: col, Row: row},
		Rise:       gween.New(0, float32(-ts), float32(bc.EmergeFrames), ease.Linear),
	}
	e.Emerge.Arm(bc.EmergeFrames)
	s.world.SpawnEffect(e)
	return e
}

// Update advances every live effect by one tick
func (s *EffectSystem) Update() {
	s.world.Effects.Each(func(_ ecs.EntityID, e *entity.Effect) {
		if e.Dead {
			return
		}
		switch e.Kind {
		case entity.EffectCoinPop, entity.EffectBump:
			s.updateHop(e)
		case entity.EffectFragment:
			s.updateFragment(e)
		case entity.EffectScoreText:
			s.updateScoreText(e)
		case entity.EffectPowerUp:
			s.updatePowerUp(e)
		}
		if !e.Persistent {
			e.Lifetime.Tick()
			if !e.Lifetime.Active() {
				e.Kill()
			}
		}
	})
}

// updateHop plays the rise tween, then the fall tween
func (s *EffectSystem) updateHop(e *entity.Effect) {
	if e.Rise != nil {
		v, done := e.Rise.Update(1)
		e.OffsetY = float64(v)
		if done {
			e.Rise = nil
		}
	} else if e.Fall != nil {
		v, done := e.Fall.Update(1)
		e.OffsetY = float64(v)
		if done {
			e.Fall = nil
		}
	}
	e.Y = e.OriginY + e.OffsetY
}

func (s *EffectSystem) updateFragment(e *entity.Effect) {
	e.VY += s.config.Physics.Gravity
	e.X += e.VX
	e.Y += e.VY
	if e.Y >= s.fallDeathY {
		e.Kill()
	}
}

func (s *EffectSystem) updateScoreText(e *entity.Effect) {
	if e.Rise == nil {
		return
	}
	v, done := e.Rise.Update(1)
	e.OffsetY = float64(v)
	e.Y = e.OriginY + e.OffsetY
	if done {
		e.Rise = nil
	}
}

func (s *EffectSystem) updatePowerUp(e *entity.Effect) {
	if e.Emerge.Active() {
		v, _ := e.Rise.Update(1)
		e.OffsetY = float64(v)
		e.Y = e.OriginY + e.OffsetY
		e.Emerge.Tick()
		if !e.Emerge.Active() {
			e.Y = e.OriginY - s.tileSize()
			e.OffsetY = 0
			e.Rise = nil
		}
		return
	}

	e.VX = float64(e.Dir) * s.config.Blocks.PowerUpSpeed
	e.VY += s.config.Physics.Gravity
	if e.VY > s.config.Physics.MaxFallSpeed {
		e.VY = s.config.Physics.MaxFallSpeed
	}
	contact := s.resolver.Resolve(&e.Body, nil)
	if contact.HitWall() {
		e.Dir = -e.Dir
	}
	if e.Bottom() >= s.fallDeathY {
		e.Kill()
	}
}

// IsCollectible reports whether a power-up has finished emerging
func IsCollectible(e *entity.Effect) bool {
	return e.Kind == entity.EffectPowerUp && !e.Dead && !e.Emerge.Active()
}
