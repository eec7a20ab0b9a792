package system

import (
	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/ecs"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// Pipeline stage names, in execution order
const (
	StageAvatar   = "avatar"
	StageCoins    = "coins"
	StageEffects  = "effects"
	StageHostiles = "hostiles"
	StageCombat   = "combat"
	StageCamera   = "camera"
	StageSweep    = "sweep"
)

// TickMode selects which pipeline stages run
type TickMode int

const (
	// TickFull runs the whole simulation
	TickFull TickMode = iota
	// TickScripted runs only the avatar script and effects (dying, stage clear)
	TickScripted
)

// pipelineStage is one named step of the per-tick pipeline
type pipelineStage struct {
	name     string
	scripted bool // also runs in TickScripted
	run      func(w *World, in InputState)
}

var pipeline = []pipelineStage{
	{name: StageAvatar, scripted: true, run: (*World).runAvatar},
	{name: StageCoins, run: (*World).runCoins},
	{name: StageEffects, scripted: true, run: (*World).runEffects},
	{name: StageHostiles, run: (*World).runHostiles},
	{name: StageCombat, run: (*World).runCombat},
	{name: StageCamera, run: (*World).runCamera},
	{name: StageSweep, scripted: true, run: (*World).runSweep},
}

// StageNames returns the pipeline stage names in execution order
func StageNames() []string {
	names := make([]string, len(pipeline))
	for i, st := range pipeline {
		names[i] = st.name
	}
	return names
}

// World owns one loaded stage: the grid, the avatar, the entity pools and
// the systems that advance them.
type World struct {
	Grid     *entity.TileGrid
	Avatar   *entity.Avatar
	Entities *ecs.World

	Resolver *CollisionResolver
	Avatars  *AvatarController
	Patrol   *PatrolAI
	Combat   *CombatResolver
	Blocks   *BlockSystem
	Effects  *EffectSystem
	Camera   *Camera

	// Event callbacks
	OnScore func(points int)
	OnCoin  func()

	signal AvatarSignal
	trace  func(stage string)
}

// NewWorld wires the systems for a grid and its spawned entities
func NewWorld(cfg *config.PhysicsConfig, grid *entity.TileGrid, avatar *entity.Avatar, goalCol int, fallDeathY float64) *World {
	entities := ecs.NewWorld()
	resolver := NewCollisionResolver(cfg, grid)
	avatars := NewAvatarController(cfg, resolver, goalCol, fallDeathY)
	effects := NewEffectSystem(cfg, resolver, entities, avatars.FallDeathY())

	w := &World{
		Grid:     grid,
		Avatar:   avatar,
		Entities: entities,
		Resolver: resolver,
		Avatars:  avatars,
		Patrol:   NewPatrolAI(cfg, resolver, avatars.FallDeathY()),
		Combat:   NewCombatResolver(cfg, grid, avatars, effects),
		Blocks:   NewBlockSystem(cfg, grid, effects),
		Effects:  effects,
		Camera:   NewCamera(cfg, grid.PixelWidth()),
	}

	w.Blocks.OnScore = w.score
	w.Blocks.OnCoin = w.coin
	w.Combat.OnScore = w.score
	return w
}

// SpawnHostile adds a hostile to the stage
func (w *World) SpawnHostile(h *entity.Hostile) ecs.EntityID {
	return w.Entities.SpawnHostile(h)
}

// Step advances the stage by one tick and returns the avatar's signal
func (w *World) Step(in InputState, mode TickMode) AvatarSignal {
	w.signal = SignalNone
	w.Blocks.BeginTick()

	for _, st := range pipeline {
		if mode == TickScripted && !st.scripted {
			continue
		}
		if w.trace != nil {
			w.trace(st.name)
		}
		st.run(w, in)
	}
	return w.signal
}

// Kill ends the avatar's life (time up)
func (w *World) Kill() AvatarSignal {
	return w.Avatars.Kill(w.Avatar)
}

func (w *World) runAvatar(in InputState) {
	w.signal = w.Avatars.Update(w.Avatar, in, w.Blocks.CeilingHandler(w.Avatar))
}

func (w *World) runCoins(_ InputState) {
	if w.Avatar.IsNormal() {
		w.Blocks.CollectCoins(w.Avatar)
	}
}

func (w *World) runEffects(_ InputState) {
	w.Effects.Update()
}

func (w *World) runHostiles(_ InputState) {
	w.Patrol.Update(w.Entities.Hostiles, w.Avatar, w.Camera.Right())
}

func (w *World) runCombat(_ InputState) {
	if sig := w.Combat.Update(w.Avatar, w.Entities, w.Blocks.Bumps()); sig != SignalNone {
		w.signal = sig
	}
}

func (w *World) runCamera(_ InputState) {
	w.Camera.Follow(w.Avatar.X)
}

func (w *World) runSweep(_ InputState) {
	w.Entities.Sweep()
}

func (w *World) score(points int) {
	if w.OnScore != nil {
		w.OnScore(points)
	}
}

func (w *World) coin() {
	if w.OnCoin != nil {
		w.OnCoin()
	}
}
