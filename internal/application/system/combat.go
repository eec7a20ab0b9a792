package system

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/ecs"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

const (
	tagAvatar  = "avatar"
	tagHostile = "hostile"

	// spaceMarginTiles pads the broad-phase space so bodies slightly outside
	// the level (jumping above the top row, falling into a pit) still register
	spaceMarginTiles = 4
)

// Outcome is the result of an avatar touching a hostile
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeStomp
	OutcomeDamage
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeStomp:
		return "Stomp"
	case OutcomeDamage:
		return "Damage"
	default:
		return "Unknown"
	}
}

// DecideContact is the avatar-vs-hostile rule: a falling avatar whose feet
// are above the hostile's midline stomps it; any other overlap hurts.
func DecideContact(a *entity.Avatar, h *entity.Hostile, falling bool, tolerance float64) Outcome {
	if !a.AABB().Overlaps(h.AABB()) {
		return OutcomeNone
	}
	if falling && h.Kind.Traits().Stompable && a.Bottom()-tolerance < h.CenterY() {
		return OutcomeStomp
	}
	return OutcomeDamage
}

// CombatResolver settles avatar-vs-hostile contacts, bump kills and
// power-up pickups after all movement of the tick.
type CombatResolver struct {
	config  *config.PhysicsConfig
	avatars *AvatarController
	effects *EffectSystem
	grid    *entity.TileGrid

	space     *resolv.Space
	margin    float64
	avatarObj *resolv.Object
	objects   map[ecs.EntityID]*resolv.Object

	// Event callbacks
	OnScore func(points int)
}

// NewCombatResolver creates the combat system for one stage
func NewCombatResolver(cfg *config.PhysicsConfig, grid *entity.TileGrid, avatars *AvatarController, effects *EffectSystem) *CombatResolver {
	ts := grid.TileSize()
	margin := spaceMarginTiles * ts
	space := resolv.NewSpace(grid.Cols()*ts+2*margin, grid.Rows()*ts+2*margin, ts, ts)

	return &CombatResolver{
		config:  cfg,
		avatars: avatars,
		effects: effects,
		grid:    grid,
		space:   space,
		margin:  float64(margin),
		objects: make(map[ecs.EntityID]*resolv.Object),
	}
}

// Decide applies the contact rule with the configured stomp tolerance
func (s *CombatResolver) Decide(a *entity.Avatar, h *entity.Hostile, falling bool) Outcome {
	return DecideContact(a, h, falling, s.config.Combat.StompTolerance)
}

// Update resolves every contact of the tick. It returns SignalDied if the
// avatar was killed.
func (s *CombatResolver) Update(a *entity.Avatar, world *ecs.World, bumps []entity.TileRef) AvatarSignal {
	s.sync(a, world.Hostiles)

	s.bumpKills(world.Hostiles, bumps)
	s.collectPowerUps(a, world.Effects)

	if !a.IsNormal() {
		return SignalNone
	}

	falling := a.VY > 0
	for _, h := range s.candidates() {
		if !h.IsAlive() {
			continue
		}
		switch s.Decide(a, h, falling) {
		case OutcomeStomp:
			s.stomp(a, h)
		case OutcomeDamage:
			if sig := s.avatars.TakeDamage(a); sig == SignalDied {
				return sig
			}
		}
		if !a.IsNormal() {
			break
		}
	}
	return SignalNone
}

// sync mirrors body positions into the broad-phase space
func (s *CombatResolver) sync(a *entity.Avatar, hostiles *ecs.Pool[entity.Hostile]) {
	if s.avatarObj == nil {
		s.avatarObj = resolv.NewObject(0, 0, a.W, a.H, tagAvatar)
		s.space.Add(s.avatarObj)
	}
	s.place(s.avatarObj, &a.Body)
	s.avatarObj.Data = a

	for id, obj := range s.objects {
		h, ok := hostiles.Get(id)
		if !ok || h.Removed {
			s.space.Remove(obj)
			delete(s.objects, id)
		}
	}

	hostiles.Each(func(id ecs.EntityID, h *entity.Hostile) {
		if h.Removed {
			return
		}
		obj, ok := s.objects[id]
		if !ok {
			obj = resolv.NewObject(0, 0, h.W, h.H, tagHostile)
			obj.Data = h
			s.space.Add(obj)
			s.objects[id] = obj
		}
		s.place(obj, &h.Body)
	})
}

func (s *CombatResolver) place(obj *resolv.Object, b *entity.Body) {
	obj.X = b.X + s.margin
	obj.Y = b.Y + s.margin
	obj.W = b.W
	obj.H = b.H
	obj.Update()
}

// candidates returns hostiles sharing a cell with the avatar, in handle order
func (s *CombatResolver) candidates() []*entity.Hostile {
	check := s.avatarObj.Check(0, 0, tagHostile)
	if check == nil {
		return nil
	}

	seen := make(map[*entity.Hostile]bool, len(check.Objects))
	out := make([]*entity.Hostile, 0, len(check.Objects))
	for _, obj := range check.Objects {
		h, ok := obj.Data.(*entity.Hostile)
		if !ok || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *CombatResolver) stomp(a *entity.Avatar, h *entity.Hostile) {
	h.SquishFor(s.config.Hostiles.SquishFrames)
	a.VY = -s.config.Combat.StompBounce

	a.StompChain++
	if limit := s.config.Combat.MaxChain; limit > 0 && a.StompChain > limit {
		a.StompChain = limit
	}
	s.award(s.config.Combat.StompScore*a.StompChain, h.X, h.Y)
}

// bumpKills squishes hostiles standing on a block struck from below
func (s *CombatResolver) bumpKills(hostiles *ecs.Pool[entity.Hostile], bumps []entity.TileRef) {
	if len(bumps) == 0 {
		return
	}
	ts := float64(s.grid.TileSize())
	hostiles.Each(func(_ ecs.EntityID, h *entity.Hostile) {
		if !h.IsAlive() {
			return
		}
		for _, b := range bumps {
			top := float64(b.Row) * ts
			left := float64(b.Col) * ts
			standing := absFloat(h.Bottom()-top) < 1
			over := h.Right() > left && h.Left() < left+ts
			if standing && over {
				h.SquishFor(s.config.Hostiles.SquishFrames)
				s.award(s.config.Combat.BumpKillScore, h.X, h.Y)
				return
			}
		}
	})
}

// collectPowerUps grows the avatar on contact with an emerged power-up
func (s *CombatResolver) collectPowerUps(a *entity.Avatar, effects *ecs.Pool[entity.Effect]) {
	if !a.IsNormal() {
		return
	}
	effects.Each(func(_ ecs.EntityID, e *entity.Effect) {
		if !IsCollectible(e) || !a.AABB().Overlaps(e.AABB()) {
			return
		}
		e.Kill()
		s.avatars.Grow(a)
		s.award(e.Value, e.X, e.Y)
	})
}

func (s *CombatResolver) award(points int, x, y float64) {
	if points <= 0 {
		return
	}
	if s.OnScore != nil {
		s.OnScore(points)
	}
	s.effects.SpawnScoreText(x, y, points)
}
