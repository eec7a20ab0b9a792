package system

import (
	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/ecs"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// PatrolAI walks hostiles back and forth, turning at walls and ledges
type PatrolAI struct {
	config     *config.PhysicsConfig
	resolver   *CollisionResolver
	fallDeathY float64
}

// NewPatrolAI creates the hostile movement system for one stage
func NewPatrolAI(cfg *config.PhysicsConfig, resolver *CollisionResolver, fallDeathY float64) *PatrolAI {
	return &PatrolAI{
		config:     cfg,
		resolver:   resolver,
		fallDeathY: fatalLine(resolver.Grid(), fallDeathY),
	}
}

// Update moves every hostile by one tick. Hostiles stay dormant until they
// come within the wake margin of the camera's right edge.
func (p *PatrolAI) Update(hostiles *ecs.Pool[entity.Hostile], avatar *entity.Avatar, cameraRight float64) {
	hostiles.Each(func(_ ecs.EntityID, h *entity.Hostile) {
		p.updateHostile(h, avatar, cameraRight)
	})
	p.separate(hostiles.Items())
}

func (p *PatrolAI) updateHostile(h *entity.Hostile, avatar *entity.Avatar, cameraRight float64) {
	if h.Removed {
		return
	}

	if h.Squished {
		h.Squish.Tick()
		if !h.Squish.Active() {
			h.Removed = true
		}
		return
	}

	if !h.Awake {
		if h.X > cameraRight+p.config.Hostiles.WakeMargin {
			return
		}
		h.Awake = true
	}

	hc := p.config.Hostiles
	traits := h.Kind.Traits()
	speed := hc.Speed

	if traits.Senses {
		h.Aggro = avatar != nil && avatar.IsNormal() &&
			absFloat(avatar.CenterX()-h.CenterX()) <= hc.SenseRange
		if h.Aggro {
			if d := sign(avatar.CenterX() - h.CenterX()); d != 0 {
				h.Dir = d
			}
			speed = hc.ChargeSpeed
		}
	}

	if traits.LedgeAware && h.Grounded && p.atLedge(h) {
		h.Reverse()
	}

	h.VX = float64(h.Dir) * speed
	h.VY += p.config.Physics.Gravity
	if h.VY > p.config.Physics.MaxFallSpeed {
		h.VY = p.config.Physics.MaxFallSpeed
	}

	contact := p.resolver.Resolve(&h.Body, nil)
	if contact.HitWall() {
		h.Reverse()
	}

	if h.Bottom() >= p.fallDeathY {
		h.Removed = true
	}
}

// atLedge probes the floor just past the leading edge
func (p *PatrolAI) atLedge(h *entity.Hostile) bool {
	edge := h.Left()
	if h.Dir > 0 {
		edge = h.Right()
	}
	probeX := edge + float64(h.Dir)*p.config.Hostiles.LedgeLookahead
	probeY := h.Bottom() + 1
	return !p.resolver.Grid().IsSolidAt(probeX, probeY)
}

// separate turns overlapping hostiles away from each other
func (p *PatrolAI) separate(hostiles []*entity.Hostile) {
	for i := 0; i < len(hostiles); i++ {
		a := hostiles[i]
		if !a.IsAlive() || !a.Awake {
			continue
		}
		for j := i + 1; j < len(hostiles); j++ {
			b := hostiles[j]
			if !b.IsAlive() || !b.Awake {
				continue
			}
			if !a.AABB().Overlaps(b.AABB()) {
				continue
			}
			if a.CenterX() <= b.CenterX() {
				a.Dir, b.Dir = -1, 1
			} else {
				a.Dir, b.Dir = 1, -1
			}
		}
	}
}
