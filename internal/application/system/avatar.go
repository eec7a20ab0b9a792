package system

import (
	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// AvatarSignal reports a control-state change caused by an avatar update
type AvatarSignal int

const (
	SignalNone AvatarSignal = iota
	SignalDied
	SignalDeathDone
	SignalFlagpoleGrabbed
	SignalStageClear
)

// String returns the signal name
func (s AvatarSignal) String() string {
	switch s {
	case SignalNone:
		return "None"
	case SignalDied:
		return "Died"
	case SignalDeathDone:
		return "DeathDone"
	case SignalFlagpoleGrabbed:
		return "FlagpoleGrabbed"
	case SignalStageClear:
		return "StageClear"
	default:
		return "Unknown"
	}
}

// AvatarController drives the avatar: movement, jumping, damage, death and
// the scripted goal sequence
type AvatarController struct {
	config     *config.PhysicsConfig
	resolver   *CollisionResolver
	goalCol    int
	fallDeathY float64
}

// NewAvatarController creates a controller for one stage.
// See fatalLine for how fallDeathY is bounded.
func NewAvatarController(cfg *config.PhysicsConfig, resolver *CollisionResolver, goalCol int, fallDeathY float64) *AvatarController {
	return &AvatarController{
		config:     cfg,
		resolver:   resolver,
		goalCol:    goalCol,
		fallDeathY: fatalLine(resolver.Grid(), fallDeathY),
	}
}

// fatalLine bounds a configured fall line to the grid. Rows below the grid
// read as GROUND, so a line past PixelHeight would never be reached.
// Non-positive or out-of-range values fall back to PixelHeight.
func fatalLine(grid *entity.TileGrid, y float64) float64 {
	if y <= 0 || y > grid.PixelHeight() {
		return grid.PixelHeight()
	}
	return y
}

// GoalX returns the world x of the goal column's left edge
func (c *AvatarController) GoalX() float64 {
	return float64(c.goalCol * c.resolver.Grid().TileSize())
}

// FallDeathY returns the fatal fall line
func (c *AvatarController) FallDeathY() float64 {
	return c.fallDeathY
}

// Update advances the avatar by one tick
func (c *AvatarController) Update(a *entity.Avatar, input InputState, onCeiling CeilingFunc) AvatarSignal {
	switch a.State {
	case entity.AvatarDying:
		return c.updateDying(a)
	case entity.AvatarOnFlagpole:
		return c.updateFlagpole(a)
	}
	return c.updateNormal(a, input, onCeiling)
}

func (c *AvatarController) updateNormal(a *entity.Avatar, input InputState, onCeiling CeilingFunc) AvatarSignal {
	a.Invulnerable.Tick()

	c.handleMovement(a, input)
	c.handleJump(a, input)
	c.applyGravity(a)

	wasGrounded := a.Grounded
	contact := c.resolver.Resolve(&a.Body, onCeiling)

	if contact.HitCeiling {
		a.JumpHold.Clear()
	}
	if !wasGrounded && a.Grounded {
		a.JumpHold.Clear()
		a.StompChain = 0
	}

	if a.Bottom() >= c.fallDeathY {
		c.enterDying(a, false)
		return SignalDied
	}

	if a.Right() >= c.GoalX() {
		c.grabFlagpole(a)
		return SignalFlagpoleGrabbed
	}

	return SignalNone
}

// handleMovement approaches the walk or run speed, or applies friction
func (c *AvatarController) handleMovement(a *entity.Avatar, input InputState) {
	mv := c.config.Movement
	dir := input.Direction()

	if dir == 0 {
		friction := mv.AirFriction
		if a.Grounded {
			friction = mv.GroundFriction
		}
		a.VX *= friction
		if absFloat(a.VX) < mv.StopThreshold {
			a.VX = 0
		}
		return
	}

	a.Facing = dir
	speed := mv.WalkSpeed
	if input.Run {
		speed = mv.RunSpeed
	}
	target := float64(dir) * speed

	accel := mv.AirAccel
	if a.Grounded {
		accel = mv.GroundAccel
	}

	if a.VX < target {
		a.VX += accel
		if a.VX > target {
			a.VX = target
		}
	} else if a.VX > target {
		a.VX -= accel
		if a.VX < target {
			a.VX = target
		}
	}
}

// handleJump runs coyote time, the jump buffer and variable jump height
func (c *AvatarController) handleJump(a *entity.Avatar, input InputState) {
	jc := c.config.Jump

	if a.Grounded {
		a.Coyote.Arm(jc.CoyoteFrames)
	} else {
		a.Coyote.Tick()
	}

	a.JumpBuffer.Tick()
	if input.JumpPressed {
		a.JumpBuffer.Arm(jc.BufferFrames)
	}

	if a.JumpHold.Active() && input.JumpHeld {
		a.VY -= jc.HoldBoost
		a.JumpHold.Tick()
	}
	if !input.JumpHeld {
		a.JumpHold.Clear()
	}

	if a.JumpBuffer.Active() && a.Coyote.Active() {
		a.VY = jc.Velocity
		a.JumpHold.Arm(jc.HoldFrames)
		a.JumpBuffer.Clear()
		a.Coyote.Clear()
	}
}

func (c *AvatarController) applyGravity(a *entity.Avatar) {
	a.VY += c.config.Physics.Gravity
	if a.VY > c.config.Physics.MaxFallSpeed {
		a.VY = c.config.Physics.MaxFallSpeed
	}
}

// TakeDamage hurts the avatar. Big avatars shrink and become briefly
// invulnerable; small ones die.
func (c *AvatarController) TakeDamage(a *entity.Avatar) AvatarSignal {
	if !a.IsNormal() || a.IsInvulnerable() {
		return SignalNone
	}
	if a.Form == entity.FormBig {
		a.SetForm(entity.FormSmall)
		a.Invulnerable.Arm(c.config.Avatar.InvulnFrames)
		return SignalNone
	}
	c.enterDying(a, true)
	return SignalDied
}

// Kill puts a normal avatar into the dying state regardless of form
func (c *AvatarController) Kill(a *entity.Avatar) AvatarSignal {
	if !a.IsNormal() {
		return SignalNone
	}
	c.enterDying(a, true)
	return SignalDied
}

// Grow turns a small avatar big. It returns false if nothing changed.
func (c *AvatarController) Grow(a *entity.Avatar) bool {
	if !a.IsNormal() || a.Form == entity.FormBig {
		return false
	}
	a.SetForm(entity.FormBig)
	return true
}

func (c *AvatarController) enterDying(a *entity.Avatar, pop bool) {
	a.State = entity.AvatarDying
	a.VX = 0
	if pop {
		a.VY = -c.config.Avatar.DeathPopSpeed
	}
	a.Invulnerable.Clear()
	a.JumpHold.Clear()
	a.JumpBuffer.Clear()
	a.Coyote.Clear()
	a.Dying.Arm(c.config.Avatar.DyingFrames)
}

// updateDying integrates gravity without collision until the timer expires
func (c *AvatarController) updateDying(a *entity.Avatar) AvatarSignal {
	if !a.Dying.Active() {
		return SignalDeathDone
	}
	c.applyGravity(a)
	a.Y += a.VY
	a.Dying.Tick()
	if !a.Dying.Active() {
		return SignalDeathDone
	}
	return SignalNone
}

func (c *AvatarController) grabFlagpole(a *entity.Avatar) {
	ts := float64(c.resolver.Grid().TileSize())
	a.State = entity.AvatarOnFlagpole
	a.Flagpole = entity.FlagpoleDescend
	a.Stop()
	a.X = c.GoalX() + (ts-a.W)/2
	a.JumpHold.Clear()
	a.JumpBuffer.Clear()
	a.Invulnerable.Clear()
}

// updateFlagpole plays the scripted descent and walk-off
func (c *AvatarController) updateFlagpole(a *entity.Avatar) AvatarSignal {
	fc := c.config.Flagpole

	switch a.Flagpole {
	case entity.FlagpoleDescend:
		a.VX = 0
		a.VY = fc.DescentSpeed
		c.resolver.Resolve(&a.Body, nil)
		if a.Grounded {
			a.Flagpole = entity.FlagpoleWalk
			a.Facing = 1
			a.FlagWalk.Arm(fc.WalkFrames)
		}
	case entity.FlagpoleWalk:
		a.VX = fc.WalkSpeed
		c.applyGravity(a)
		c.resolver.Resolve(&a.Body, nil)
		a.FlagWalk.Tick()
		if !a.FlagWalk.Active() {
			a.Flagpole = entity.FlagpoleDone
			a.Stop()
			return SignalStageClear
		}
	}
	return SignalNone
}
