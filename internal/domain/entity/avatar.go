package entity

// Form is the avatar's size
type Form int

const (
	FormSmall Form = iota
	FormBig
)

// String returns the form name
func (f Form) String() string {
	if f == FormBig {
		return "big"
	}
	return "small"
}

// AvatarState is the avatar's control state
type AvatarState int

const (
	AvatarNormal AvatarState = iota
	AvatarDying
	AvatarOnFlagpole
)

// String returns the state name
func (s AvatarState) String() string {
	switch s {
	case AvatarNormal:
		return "Normal"
	case AvatarDying:
		return "Dying"
	case AvatarOnFlagpole:
		return "OnFlagpole"
	default:
		return "Unknown"
	}
}

// FlagpolePhase is the step of the scripted goal sequence
type FlagpolePhase int

const (
	FlagpoleDescend FlagpolePhase = iota
	FlagpoleWalk
	FlagpoleDone
)

// Size is a body extent in pixels
type Size struct {
	W, H float64
}

// Avatar represents the player-controlled entity
type Avatar struct {
	Body

	Form   Form
	State  AvatarState
	Facing int // +1 right, -1 left

	// Timers (ticks)
	Invulnerable Countdown
	Coyote       Countdown
	JumpBuffer   Countdown
	JumpHold     Countdown
	Dying        Countdown
	FlagWalk     Countdown

	Flagpole   FlagpolePhase
	StompChain int

	SmallSize Size
	BigSize   Size
}

// NewAvatar creates a small avatar standing with its top-left at x, y
func NewAvatar(x, y float64, small, big Size) *Avatar {
	return &Avatar{
		Body:      NewBody(x, y, small.W, small.H),
		Form:      FormSmall,
		State:     AvatarNormal,
		Facing:    1,
		SmallSize: small,
		BigSize:   big,
	}
}

// IsInvulnerable returns true while the post-hit grace window runs
func (a *Avatar) IsInvulnerable() bool {
	return a.Invulnerable.Active()
}

// IsNormal returns true when the avatar accepts input and damage
func (a *Avatar) IsNormal() bool {
	return a.State == AvatarNormal
}

// SetForm switches form and body size, keeping the feet anchored
func (a *Avatar) SetForm(f Form) {
	if a.Form == f {
		return
	}
	a.Form = f
	size := a.SmallSize
	if f == FormBig {
		size = a.BigSize
	}
	a.Resize(size.W, size.H)
}
