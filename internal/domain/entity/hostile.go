package entity

// HostileKind defines the behavior family of a hostile
type HostileKind int

const (
	HostileWalker HostileKind = iota
	HostileCharger
	HostileSpiker

	hostileKindCount
)

// HostileTraits holds per-kind behavior switches
type HostileTraits struct {
	Name       string
	Stompable  bool
	LedgeAware bool
	Senses     bool // turns toward the avatar when it comes within range
}

var hostileTraits = [hostileKindCount]HostileTraits{
	HostileWalker:  {Name: "walker", Stompable: true, LedgeAware: true},
	HostileCharger: {Name: "charger", Stompable: true, LedgeAware: true, Senses: true},
	HostileSpiker:  {Name: "spiker", Stompable: false, LedgeAware: true},
}

// Traits returns the kind's traits. Unknown kinds behave as walkers.
func (k HostileKind) Traits() HostileTraits {
	if k < 0 || k >= hostileKindCount {
		return hostileTraits[HostileWalker]
	}
	return hostileTraits[k]
}

// String returns the kind name
func (k HostileKind) String() string {
	if k < 0 || k >= hostileKindCount {
		return "unknown"
	}
	return hostileTraits[k].Name
}

// ParseHostileKind maps a spawn descriptor type to a kind
func ParseHostileKind(name string) (HostileKind, bool) {
	for kind, traits := range hostileTraits {
		if traits.Name == name {
			return HostileKind(kind), true
		}
	}
	return HostileWalker, false
}

// Hostile represents a ground-bound enemy
type Hostile struct {
	ID   EntityID
	Kind HostileKind
	Body

	Dir      int // -1 left, +1 right
	Awake    bool
	Aggro    bool
	Squished bool
	Squish   Countdown
	Removed  bool
}

// NewHostile creates a hostile walking left
func NewHostile(kind HostileKind, x, y, w, h float64) *Hostile {
	return &Hostile{
		Kind: kind,
		Body: NewBody(x, y, w, h),
		Dir:  -1,
	}
}

// IsAlive returns true while the hostile can still fight
func (h *Hostile) IsAlive() bool {
	return !h.Squished && !h.Removed
}

// SquishFor marks the hostile defeated; it is removed when the timer ends
func (h *Hostile) SquishFor(ticks int) {
	if h.Squished || h.Removed {
		return
	}
	h.Squished = true
	h.Stop()
	h.Squish.Arm(ticks)
	if ticks <= 0 {
		h.Removed = true
	}
}

// Reverse flips the walking direction
func (h *Hostile) Reverse() {
	h.Dir = -h.Dir
}
