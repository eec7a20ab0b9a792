package entity

import "github.com/tanema/gween"

// EffectKind identifies a short-lived spawned entity
type EffectKind int

const (
	EffectCoinPop EffectKind = iota
	EffectFragment
	EffectScoreText
	EffectBump
	EffectPowerUp

	effectKindCount
)

var effectNames = [effectKindCount]string{
	EffectCoinPop:   "coin_pop",
	EffectFragment:  "fragment",
	EffectScoreText: "score_text",
	EffectBump:      "bump",
	EffectPowerUp:   "powerup",
}

// String returns the effect kind name
func (k EffectKind) String() string {
	if k < 0 || k >= effectKindCount {
		return "unknown"
	}
	return effectNames[k]
}

// Effect is an ephemeral entity: coin pops, brick fragments, score text,
// block bumps and power-ups.
type Effect struct {
	ID   EntityID
	Kind EffectKind
	Body

	// OriginY is the spawn height that tweened offsets are applied to
	OriginY float64
	// OffsetY is the current tweened displacement (rendering and pickup)
	OffsetY float64

	// Lifetime expires the effect unless Persistent is set
	Lifetime   Countdown
	Persistent bool
	Emerge     Countdown
	Dir        int
	Value      int
	Tile       TileRef

	Rise *gween.Tween
	Fall *gween.Tween

	Dead bool
}

// Kill marks the effect for removal. Calling it twice is harmless.
func (e *Effect) Kill() {
	e.Dead = true
}
