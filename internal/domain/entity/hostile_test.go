package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHostile(t *testing.T) {
	h := NewHostile(HostileWalker, 100, 200, 28, 28)

	require.NotNil(t, h)
	assert.Equal(t, -1, h.Dir)
	assert.True(t, h.IsAlive())
	assert.False(t, h.Awake)
	assert.Equal(t, 100.0, h.X)
}

func TestHostile_SquishFor(t *testing.T) {
	h := NewHostile(HostileWalker, 0, 0, 28, 28)
	h.VX, h.VY = -1, 2

	h.SquishFor(30)

	assert.True(t, h.Squished)
	assert.False(t, h.IsAlive())
	assert.False(t, h.Removed)
	assert.Equal(t, 30, h.Squish.Remaining())
	assert.Zero(t, h.VX)
	assert.Zero(t, h.VY)

	h.SquishFor(5)
	assert.Equal(t, 30, h.Squish.Remaining(), "second squish is ignored")
}

func TestHostile_SquishForZeroRemovesImmediately(t *testing.T) {
	h := NewHostile(HostileWalker, 0, 0, 28, 28)

	h.SquishFor(0)

	assert.True(t, h.Removed)
}

func TestHostileKind_Traits(t *testing.T) {
	tests := []struct {
		kind      HostileKind
		name      string
		stompable bool
		senses    bool
	}{
		{HostileWalker, "walker", true, false},
		{HostileCharger, "charger", true, true},
		{HostileSpiker, "spiker", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traits := tt.kind.Traits()
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.stompable, traits.Stompable)
			assert.Equal(t, tt.senses, traits.Senses)

			parsed, ok := ParseHostileKind(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.kind, parsed)
		})
	}

	_, ok := ParseHostileKind("dragon")
	assert.False(t, ok)
	assert.Equal(t, "walker", HostileKind(9).Traits().Name)
}

func TestHostile_Reverse(t *testing.T) {
	h := NewHostile(HostileWalker, 0, 0, 28, 28)
	h.Reverse()
	assert.Equal(t, 1, h.Dir)
	h.Reverse()
	assert.Equal(t, -1, h.Dir)
}
