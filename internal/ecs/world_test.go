package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilerunner/internal/domain/entity"
)

func TestNewWorld(t *testing.T) {
	w := NewWorld()

	assert.NotNil(t, w)
	assert.NotNil(t, w.Hostiles)
	assert.NotNil(t, w.Effects)
	assert.Equal(t, 0, w.CountHostiles())
}

func TestPool_SpawnAssignsSequentialIDs(t *testing.T) {
	p := NewPool[int]()
	a, b, c := 1, 2, 3

	assert.Equal(t, EntityID(1), p.Spawn(&a))
	assert.Equal(t, EntityID(2), p.Spawn(&b))
	assert.Equal(t, EntityID(3), p.Spawn(&c))
	assert.Equal(t, 3, p.Len())
}

func TestEntityIDNeverRecycled(t *testing.T) {
	p := NewPool[int]()
	v := 7

	id1 := p.Spawn(&v)
	p.Kill(id1)
	p.Sweep(nil)

	id2 := p.Spawn(&v)
	assert.NotEqual(t, id1, id2, "Entity IDs should never be recycled")
	assert.Equal(t, EntityID(2), id2)
}

func TestPool_KillIsIdempotent(t *testing.T) {
	p := NewPool[int]()
	v := 1
	id := p.Spawn(&v)

	p.Kill(id)
	p.Kill(id)

	assert.False(t, p.Exists(id))
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 1, p.Sweep(nil))
	assert.Equal(t, 0, p.Sweep(nil), "second sweep removes nothing")
}

func TestPool_GetAfterSweep(t *testing.T) {
	p := NewPool[int]()
	vals := []int{10, 20, 30, 40}
	ids := make([]EntityID, len(vals))
	for i := range vals {
		ids[i] = p.Spawn(&vals[i])
	}

	p.Sweep(func(v *int) bool { return *v == 20 || *v == 30 })

	got, ok := p.Get(ids[3])
	require.True(t, ok)
	assert.Equal(t, 40, *got)

	_, ok = p.Get(ids[1])
	assert.False(t, ok)
	assert.Equal(t, 2, p.Len())
}

func TestPool_EachVisitsInSpawnOrder(t *testing.T) {
	p := NewPool[int]()
	vals := []int{5, 6, 7}
	for i := range vals {
		p.Spawn(&vals[i])
	}
	p.Kill(2)

	var seen []int
	p.Each(func(_ EntityID, v *int) {
		seen = append(seen, *v)
	})

	assert.Equal(t, []int{5, 7}, seen)
}

func TestPool_EachSkipsEntitiesSpawnedDuringVisit(t *testing.T) {
	p := NewPool[int]()
	v := 1
	p.Spawn(&v)

	visits := 0
	p.Each(func(_ EntityID, _ *int) {
		visits++
		extra := 2
		p.Spawn(&extra)
	})

	assert.Equal(t, 1, visits)
	assert.Equal(t, 2, p.Len())
}

func TestWorld_Sweep(t *testing.T) {
	w := NewWorld()
	alive := entity.NewHostile(entity.HostileWalker, 0, 0, 16, 16)
	gone := entity.NewHostile(entity.HostileWalker, 32, 0, 16, 16)
	w.SpawnHostile(alive)
	w.SpawnHostile(gone)
	gone.Removed = true

	fx := &entity.Effect{Kind: entity.EffectFragment}
	w.SpawnEffect(fx)
	fx.Kill()

	w.Sweep()

	assert.Equal(t, 1, w.CountHostiles())
	assert.True(t, w.Hostiles.Exists(alive.ID))
	assert.Equal(t, 0, w.Effects.Len())
}
