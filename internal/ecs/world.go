package ecs

import (
	"sort"

	"github.com/younwookim/tilerunner/internal/domain/entity"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID = entity.EntityID

type slot[T any] struct {
	id    EntityID
	alive bool
	value *T
}

// Pool is an arena of entities keyed by stable handles.
// Slots stay in spawn order, so iteration order is deterministic.
// Killed entities are skipped by every accessor and compacted by Sweep.
type Pool[T any] struct {
	nextID EntityID
	slots  []slot[T]
}

// NewPool creates an empty pool. 0 is the nil handle.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{nextID: 1}
}

// Spawn adds an entity and returns its handle
func (p *Pool[T]) Spawn(v *T) EntityID {
	id := p.nextID
	p.nextID++
	p.slots = append(p.slots, slot[T]{id: id, alive: true, value: v})
	return id
}

func (p *Pool[T]) find(id EntityID) int {
	i := sort.Search(len(p.slots), func(i int) bool { return p.slots[i].id >= id })
	if i < len(p.slots) && p.slots[i].id == id {
		return i
	}
	return -1
}

// Get returns a live entity by handle
func (p *Pool[T]) Get(id EntityID) (*T, bool) {
	i := p.find(id)
	if i < 0 || !p.slots[i].alive {
		return nil, false
	}
	return p.slots[i].value, true
}

// Exists reports whether the handle refers to a live entity
func (p *Pool[T]) Exists(id EntityID) bool {
	_, ok := p.Get(id)
	return ok
}

// Kill clears the alive flag. Killing twice is harmless.
func (p *Pool[T]) Kill(id EntityID) {
	if i := p.find(id); i >= 0 {
		p.slots[i].alive = false
	}
}

// Each visits live entities in spawn order.
// Entities spawned during the visit are not visited.
func (p *Pool[T]) Each(fn func(id EntityID, v *T)) {
	n := len(p.slots)
	for i := 0; i < n; i++ {
		s := p.slots[i]
		if s.alive {
			fn(s.id, s.value)
		}
	}
}

// Items returns the live entities in spawn order
func (p *Pool[T]) Items() []*T {
	out := make([]*T, 0, len(p.slots))
	for _, s := range p.slots {
		if s.alive {
			out = append(out, s.value)
		}
	}
	return out
}

// Sweep kills every entity matching dead, then compacts the pool.
// Returns the number of slots removed.
func (p *Pool[T]) Sweep(dead func(v *T) bool) int {
	kept := p.slots[:0]
	removed := 0
	for _, s := range p.slots {
		if s.alive && dead != nil && dead(s.value) {
			s.alive = false
		}
		if !s.alive {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(p.slots); i++ {
		p.slots[i] = slot[T]{}
	}
	p.slots = kept
	return removed
}

// Len returns the number of live entities
func (p *Pool[T]) Len() int {
	n := 0
	for _, s := range p.slots {
		if s.alive {
			n++
		}
	}
	return n
}

// Clear drops every entity. Handles are still never reused.
func (p *Pool[T]) Clear() {
	p.slots = nil
}

// World holds the entity pools of a running stage
type World struct {
	Hostiles *Pool[entity.Hostile]
	Effects  *Pool[entity.Effect]
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		Hostiles: NewPool[entity.Hostile](),
		Effects:  NewPool[entity.Effect](),
	}
}

// SpawnHostile adds a hostile and stamps its handle
func (w *World) SpawnHostile(h *entity.Hostile) EntityID {
	h.ID = w.Hostiles.Spawn(h)
	return h.ID
}

// SpawnEffect adds an effect and stamps its handle
func (w *World) SpawnEffect(e *entity.Effect) EntityID {
	e.ID = w.Effects.Spawn(e)
	return e.ID
}

// Sweep compacts both pools, dropping removed hostiles and dead effects
func (w *World) Sweep() {
	w.Hostiles.Sweep(func(h *entity.Hostile) bool { return h.Removed })
	w.Effects.Sweep(func(e *entity.Effect) bool { return e.Dead })
}

// CountHostiles returns the number of hostiles still in play
func (w *World) CountHostiles() int {
	return w.Hostiles.Len()
}
