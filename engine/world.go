package engine

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/scenery/core"
)

// World contains all entities, their components, marker tags, resources and the system table
// Mutation is expected from the scheduler goroutine; stores are individually locked for readers
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	// Resources holds global singletons keyed by type
	Resources *ResourceStore

	// Components holds cached pointers to typed stores
	Components ComponentStore
	stores     []AnyStore

	tags map[core.Key]*Store[struct{}]

	systems []SystemFunc
	frame   atomic.Int64
}

// NewWorld creates an empty world
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Resources:    NewResourceStore(),
		tags:         make(map[core.Key]*Store[struct{}]),
	}

	initComponentStores(w)

	return w
}

// ReserveEntity allocates an entity ID without making it alive
// Used by Commands.Spawn so callers can reference the entity before the buffer is applied
func (w *World) ReserveEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// spawnReserved makes a reserved ID alive, IDs never handed out are ignored
func (w *World) spawnReserved(e core.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if e == 0 || e >= w.nextEntityID {
		return
	}
	w.alive[e] = struct{}{}
}

// CreateEntity allocates a new live entity
func (w *World) CreateEntity() core.Entity {
	e := w.ReserveEntity()
	w.spawnReserved(e)
	return e
}

// Alive reports whether the entity exists
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// Count returns the number of live entities
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// Entities returns all live entities in ascending ID order
func (w *World) Entities() []core.Entity {
	w.mu.RLock()
	result := make([]core.Entity, 0, len(w.alive))
	for e := range w.alive {
		result = append(result, e)
	}
	w.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Despawn destroys a single entity, detaching it from its parent and orphaning its children
// Returns false if the entity was not alive
func (w *World) Despawn(e core.Entity) bool {
	if !w.Alive(e) {
		return false
	}

	w.detachFromParent(e)
	if children, ok := w.Components.Children.Get(e); ok {
		for _, child := range children.Children {
			w.Components.Parent.Remove(child)
		}
	}

	w.destroy([]core.Entity{e})
	return true
}

// destroy removes entities from every store and tag set without touching hierarchy links
func (w *World) destroy(entities []core.Entity) {
	for _, s := range w.stores {
		s.RemoveBatch(entities)
	}

	w.mu.Lock()
	tagStores := make([]*Store[struct{}], 0, len(w.tags))
	for _, s := range w.tags {
		tagStores = append(tagStores, s)
	}
	for _, e := range entities {
		delete(w.alive, e)
	}
	w.mu.Unlock()

	for _, s := range tagStores {
		s.RemoveBatch(entities)
	}
}

// Frame returns the number of completed scheduler ticks
func (w *World) Frame() int64 {
	return w.frame.Load()
}

// advanceFrame is called by the scheduler at the end of each tick
func (w *World) advanceFrame() {
	w.frame.Add(1)
}
