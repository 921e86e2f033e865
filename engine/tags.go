package engine

import (
	"sort"

	"github.com/lixenwraith/scenery/core"
)

// tagStore returns the set for key, creating it when create is true
func (w *World) tagStore(key core.Key, create bool) *Store[struct{}] {
	w.mu.RLock()
	s, ok := w.tags[key]
	w.mu.RUnlock()
	if ok || !create {
		return s
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok = w.tags[key]; !ok {
		s = NewStore[struct{}]()
		w.tags[key] = s
	}
	return s
}

// Tag attaches the marker key to a live entity
// Returns false if the entity is not alive
func (w *World) Tag(key core.Key, e core.Entity) bool {
	if !w.Alive(e) {
		return false
	}
	w.tagStore(key, true).Set(e, struct{}{})
	return true
}

// Untag removes the marker key from an entity
func (w *World) Untag(key core.Key, e core.Entity) {
	if s := w.tagStore(key, false); s != nil {
		s.Remove(e)
	}
}

// HasTag reports whether the entity carries the marker key
func (w *World) HasTag(key core.Key, e core.Entity) bool {
	s := w.tagStore(key, false)
	return s != nil && s.Has(e)
}

// Tagged returns every entity carrying the marker key in ascending ID order
func (w *World) Tagged(key core.Key) []core.Entity {
	s := w.tagStore(key, false)
	if s == nil {
		return nil
	}
	result := s.All()
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// TaggedCount returns the number of entities carrying the marker key
func (w *World) TaggedCount(key core.Key) int {
	s := w.tagStore(key, false)
	if s == nil {
		return 0
	}
	return s.Count()
}

// Tag attaches marker M to a live entity
func Tag[M core.Marker](w *World, e core.Entity) bool {
	return w.Tag(core.KeyOf[M](), e)
}

// TaggedWith returns every entity carrying marker M
func TaggedWith[M core.Marker](w *World) []core.Entity {
	return w.Tagged(core.KeyOf[M]())
}
