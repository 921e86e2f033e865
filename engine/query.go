package engine

import (
	"sort"

	"github.com/lixenwraith/scenery/core"
)

// QueryBuilder finds entities present in every filtered store
// Stores are intersected smallest first to minimise Has() checks
type QueryBuilder struct {
	world    *World
	stores   []QueryableStore
	empty    bool
	executed bool
	results  []core.Entity
}

// Query creates a new QueryBuilder
//
// Example:
//
//	roots := world.Query().
//	    With(world.Components.SceneRoot).
//	    WithTag(key).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		world:  w,
		stores: make([]QueryableStore, 0, 4),
	}
}

// With adds a component store to the filter
// Panics if called after Execute()
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// WithTag adds a marker tag to the filter; an unknown tag yields no results
func (qb *QueryBuilder) WithTag(key core.Key) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	s := qb.world.tagStore(key, false)
	if s == nil {
		qb.empty = true
		return qb
	}
	qb.stores = append(qb.stores, s)
	return qb
}

// Execute runs the query, caching the result for repeated calls
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if qb.empty || len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	if len(qb.stores) == 1 {
		qb.results = qb.stores[0].All()
		return qb.results
	}

	sort.Slice(qb.stores, func(i, j int) bool {
		return qb.stores[i].Count() < qb.stores[j].Count()
	})

	candidates := qb.stores[0].All()
	for i := 1; i < len(qb.stores); i++ {
		store := qb.stores[i]
		filtered := candidates[:0] // Reuse underlying array
		for _, e := range candidates {
			if store.Has(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered

		if len(candidates) == 0 {
			break
		}
	}

	qb.results = candidates
	return qb.results
}
