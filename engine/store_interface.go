package engine

import (
	"github.com/lixenwraith/scenery/core"
)

// AnyStore provides type-erased operations for lifecycle management
// World destroys entities across all stores uniformly through this interface
type AnyStore interface {
	// Remove deletes a component from an entity
	Remove(e core.Entity)

	// RemoveBatch deletes components from many entities in one pass
	RemoveBatch(entities []core.Entity)

	// Has checks if an entity has this component
	Has(e core.Entity) bool

	// Count returns the number of entities with this component
	Count() int
}

// QueryableStore extends AnyStore with the iteration the query builder needs
type QueryableStore interface {
	AnyStore

	// All returns all entities that have this component type
	All() []core.Entity
}
