package engine

import (
	"github.com/lixenwraith/scenery/component"
)

// ComponentStore holds cached pointers to the typed stores the lifecycle layer uses
// Every store is also listed in World.stores so entity destruction reaches it
type ComponentStore struct {
	Parent     *Store[component.ParentComponent]
	Children   *Store[component.ChildrenComponent]
	Name       *Store[component.NameComponent]
	SceneRoot  *Store[component.SceneRootComponent]
	ModalClose *Store[component.ModalCloseComponent]
}

// initComponentStores creates and registers all component stores
func initComponentStores(w *World) {
	w.Components.Parent = newStore[component.ParentComponent](w)
	w.Components.Children = newStore[component.ChildrenComponent](w)
	w.Components.Name = newStore[component.NameComponent](w)
	w.Components.SceneRoot = newStore[component.SceneRootComponent](w)
	w.Components.ModalClose = newStore[component.ModalCloseComponent](w)
}

// newStore creates a store and registers it for uniform destruction
func newStore[T any](w *World) *Store[T] {
	s := NewStore[T]()
	w.stores = append(w.stores, s)
	return s
}
