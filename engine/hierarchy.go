package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/scenery/component"
	"github.com/lixenwraith/scenery/core"
)

var (
	// ErrDeadEntity is returned when a hierarchy operation names an entity that does not exist
	ErrDeadEntity = errors.New("entity not alive")
	// ErrHierarchyCycle is returned when parenting would make an entity its own ancestor
	ErrHierarchyCycle = errors.New("hierarchy cycle")
)

// SetParent links child under parent, moving it from any previous parent
func (w *World) SetParent(child, parent core.Entity) error {
	if !w.Alive(child) {
		return fmt.Errorf("set parent of %d: %w", child, ErrDeadEntity)
	}
	if !w.Alive(parent) {
		return fmt.Errorf("set parent %d: %w", parent, ErrDeadEntity)
	}
	for p := parent; p != 0; p, _ = w.Parent(p) {
		if p == child {
			return fmt.Errorf("parent %d under %d: %w", child, parent, ErrHierarchyCycle)
		}
	}

	w.detachFromParent(child)

	w.Components.Parent.Set(child, component.ParentComponent{Parent: parent})
	children, _ := w.Components.Children.Get(parent)
	children.Children = append(children.Children, child)
	w.Components.Children.Set(parent, children)
	return nil
}

// Parent returns the parent of e, if any
func (w *World) Parent(e core.Entity) (core.Entity, bool) {
	p, ok := w.Components.Parent.Get(e)
	if !ok {
		return 0, false
	}
	return p.Parent, true
}

// Children returns a copy of the direct children of e in insertion order
func (w *World) Children(e core.Entity) []core.Entity {
	c, ok := w.Components.Children.Get(e)
	if !ok || len(c.Children) == 0 {
		return nil
	}
	result := make([]core.Entity, len(c.Children))
	copy(result, c.Children)
	return result
}

// Descendants returns every entity below e in depth-first pre-order, excluding e
func (w *World) Descendants(e core.Entity) []core.Entity {
	var result []core.Entity
	stack := w.Children(e)
	// Reverse so the first child is visited first
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, current)

		children := w.Children(current)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return result
}

// DespawnRecursive destroys e and its whole subtree, children before parents
// Detaches e from its parent first; returns the number of entities destroyed
func (w *World) DespawnRecursive(e core.Entity) int {
	if !w.Alive(e) {
		return 0
	}

	w.detachFromParent(e)

	subtree := append([]core.Entity{e}, w.Descendants(e)...)
	// Post-order: reverse of pre-order visits every child before its parent
	victims := make([]core.Entity, 0, len(subtree))
	for i := len(subtree) - 1; i >= 0; i-- {
		if w.Alive(subtree[i]) {
			victims = append(victims, subtree[i])
		}
	}

	w.destroy(victims)
	return len(victims)
}

// detachFromParent unlinks e from its parent's child list
func (w *World) detachFromParent(e core.Entity) {
	p, ok := w.Components.Parent.Get(e)
	if !ok {
		return
	}
	w.Components.Parent.Remove(e)

	children, ok := w.Components.Children.Get(p.Parent)
	if !ok {
		return
	}
	kept := children.Children[:0]
	for _, c := range children.Children {
		if c != e {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		w.Components.Children.Remove(p.Parent)
		return
	}
	w.Components.Children.Set(p.Parent, component.ChildrenComponent{Children: kept})
}
