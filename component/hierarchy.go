package component

import "github.com/lixenwraith/scenery/core"

// ParentComponent links a child to the entity that owns it
// Recursive despawn of the parent destroys the child; a single despawn orphans it
type ParentComponent struct {
	Parent core.Entity
}

// ChildrenComponent resides on the owner and lists direct children in insertion order
type ChildrenComponent struct {
	Children []core.Entity
}
