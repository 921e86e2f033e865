package component

import "github.com/lixenwraith/scenery/core"

// ModalCloseComponent marks an entity that closes a modal when activated
// Target is the modal root; closing destroys it with all descendants
type ModalCloseComponent struct {
	Target core.Entity
}
