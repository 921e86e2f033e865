package event

import "github.com/lixenwraith/scenery/core"

// ModalClosePayload names the close entity that was activated
// Zero Entity closes every live modal
type ModalClosePayload struct {
	Entity core.Entity
}
