package component

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/scenery/core"
)

// SceneRootComponent resides on the root of a spawned scene instance
// The marker tag identifies scene membership; this record describes the instance
type SceneRootComponent struct {
	Key      core.Key  // Marker key the root is tagged with
	State    int       // Bound state the scene was spawned for
	Instance uuid.UUID // Unique per spawn, survives re-entry of the same state as a new value
	Frame    int64     // Frame on which the spawn was staged
}
