// Package widgets holds entity-tree builders shared by interface scenes.
package widgets

import (
	"log"

	"github.com/lixenwraith/scenery/audio"
	"github.com/lixenwraith/scenery/component"
	"github.com/lixenwraith/scenery/core"
	"github.com/lixenwraith/scenery/engine"
	"github.com/lixenwraith/scenery/event"
)

// ModalStyle configures a modal tree
type ModalStyle struct {
	Title string
	// CanClose adds a close entity targeting the root
	CanClose bool
}

// Modal holds the staged entities of a spawned modal
type Modal struct {
	Root    *engine.EntityCommands
	Content *engine.EntityCommands // Parent for caller content
	Close   *engine.EntityCommands // Nil unless CanClose
}

// SpawnModal stages a modal tree whose root is tagged with M
// Layout: root -> body -> (title, content, close)
func SpawnModal[M core.Marker](cmd *engine.Commands, style ModalStyle) Modal {
	key := core.KeyOf[M]()
	root := cmd.Spawn().Name(key.Short()).Tag(key)
	body := root.SpawnChild().Name("body")

	if style.Title != "" {
		body.SpawnChild().Name(style.Title)
	}

	m := Modal{
		Root:    root,
		Content: body.SpawnChild().Name("content"),
	}

	if style.CanClose {
		m.Close = body.SpawnChild().Name("close")
		engine.Insert(m.Close, cmd.World().Components.ModalClose, component.ModalCloseComponent{Target: root.ID()})
	}
	return m
}

// Close stages destruction of the modal targeted by closer
// Returns false if closer is not a close entity
func Close(w *engine.World, cmd *engine.Commands, closer core.Entity) bool {
	mc, ok := w.Components.ModalClose.Get(closer)
	if !ok {
		return false
	}
	cmd.Entity(mc.Target).DespawnRecursive()
	return true
}

// CloseAll stages destruction of every modal reachable through a close entity
func CloseAll(w *engine.World, cmd *engine.Commands) int {
	closed := 0
	seen := make(map[core.Entity]struct{})
	for _, closer := range w.Components.ModalClose.All() {
		mc, _ := w.Components.ModalClose.Get(closer)
		if _, dup := seen[mc.Target]; dup {
			continue
		}
		seen[mc.Target] = struct{}{}
		cmd.Entity(mc.Target).DespawnRecursive()
		closed++
	}
	return closed
}

// Plugin routes EventModalClose to Close
type Plugin struct{}

// Build registers the close handler once
func (Plugin) Build(app *engine.App) {
	if app.Router().HasHandlers(event.EventModalClose) {
		return
	}
	app.AddHandler(engine.HandlerFunc(handleClose, event.EventModalClose))
}

func handleClose(w *engine.World, cmd *engine.Commands, ev event.Event) {
	var closed int
	switch p := ev.Payload.(type) {
	case *event.ModalClosePayload:
		if p.Entity == 0 {
			closed = CloseAll(w, cmd)
		} else if Close(w, cmd, p.Entity) {
			closed = 1
		}
	case nil:
		closed = CloseAll(w, cmd)
	default:
		log.Printf("[widgets] unexpected modal close payload %T", ev.Payload)
		return
	}

	if closed == 0 {
		return
	}
	if player, ok := engine.GetResource[audio.Player](w.Resources); ok {
		player.Play(audio.CueClose)
	}
}
