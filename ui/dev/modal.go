// Package dev provides the developer modal, opened on demand through the one-shot registry.
package dev

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/scenery/audio"
	"github.com/lixenwraith/scenery/core"
	"github.com/lixenwraith/scenery/engine"
	"github.com/lixenwraith/scenery/event"
	"github.com/lixenwraith/scenery/oneshot"
	"github.com/lixenwraith/scenery/ui/widgets"
)

// Modal tags the developer modal root
type Modal struct{}

func (Modal) TypePath() string { return "github.com/lixenwraith/scenery/ui/dev.Modal" }

// Setup stages the developer modal: registered callbacks listed as content lines
// Opens requested within one tick all pass Open's check, so a live modal is checked again here
func Setup(w *engine.World, cmd *engine.Commands) {
	if w.TaggedCount(core.KeyOf[Modal]()) > 0 {
		log.Printf("[dev] modal already live, setup skipped")
		return
	}
	m := widgets.SpawnModal[Modal](cmd, widgets.ModalStyle{Title: "Developer", CanClose: true})

	reg, ok := engine.GetResource[*oneshot.Registry](w.Resources)
	if !ok {
		return
	}
	for _, key := range reg.Keys() {
		m.Content.SpawnChild().Name(key.Short())
	}
}

// Plugin registers Setup and routes EventDevModalOpen to it
type Plugin struct {
	// SkipSetup leaves the callback unregistered; open requests are then logged and dropped
	SkipSetup bool
}

// Build installs the registration and handlers
func (p Plugin) Build(app *engine.App) {
	app.AddPlugin(oneshot.Plugin{})
	app.AddPlugin(widgets.Plugin{})

	reg := oneshot.FromWorld(app.World())
	if !p.SkipSetup {
		oneshot.RegisterFor[Modal](reg, app.World(), Setup)
	}

	app.AddHandler(engine.HandlerFunc(func(w *engine.World, cmd *engine.Commands, ev event.Event) {
		if err := Open(w, cmd, reg); err != nil {
			log.Printf("[dev] %v", err)
		}
	}, event.EventDevModalOpen))
}

// ErrAlreadyOpen is returned when a modal is live
var ErrAlreadyOpen = errors.New("dev modal already open")

// Open stages the modal setup unless one is live
// A missing registration is reported, not fatal
func Open(w *engine.World, cmd *engine.Commands, reg *oneshot.Registry) error {
	if w.TaggedCount(core.KeyOf[Modal]()) > 0 {
		return ErrAlreadyOpen
	}

	if err := oneshot.InvokeFor[Modal](reg, cmd); err != nil {
		if errors.Is(err, oneshot.ErrNotRegistered) {
			return fmt.Errorf("open skipped: %w", err)
		}
		return err
	}

	if player, ok := engine.GetResource[audio.Player](w.Resources); ok {
		player.Play(audio.CueOpen)
	}
	return nil
}
