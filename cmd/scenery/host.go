package main

import (
	"fmt"

	"github.com/lixenwraith/scenery/audio"
	"github.com/lixenwraith/scenery/component"
	"github.com/lixenwraith/scenery/config"
	"github.com/lixenwraith/scenery/core"
	"github.com/lixenwraith/scenery/engine"
	"github.com/lixenwraith/scenery/engine/fsm"
	"github.com/lixenwraith/scenery/oneshot"
	"github.com/lixenwraith/scenery/parameter"
	"github.com/lixenwraith/scenery/scene"
	"github.com/lixenwraith/scenery/status"
	"github.com/lixenwraith/scenery/ui/dev"
)

// Scene markers
type (
	MenuScene  struct{}
	GameScene  struct{}
	HudOverlay struct{}
	PauseMenu  struct{}
)

func (MenuScene) TypePath() string  { return "github.com/lixenwraith/scenery/cmd/scenery.MenuScene" }
func (GameScene) TypePath() string  { return "github.com/lixenwraith/scenery/cmd/scenery.GameScene" }
func (HudOverlay) TypePath() string { return "github.com/lixenwraith/scenery/cmd/scenery.HudOverlay" }
func (PauseMenu) TypePath() string  { return "github.com/lixenwraith/scenery/cmd/scenery.PauseMenu" }

// host is the assembled demo application
type host struct {
	app   *engine.App
	scene *scene.Coordinator

	menu    fsm.StateID
	playing fsm.StateID
	paused  fsm.StateID
}

// buildHost assembles the app: states, scene bindings, dev modal
// Startup is left to the caller so services can publish resources first
func buildHost(cfg config.Config, m *status.Metrics) (*host, error) {
	app := engine.NewApp(engine.WithTick(cfg.Tick), engine.WithMetrics(m))
	sm := app.States()

	// Defined before the graph load so display names keep their case
	h := &host{app: app}
	h.menu = sm.NextFreeID()
	sm.AddState(h.menu, "MainMenu", fsm.StateRoot)
	h.playing = sm.NextFreeID()
	sm.AddState(h.playing, "Playing", fsm.StateRoot)
	h.paused = sm.NextFreeID()
	sm.AddState(h.paused, "Paused", h.playing)
	sm.InitialStateID = h.menu

	if err := fsm.LoadConfig(sm, cfg.Graph); err != nil {
		return nil, fmt.Errorf("load state graph: %w", err)
	}

	app.AddPlugin(oneshot.Plugin{Metrics: m})
	h.scene = scene.NewCoordinator(app, oneshot.FromWorld(app.World()), m)

	scene.Bind[MenuScene](h.scene, h.setupMenu, h.menu)
	scene.Bind[GameScene](h.scene, h.setupGame, h.playing)
	scene.Bind[HudOverlay](h.scene, h.setupHud, h.playing)
	scene.Bind[PauseMenu](h.scene, h.setupPause, h.paused)

	app.AddSystem(parameter.PriorityUI, hudSystem)
	app.OnExit(h.paused, func(w *engine.World, cmd *engine.Commands) {
		playCue(w, audio.CueExit)
	})

	app.AddPlugin(dev.Plugin{})
	return h, nil
}

func (h *host) setupMenu(w *engine.World, cmd *engine.Commands) {
	root := scene.SpawnRoot[MenuScene](cmd, h.menu)
	for _, line := range []string{"Start  [enter]", "Dev    [`]", "Quit   [q]"} {
		root.SpawnChild().Name(line)
	}
	playCue(w, audio.CueEnter)
}

func (h *host) setupGame(w *engine.World, cmd *engine.Commands) {
	root := scene.SpawnRoot[GameScene](cmd, h.playing)
	board := root.SpawnChild().Name("board")
	for row := 0; row < 3; row++ {
		line := board.SpawnChild().Name(fmt.Sprintf("row %d", row))
		for col := 0; col < 2; col++ {
			line.SpawnChild().Name(fmt.Sprintf("cell %d,%d", row, col))
		}
	}
	root.SpawnChild().Name("player")
	playCue(w, audio.CueEnter)
}

func (h *host) setupHud(w *engine.World, cmd *engine.Commands) {
	root := scene.SpawnRoot[HudOverlay](cmd, h.playing)
	root.SpawnChild().Name("frames 0")
	root.SpawnChild().Name("pause  [p]")
}

func (h *host) setupPause(w *engine.World, cmd *engine.Commands) {
	root := scene.SpawnRoot[PauseMenu](cmd, h.paused)
	root.SpawnChild().Name("Resume [r]")
	root.SpawnChild().Name("Menu   [m]")
	playCue(w, audio.CueOpen)
}

// hudSystem stages a relabel of the first HUD line with the frames elapsed since the overlay spawned
func hudSystem(w *engine.World, cmd *engine.Commands) {
	roots := w.Query().
		With(w.Components.SceneRoot).
		WithTag(core.KeyOf[HudOverlay]()).
		Execute()

	for _, root := range roots {
		info, _ := w.Components.SceneRoot.Get(root)
		children := w.Children(root)
		if len(children) == 0 {
			continue
		}
		engine.Insert(cmd.Entity(children[0]), w.Components.Name, component.NameComponent{
			Name: fmt.Sprintf("frames %d", w.Frame()-info.Frame),
		})
	}
}

// playCue is a no-op until the audio service has published its Player
func playCue(w *engine.World, c audio.Cue) {
	if p, ok := engine.GetResource[audio.Player](w.Resources); ok {
		p.Play(c)
	}
}
