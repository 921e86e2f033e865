package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/scenery/config"
	"github.com/lixenwraith/scenery/engine"
	"github.com/lixenwraith/scenery/event"
	"github.com/lixenwraith/scenery/parameter"
	"github.com/lixenwraith/scenery/scene"
	"github.com/lixenwraith/scenery/status"
)

func newTestHost(t *testing.T, m *status.Metrics) *host {
	t.Helper()
	graph, err := config.DefaultGraph()
	require.NoError(t, err)

	h, err := buildHost(config.Config{Tick: parameter.TickInterval, Graph: graph}, m)
	require.NoError(t, err)
	require.NoError(t, h.app.Startup())
	return h
}

func (h *host) step(et event.EventType) {
	h.app.Emit(et, nil)
	h.app.Update()
}

// TestHost_SceneFlow walks the default graph and checks which scenes are live in each state
func TestHost_SceneFlow(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newTestHost(t, status.NewMetrics(reg))
	w := h.app.World()

	require.Equal(t, h.menu, h.app.State())
	assert.True(t, scene.Active[MenuScene](w))
	assert.Equal(t, 4, w.Count(), "menu root and three lines")

	h.step(event.EventStart)
	require.Equal(t, h.playing, h.app.State())
	assert.False(t, scene.Active[MenuScene](w))
	assert.True(t, scene.Active[GameScene](w))
	assert.True(t, scene.Active[HudOverlay](w))
	assert.Equal(t, 15, w.Count(), "game subtree of 12 plus hud of 3")
	game := scene.Roots[GameScene](w)
	require.Len(t, game, 1)

	h.step(event.EventPause)
	require.Equal(t, h.paused, h.app.State())
	assert.True(t, h.app.InState(h.playing))
	assert.True(t, scene.Active[PauseMenu](w))
	assert.Equal(t, game, scene.Roots[GameScene](w), "parent scene survives entering a child state")

	h.step(event.EventResume)
	require.Equal(t, h.playing, h.app.State())
	assert.False(t, scene.Active[PauseMenu](w))
	assert.Equal(t, game, scene.Roots[GameScene](w))
	assert.Equal(t, 15, w.Count())

	h.step(event.EventMenu)
	require.Equal(t, h.menu, h.app.State())
	assert.False(t, scene.Active[GameScene](w))
	assert.False(t, scene.Active[HudOverlay](w))
	assert.Equal(t, 4, w.Count())

	series, err := testutil.GatherAndCount(reg, "scenery_scene_enters_total")
	require.NoError(t, err)
	assert.Equal(t, 4, series, "one series per entered scene")
}

// TestHost_MenuFromPause verifies leaving a child state through an ancestor transition tears down both levels
func TestHost_MenuFromPause(t *testing.T) {
	h := newTestHost(t, nil)
	w := h.app.World()

	h.step(event.EventStart)
	h.step(event.EventPause)
	require.True(t, scene.Active[PauseMenu](w))

	h.step(event.EventMenu)
	assert.Equal(t, h.menu, h.app.State())
	assert.False(t, scene.Active[PauseMenu](w))
	assert.False(t, scene.Active[GameScene](w))
	assert.True(t, scene.Active[MenuScene](w))
}

// TestHost_DevModal verifies the dev modal opens over any scene and closes fully
func TestHost_DevModal(t *testing.T) {
	h := newTestHost(t, nil)
	w := h.app.World()
	before := w.Count()

	h.step(event.EventDevModalOpen)
	assert.Greater(t, w.Count(), before)

	h.app.Emit(event.EventModalClose, &event.ModalClosePayload{})
	h.app.Update()
	assert.Equal(t, before, w.Count())
}

// TestTreeLines verifies the entity tree rendering
func TestTreeLines(t *testing.T) {
	h := newTestHost(t, nil)

	w := h.app.World()
	lines := treeLines(w)
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "scenery.MenuScene #"), lines[0])

	roots := scene.Roots[MenuScene](w)
	require.Len(t, roots, 1)
	info, ok := w.Components.SceneRoot.Get(roots[0])
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(lines[0], " "+shortInstance(info.Instance)), lines[0])
	for _, line := range lines[1:] {
		assert.False(t, strings.HasSuffix(line, "]"), "only scene roots carry an instance: %q", line)
	}
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "  "), "children are indented: %q", line)
	}
	assert.True(t, strings.HasPrefix(lines[1], "  Start"), lines[1])
}

// TestPrintStates verifies the graph listing
func TestPrintStates(t *testing.T) {
	graph, err := config.DefaultGraph()
	require.NoError(t, err)
	h, err := buildHost(config.Config{Tick: parameter.TickInterval, Graph: graph}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printStates(&buf, h))
	out := buf.String()

	assert.Contains(t, out, "MainMenu (initial)\n")
	assert.Contains(t, out, "Paused\n  parent: Playing\n")
	assert.Contains(t, out, "on:     Start -> Playing")
	assert.Contains(t, out, "scenes: scenery.GameScene, scenery.HudOverlay")
	assert.Contains(t, out, "scenes: scenery.PauseMenu")
}

// TestHudSystem verifies the HUD line tracks frames since the overlay spawned
func TestHudSystem(t *testing.T) {
	h := newTestHost(t, nil)
	w := h.app.World()

	h.step(event.EventStart)
	h.app.Update()
	h.app.Update()

	roots := scene.Roots[HudOverlay](w)
	require.Len(t, roots, 1)
	children := w.Children(roots[0])
	require.Len(t, children, 2)

	name, ok := w.Components.Name.Get(children[0])
	require.True(t, ok)
	assert.Equal(t, "frames 2", name.Name)
}

// TestHudSystem_Staged verifies the relabel goes through the command buffer
func TestHudSystem_Staged(t *testing.T) {
	h := newTestHost(t, nil)
	w := h.app.World()

	h.step(event.EventStart)
	h.app.Update()

	roots := scene.Roots[HudOverlay](w)
	require.Len(t, roots, 1)
	label := w.Children(roots[0])[0]
	before, _ := w.Components.Name.Get(label)

	cmd := engine.NewCommands(w)
	hudSystem(w, cmd)

	current, _ := w.Components.Name.Get(label)
	assert.Equal(t, before, current, "world untouched until apply")
	assert.Equal(t, 1, cmd.Len())

	cmd.Apply()
	current, _ = w.Components.Name.Get(label)
	assert.Equal(t, "frames 2", current.Name)
}
