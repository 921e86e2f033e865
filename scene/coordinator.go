// Package scene binds marker-tagged entity subtrees to application states.
//
// Binding a marker to a state registers its setup callback once and installs two reactions:
// entering the state invokes the setup by key, exiting it stages a recursive despawn of every
// root tagged with the marker. Setup callbacks are responsible for tagging their roots,
// typically through SpawnRoot.
package scene

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/lixenwraith/scenery/component"
	"github.com/lixenwraith/scenery/core"
	"github.com/lixenwraith/scenery/engine"
	"github.com/lixenwraith/scenery/engine/fsm"
	"github.com/lixenwraith/scenery/oneshot"
	"github.com/lixenwraith/scenery/status"
)

// ErrAlreadyBound is the panic value when a marker is bound a second time
var ErrAlreadyBound = errors.New("marker already bound")

// Coordinator installs scene bindings against an app during assembly
type Coordinator struct {
	app      *engine.App
	reg      *oneshot.Registry
	metrics  *status.Metrics
	bindings map[core.Key]fsm.StateID
}

// NewCoordinator creates a coordinator; a nil reg adds oneshot.Plugin and uses its registry,
// a nil m falls back to the app's metrics
func NewCoordinator(app *engine.App, reg *oneshot.Registry, m *status.Metrics) *Coordinator {
	if reg == nil {
		app.AddPlugin(oneshot.Plugin{Metrics: m})
		reg = oneshot.FromWorld(app.World())
	}
	if m == nil {
		m = app.Metrics()
	}
	return &Coordinator{
		app:      app,
		reg:      reg,
		metrics:  m,
		bindings: make(map[core.Key]fsm.StateID),
	}
}

// Registry returns the registry setups are stored in
func (c *Coordinator) Registry() *oneshot.Registry {
	return c.reg
}

// Bind registers setup under marker M and ties the marker's scene to state
// Panics wrapping ErrAlreadyBound if M is bound already, and with the registry's
// ErrDuplicateRegistration if another marker declares the same path
func Bind[M core.Marker](c *Coordinator, setup engine.SystemFunc, state fsm.StateID) {
	key := core.KeyOf[M]()
	if prev, ok := c.bindings[key]; ok {
		panic(fmt.Errorf("bind %s to %s: bound to %s: %w",
			key, c.stateName(state), c.stateName(prev), ErrAlreadyBound))
	}

	c.reg.Register(c.app.World(), key, setup)
	c.bindings[key] = state

	c.app.OnEnter(state, func(w *engine.World, cmd *engine.Commands) {
		c.enter(cmd, key)
	})
	c.app.OnExit(state, func(w *engine.World, cmd *engine.Commands) {
		c.exit(w, cmd, key)
	})
}

// enter stages the setup; a miss means assembly is broken and cannot be recovered
func (c *Coordinator) enter(cmd *engine.Commands, key core.Key) {
	if err := c.reg.Invoke(cmd, key); err != nil {
		panic(fmt.Errorf("scene %s setup: %w", key, err))
	}
	c.metrics.SceneEntered(key.Short())
	log.Printf("[scene] %s setup staged", key.Short())
}

// exit stages recursive destruction of every root tagged with key
func (c *Coordinator) exit(w *engine.World, cmd *engine.Commands, key core.Key) {
	roots := w.Tagged(key)
	if len(roots) == 0 {
		return
	}

	staged := 0
	for _, root := range roots {
		staged += 1 + len(w.Descendants(root))
		if info, ok := w.Components.SceneRoot.Get(root); ok {
			log.Printf("[scene] %s instance %s teardown", key.Short(), info.Instance)
		}
		cmd.Entity(root).DespawnRecursive()
	}

	c.metrics.SceneExited(key.Short(), staged)
	log.Printf("[scene] %s teardown staged: %d roots, %d entities", key.Short(), len(roots), staged)
}

func (c *Coordinator) stateName(id fsm.StateID) string {
	if name := c.app.States().StateName(id); name != "" {
		return name
	}
	return fmt.Sprintf("state(%d)", id)
}

// Binding describes one marker to state link
type Binding struct {
	Key   core.Key
	State fsm.StateID
}

// Bindings returns all bindings sorted by key
func (c *Coordinator) Bindings() []Binding {
	result := make([]Binding, 0, len(c.bindings))
	for k, s := range c.bindings {
		result = append(result, Binding{Key: k, State: s})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// StateOf returns the state marker key is bound to
func (c *Coordinator) StateOf(key core.Key) (fsm.StateID, bool) {
	s, ok := c.bindings[key]
	return s, ok
}

// SpawnRoot stages a scene root tagged with M and describes it with a SceneRootComponent
// Children added through the returned handle are destroyed with the root on exit
func SpawnRoot[M core.Marker](cmd *engine.Commands, state fsm.StateID) *engine.EntityCommands {
	key := core.KeyOf[M]()
	w := cmd.World()

	instance := uuid.New()
	log.Printf("[scene] %s instance %s spawn staged", key.Short(), instance)

	root := cmd.Spawn().Name(key.Short()).Tag(key)
	return engine.Insert(root, w.Components.SceneRoot, component.SceneRootComponent{
		Key:      key,
		State:    int(state),
		Instance: instance,
		Frame:    w.Frame(),
	})
}

// Roots returns the live roots tagged with M
func Roots[M core.Marker](w *engine.World) []core.Entity {
	return engine.TaggedWith[M](w)
}

// Active reports whether any root tagged with M is alive
func Active[M core.Marker](w *engine.World) bool {
	return w.TaggedCount(core.KeyOf[M]()) > 0
}
