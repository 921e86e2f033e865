package engine

import (
	"log"

	"github.com/lixenwraith/scenery/component"
	"github.com/lixenwraith/scenery/core"
)

// Command is a single staged world mutation
type Command func(w *World)

// Commands is a FIFO buffer of staged mutations applied at scheduler barriers
// Not safe for concurrent use; each scheduler phase owns one buffer
type Commands struct {
	world *World
	queue []Command
}

// NewCommands creates an empty buffer bound to w
func NewCommands(w *World) *Commands {
	return &Commands{world: w}
}

// World returns the world the buffer applies to, for read access while staging
func (c *Commands) World() *World {
	return c.world
}

// Add stages an arbitrary mutation
func (c *Commands) Add(fn Command) {
	c.queue = append(c.queue, fn)
}

// Len returns the number of staged commands
func (c *Commands) Len() int {
	return len(c.queue)
}

// Apply executes staged commands in FIFO order until the buffer is empty,
// including commands staged while applying; returns the number executed
func (c *Commands) Apply() int {
	applied := 0
	for len(c.queue) > 0 {
		batch := c.queue
		c.queue = nil
		for _, fn := range batch {
			fn(c.world)
			applied++
		}
	}
	return applied
}

// Spawn reserves an entity ID now and stages its creation
func (c *Commands) Spawn() *EntityCommands {
	e := c.world.ReserveEntity()
	c.Add(func(w *World) {
		w.spawnReserved(e)
	})
	return &EntityCommands{cmd: c, entity: e}
}

// Entity returns a staging handle for an existing entity
func (c *Commands) Entity(e core.Entity) *EntityCommands {
	return &EntityCommands{cmd: c, entity: e}
}

// RunSystem stages execution of a registered system
func (c *Commands) RunSystem(id SystemID) {
	c.Add(func(w *World) {
		if err := w.RunSystem(id); err != nil {
			log.Printf("[commands] %v", err)
		}
	})
}

// EntityCommands stages mutations for one entity
// Mutations reaching a dead entity at apply time are skipped
type EntityCommands struct {
	cmd    *Commands
	entity core.Entity
}

// ID returns the target entity
func (ec *EntityCommands) ID() core.Entity {
	return ec.entity
}

// Commands returns the owning buffer
func (ec *EntityCommands) Commands() *Commands {
	return ec.cmd
}

// stage queues fn to run only if the entity is alive at apply time
func (ec *EntityCommands) stage(fn func(w *World, e core.Entity)) *EntityCommands {
	e := ec.entity
	ec.cmd.Add(func(w *World) {
		if !w.Alive(e) {
			return
		}
		fn(w, e)
	})
	return ec
}

// Name stages a NameComponent
func (ec *EntityCommands) Name(name string) *EntityCommands {
	return ec.stage(func(w *World, e core.Entity) {
		w.Components.Name.Set(e, component.NameComponent{Name: name})
	})
}

// Tag stages a marker tag
func (ec *EntityCommands) Tag(key core.Key) *EntityCommands {
	return ec.stage(func(w *World, e core.Entity) {
		w.Tag(key, e)
	})
}

// AddChild stages parenting child under this entity
func (ec *EntityCommands) AddChild(child core.Entity) *EntityCommands {
	return ec.stage(func(w *World, e core.Entity) {
		if err := w.SetParent(child, e); err != nil {
			log.Printf("[commands] %v", err)
		}
	})
}

// SpawnChild stages a new entity parented under this one and returns its handle
func (ec *EntityCommands) SpawnChild() *EntityCommands {
	child := ec.cmd.Spawn()
	ec.AddChild(child.entity)
	return child
}

// Despawn stages destruction of this entity alone, orphaning its children
func (ec *EntityCommands) Despawn() {
	ec.stage(func(w *World, e core.Entity) {
		w.Despawn(e)
	})
}

// DespawnRecursive stages destruction of this entity and its whole subtree
func (ec *EntityCommands) DespawnRecursive() {
	ec.stage(func(w *World, e core.Entity) {
		w.DespawnRecursive(e)
	})
}

// Insert stages a component of type T on the entity
func Insert[T any](ec *EntityCommands, store *Store[T], val T) *EntityCommands {
	return ec.stage(func(w *World, e core.Entity) {
		store.Set(e, val)
	})
}
