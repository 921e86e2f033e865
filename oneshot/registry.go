// Package oneshot stores setup callbacks once under a marker-derived key and runs them on demand.
//
// Registration happens during app assembly and is single-writer; every other access is a read.
// A duplicate key is a programming error and panics. A lookup miss at invoke time is a
// recoverable error that the caller decides how to handle.
package oneshot

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/lixenwraith/scenery/core"
	"github.com/lixenwraith/scenery/engine"
	"github.com/lixenwraith/scenery/status"
)

var (
	// ErrDuplicateRegistration is the panic value when a key is registered twice
	ErrDuplicateRegistration = errors.New("duplicate registration")
	// ErrNotRegistered is returned when invoking a key that has no callback
	ErrNotRegistered = errors.New("not registered")
	// ErrSealed is the panic value when registering after assembly
	ErrSealed = errors.New("registry sealed")
)

// Registry maps marker keys to system handles
// Handles never leave the registry; callers address callbacks by key only
type Registry struct {
	mu      sync.RWMutex
	handles map[core.Key]engine.SystemID
	sealed  bool
	metrics *status.Metrics
}

// New creates an empty registry; m may be nil
func New(m *status.Metrics) *Registry {
	return &Registry{
		handles: make(map[core.Key]engine.SystemID),
		metrics: m,
	}
}

// Register adds fn to the world's system table under key
// Panics wrapping ErrDuplicateRegistration if key exists, leaving the system table untouched
func (r *Registry) Register(w *engine.World, key core.Key, fn engine.SystemFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		panic(fmt.Errorf("register %s: %w", key, ErrSealed))
	}
	if _, exists := r.handles[key]; exists {
		panic(fmt.Errorf("register %s: %w", key, ErrDuplicateRegistration))
	}

	r.handles[key] = w.RegisterSystem(fn)
	r.metrics.Registered()
	log.Printf("[oneshot] registered %s", key.Short())
}

// lookup resolves key, recording a miss
func (r *Registry) lookup(key core.Key) (engine.SystemID, error) {
	r.mu.RLock()
	id, ok := r.handles[key]
	r.mu.RUnlock()

	if !ok {
		r.metrics.Invoked(key.Short(), status.ResultNotFound)
		return 0, fmt.Errorf("invoke %s: %w", key, ErrNotRegistered)
	}
	r.metrics.Invoked(key.Short(), status.ResultInvoked)
	return id, nil
}

// Invoke stages one execution of the callback under key through cmd
// Returns an error wrapping ErrNotRegistered and stages nothing if key is unknown
// A miss leaves the table, the world and cmd untouched; only the not_registered counter moves
func (r *Registry) Invoke(cmd *engine.Commands, key core.Key) error {
	id, err := r.lookup(key)
	if err != nil {
		return err
	}
	cmd.RunSystem(id)
	return nil
}

// RunNow executes the callback under key immediately, applying its commands before returning
func (r *Registry) RunNow(w *engine.World, key core.Key) error {
	id, err := r.lookup(key)
	if err != nil {
		return err
	}
	return w.RunSystem(id)
}

// Has reports whether key is registered
func (r *Registry) Has(key core.Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handles[key]
	return ok
}

// Len returns the number of registered callbacks
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

// Keys returns all registered keys sorted
func (r *Registry) Keys() []core.Key {
	r.mu.RLock()
	keys := make([]core.Key, 0, len(r.handles))
	for k := range r.handles {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Seal rejects further registrations
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// RegisterFor registers fn under the key of marker M
func RegisterFor[M core.Marker](r *Registry, w *engine.World, fn engine.SystemFunc) {
	r.Register(w, core.KeyOf[M](), fn)
}

// InvokeFor stages the callback registered for marker M
func InvokeFor[M core.Marker](r *Registry, cmd *engine.Commands) error {
	return r.Invoke(cmd, core.KeyOf[M]())
}
