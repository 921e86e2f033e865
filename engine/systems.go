package engine

import (
	"errors"
	"fmt"
)

// SystemFunc is a unit of logic run against the world with a deferred command buffer
type SystemFunc func(w *World, cmd *Commands)

// SystemID is the opaque handle of a registered system, zero is never issued
type SystemID uint32

// ErrUnknownSystem is returned when running a handle the world never issued
var ErrUnknownSystem = errors.New("unknown system")

// RegisterSystem stores fn in the system table and returns its handle
func (w *World) RegisterSystem(fn SystemFunc) SystemID {
	if fn == nil {
		panic("RegisterSystem: nil system")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.systems = append(w.systems, fn)
	return SystemID(len(w.systems))
}

// RunSystem executes a registered system immediately with a fresh command buffer,
// applying the buffer before returning
func (w *World) RunSystem(id SystemID) error {
	w.mu.RLock()
	if id == 0 || int(id) > len(w.systems) {
		w.mu.RUnlock()
		return fmt.Errorf("run system %d: %w", id, ErrUnknownSystem)
	}
	fn := w.systems[id-1]
	w.mu.RUnlock()

	cmd := NewCommands(w)
	fn(w, cmd)
	cmd.Apply()
	return nil
}

// SystemCount returns the number of registered systems
func (w *World) SystemCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.systems)
}
