package fsm

import (
	"time"

	"github.com/lixenwraith/scenery/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Phase identifies the half of a transition that just completed
type Phase uint8

const (
	PhaseExit Phase = iota
	PhaseEnter
)

// Machine is the generic Hierarchical Finite State Machine runtime
// T is the context type passed to actions and guards (e.g., *engine.App)
type Machine[T any] struct {
	// Graph Data (Immutable after CompilePaths)
	nodes map[StateID]*Node[T]
	names map[string]StateID // Lowercased name -> ID

	// Configuration
	InitialStateID StateID

	// Runtime State
	activeStateID StateID       // The current leaf node
	timeInState   time.Duration // Time elapsed in current state
	activePath    []StateID     // Stack of active states (Root -> Child -> Leaf)

	// Barrier invoked after each transition phase
	phaseHook func(ctx T, phase Phase)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node, used for LCA lookup
	Path []StateID

	// Run in registration order each time the node is entered or exited
	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions sorted by evaluation priority
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventTick = evaluated every Update (auto-transition)
	Guard    GuardFunc[T]    // nil = Always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
