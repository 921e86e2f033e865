package fsm

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lixenwraith/scenery/event"
)

// NewMachine creates a new FSM instance with only the Root node defined
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		names:      make(map[string]StateID),
		activePath: make([]StateID, 0, 4),
	}
	m.AddState(StateRoot, "Root", StateNone)
	return m
}

// SetPhaseHook installs the barrier run after the exit phase and after the enter phase
func (m *Machine[T]) SetPhaseHook(fn func(ctx T, phase Phase)) {
	m.phaseHook = fn
}

// Init enters every state on the path from Root to InitialStateID
func (m *Machine[T]) Init(ctx T) error {
	if m.InitialStateID == StateNone {
		return fmt.Errorf("FSM has no initial state")
	}
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}
	if len(node.Path) == 0 {
		if err := m.CompilePaths(); err != nil {
			return err
		}
	}

	m.activeStateID = m.InitialStateID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		m.runActions(ctx, m.nodes[id].OnEnter)
	}
	m.barrier(ctx, PhaseEnter)
	return nil
}

// Update advances time in state and evaluates tick transitions (Event == EventTick)
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	// Evaluate Tick Transitions, bubble up
	if target, ok := m.match(ctx, event.EventTick); ok {
		m.transition(ctx, target)
	}
}

// HandleEvent routes an event through the active path, leaf first
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == event.EventTick {
		return false
	}
	target, ok := m.match(ctx, eventType)
	if !ok {
		return false
	}
	return m.transition(ctx, target)
}

// TransitionTo moves the machine to targetID, running exit then enter actions below the LCA
// Returns false without side effects when targetID is already the active leaf
func (m *Machine[T]) TransitionTo(ctx T, targetID StateID) (bool, error) {
	if m.activeStateID == StateNone {
		return false, fmt.Errorf("FSM not initialized")
	}
	if _, ok := m.nodes[targetID]; !ok {
		return false, fmt.Errorf("unknown state ID %d", targetID)
	}
	return m.transition(ctx, targetID), nil
}

// match finds the first transition for eventType whose guard passes, bubbling Leaf -> Root
func (m *Machine[T]) match(ctx T, eventType event.EventType) (StateID, bool) {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != eventType {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				return trans.TargetID, true
			}
		}
		currID = node.ParentID
	}
	return StateNone, false
}

// transition performs the state change
func (m *Machine[T]) transition(ctx T, targetID StateID) bool {
	if m.activeStateID == targetID {
		return false
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	// Find LCA
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := len(currentPath)
	if len(targetPath) < minLen {
		minLen = len(targetPath)
	}
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		m.runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}
	m.barrier(ctx, PhaseExit)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		m.runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}

	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	m.barrier(ctx, PhaseEnter)
	return true
}

func (m *Machine[T]) runActions(ctx T, actions []ActionFunc[T]) {
	for _, fn := range actions {
		fn(ctx)
	}
}

func (m *Machine[T]) barrier(ctx T, phase Phase) {
	if m.phaseHook != nil {
		m.phaseHook(ctx, phase)
	}
}

// === Queries ===

// Current returns the active leaf state
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// InState reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) InState(id StateID) bool {
	for _, active := range m.activePath {
		if active == id {
			return true
		}
	}
	return false
}

// ActivePath returns a copy of the Root -> Leaf path
func (m *Machine[T]) ActivePath() []StateID {
	out := make([]StateID, len(m.activePath))
	copy(out, m.activePath)
	return out
}

// TimeInState returns time spent in the current leaf
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Has reports whether the state is defined
func (m *Machine[T]) Has(id StateID) bool {
	_, ok := m.nodes[id]
	return ok
}

// StateName returns the node name, or "" for unknown IDs
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// StateByName resolves a state name case-insensitively
func (m *Machine[T]) StateByName(name string) (StateID, bool) {
	id, ok := m.names[strings.ToLower(name)]
	return id, ok
}

// PathString renders the active path as "Root/Playing/Paused"
func (m *Machine[T]) PathString() string {
	parts := make([]string, 0, len(m.activePath))
	for _, id := range m.activePath {
		parts = append(parts, m.nodes[id].Name)
	}
	return strings.Join(parts, "/")
}

// States returns every defined node ID except Root, in ascending order
func (m *Machine[T]) States() []StateID {
	ids := make([]StateID, 0, len(m.nodes))
	for id := range m.nodes {
		if id != StateRoot {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Node returns the node for inspection (transitions, parent)
func (m *Machine[T]) Node(id StateID) (*Node[T], bool) {
	node, ok := m.nodes[id]
	return node, ok
}
