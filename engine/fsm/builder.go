package fsm

import (
	"fmt"
	"strings"
)

// AddState adds a node to the machine manually
// Useful for constructing the graph programmatically or during config load
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		ParentID:    parentID,
		Transitions: make([]Transition[T], 0),
		OnEnter:     make([]ActionFunc[T], 0),
		OnExit:      make([]ActionFunc[T], 0),
	}
	m.nodes[id] = node
	m.names[strings.ToLower(name)] = id
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// AddEnterAction appends a side effect run each time the state is entered
func (m *Machine[T]) AddEnterAction(id StateID, fn ActionFunc[T]) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("unknown state ID %d", id)
	}
	node.OnEnter = append(node.OnEnter, fn)
	return nil
}

// AddExitAction appends a side effect run each time the state is exited
func (m *Machine[T]) AddExitAction(id StateID, fn ActionFunc[T]) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("unknown state ID %d", id)
	}
	node.OnExit = append(node.OnExit, fn)
	return nil
}

// CompilePaths calculates the Path slice for every node in the graph
// Must be called after all nodes are added and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node

		// Walk up to root
		for curr != nil {
			if len(path) > len(m.nodes) {
				return fmt.Errorf("node %d is part of a parent cycle", id)
			}
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d", id, curr.ParentID)
			}
			curr = parent
		}

		// Reverse to get [Root, ..., Leaf]
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}

		node.Path = path
	}
	return nil
}

// NextFreeID returns the lowest unused ID above Root
func (m *Machine[T]) NextFreeID() StateID {
	id := StateRoot + 1
	for {
		if _, taken := m.nodes[id]; !taken {
			return id
		}
		id++
	}
}
