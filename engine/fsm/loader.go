package fsm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lixenwraith/scenery/event"
)

// Config is the decoded state graph
//
//	initial = "MainMenu"
//	[states.Playing]
//	parent = "Root"
//	[states.Playing.on]
//	Pause = "Paused"
type Config struct {
	Initial string                 `mapstructure:"initial"`
	States  map[string]StateConfig `mapstructure:"states"`
}

// StateConfig describes one node: its parent and event-keyed transitions
type StateConfig struct {
	Parent string            `mapstructure:"parent"`
	On     map[string]string `mapstructure:"on"` // Event name -> target state name
}

// LoadConfig merges a decoded graph into the Machine
// States already defined programmatically keep their IDs, new ones are allocated in name order
// Names are resolved case-insensitively; "Root" is implicit
func LoadConfig[T any](m *Machine[T], cfg Config) error {
	// 1. Deterministic ID allocation for unknown names
	names := make([]string, 0, len(cfg.States))
	for name := range cfg.States {
		if strings.EqualFold(name, "Root") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	ids := make(map[string]StateID, len(names))
	for _, name := range names {
		if id, ok := m.StateByName(name); ok {
			ids[name] = id
			continue
		}
		id := m.NextFreeID()
		m.AddState(id, name, StateRoot)
		ids[name] = id
	}

	// 2. Resolve parents
	for _, name := range names {
		parentName := cfg.States[name].Parent
		if parentName == "" {
			parentName = "Root"
		}
		parentID, ok := m.StateByName(parentName)
		if !ok {
			return fmt.Errorf("state '%s' references unknown parent '%s'", name, parentName)
		}
		m.nodes[ids[name]].ParentID = parentID
	}

	// 3. Transitions
	for _, name := range names {
		on := cfg.States[name].On
		events := make([]string, 0, len(on))
		for ev := range on {
			events = append(events, ev)
		}
		sort.Strings(events)

		for _, evName := range events {
			et, ok := event.GetEventType(evName)
			if !ok {
				return fmt.Errorf("state '%s' references unknown event '%s'", name, evName)
			}
			targetID, ok := m.StateByName(on[evName])
			if !ok {
				return fmt.Errorf("state '%s' event '%s' targets unknown state '%s'", name, evName, on[evName])
			}
			m.AddTransition(ids[name], Transition[T]{TargetID: targetID, Event: et})
		}
	}

	// 4. Initial state
	if cfg.Initial != "" {
		initial, ok := m.StateByName(cfg.Initial)
		if !ok {
			return fmt.Errorf("initial state '%s' not defined", cfg.Initial)
		}
		m.InitialStateID = initial
	}

	// 5. Finalize: Compile Paths for LCA
	return m.CompilePaths()
}
