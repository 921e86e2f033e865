package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lixenwraith/scenery/engine/fsm"
	"github.com/lixenwraith/scenery/event"
)

const (
	stateMenu fsm.StateID = iota + 2
	statePlaying
	statePaused
)

// newTestApp builds Menu, Playing and Playing/Paused with Start/Pause/Resume/Menu events
func newTestApp(t *testing.T) *App {
	t.Helper()
	app := NewApp()
	m := app.States()
	m.AddState(stateMenu, "Menu", fsm.StateRoot)
	m.AddState(statePlaying, "Playing", fsm.StateRoot)
	m.AddState(statePaused, "Paused", statePlaying)
	m.AddTransition(stateMenu, fsm.Transition[*StateContext]{TargetID: statePlaying, Event: event.EventStart})
	m.AddTransition(statePlaying, fsm.Transition[*StateContext]{TargetID: statePaused, Event: event.EventPause})
	m.AddTransition(statePaused, fsm.Transition[*StateContext]{TargetID: statePlaying, Event: event.EventResume})
	m.AddTransition(fsm.StateRoot, fsm.Transition[*StateContext]{TargetID: stateMenu, Event: event.EventMenu})
	m.InitialStateID = stateMenu
	return app
}

func record(journal *[]string, entry string) SystemFunc {
	return func(*World, *Commands) {
		*journal = append(*journal, entry)
	}
}

// TestApp_StartupOrder verifies startup systems run and apply before the initial enter reactions
func TestApp_StartupOrder(t *testing.T) {
	app := newTestApp(t)
	var journal []string
	var spawned bool

	app.AddStartupSystem(func(w *World, cmd *Commands) {
		journal = append(journal, "startup")
		cmd.Spawn()
	})
	app.OnEnter(stateMenu, func(w *World, cmd *Commands) {
		spawned = w.Count() == 1
		journal = append(journal, "enter:Menu")
	})

	if err := app.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	if !reflect.DeepEqual(journal, []string{"startup", "enter:Menu"}) {
		t.Errorf("Expected [startup enter:Menu], got %v", journal)
	}
	if !spawned {
		t.Error("Expected startup commands applied before enter")
	}
	if app.State() != stateMenu {
		t.Errorf("Expected Menu, got %d", app.State())
	}
	if err := app.Startup(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted, got %v", err)
	}
}

// TestApp_ExitAppliedBeforeEnter verifies exit mutations land before enter reactions observe the world
func TestApp_ExitAppliedBeforeEnter(t *testing.T) {
	app := newTestApp(t)
	var root *EntityCommands
	var seenAlive bool

	app.OnEnter(stateMenu, func(w *World, cmd *Commands) {
		root = cmd.Spawn()
	})
	app.OnExit(stateMenu, func(w *World, cmd *Commands) {
		cmd.Entity(root.ID()).DespawnRecursive()
	})
	app.OnEnter(statePlaying, func(w *World, cmd *Commands) {
		seenAlive = w.Alive(root.ID())
	})

	if err := app.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if !app.World().Alive(root.ID()) {
		t.Fatal("Expected menu root alive after startup")
	}

	app.SetNextState(statePlaying)
	app.Update()

	if seenAlive {
		t.Error("Expected menu root destroyed before Playing enter ran")
	}
	if app.State() != statePlaying {
		t.Errorf("Expected Playing, got %d", app.State())
	}
}

// TestApp_EventTransitions verifies hierarchical enter/exit notifications through queued events
func TestApp_EventTransitions(t *testing.T) {
	app := newTestApp(t)
	var journal []string
	for id, name := range map[fsm.StateID]string{stateMenu: "Menu", statePlaying: "Playing", statePaused: "Paused"} {
		app.OnEnter(id, record(&journal, "enter:"+name))
		app.OnExit(id, record(&journal, "exit:"+name))
	}

	if err := app.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	journal = nil

	app.Emit(event.EventStart, nil)
	app.Update()
	app.Emit(event.EventPause, nil)
	app.Update()
	app.Emit(event.EventResume, nil)
	app.Update()
	app.Emit(event.EventPause, nil)
	app.Update()
	app.Emit(event.EventMenu, nil)
	app.Update()

	expected := []string{
		"exit:Menu", "enter:Playing",
		"enter:Paused",
		"exit:Paused",
		"enter:Paused",
		"exit:Paused", "exit:Playing", "enter:Menu",
	}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("Expected %v, got %v", expected, journal)
	}
	if app.World().Frame() != 5 {
		t.Errorf("Expected frame 5, got %d", app.World().Frame())
	}
}

// TestApp_SetNextStateLastWins verifies only the final request of a tick is applied
func TestApp_SetNextStateLastWins(t *testing.T) {
	app := newTestApp(t)
	var journal []string
	app.OnEnter(statePlaying, record(&journal, "enter:Playing"))
	app.OnEnter(statePaused, record(&journal, "enter:Paused"))
	app.OnExit(stateMenu, record(&journal, "exit:Menu"))

	if err := app.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	app.SetNextState(statePaused)
	app.SetNextState(statePlaying)
	app.Update()

	if !reflect.DeepEqual(journal, []string{"exit:Menu", "enter:Playing"}) {
		t.Errorf("Expected [exit:Menu enter:Playing], got %v", journal)
	}

	// Requesting the active state is a no-op
	journal = nil
	app.SetNextState(statePlaying)
	app.Update()
	if len(journal) != 0 {
		t.Errorf("Expected no notifications, got %v", journal)
	}
}

// TestApp_SystemPriority verifies update systems run by ascending priority, ties in registration order
func TestApp_SystemPriority(t *testing.T) {
	app := newTestApp(t)
	var journal []string
	app.AddSystem(20, record(&journal, "b"))
	app.AddSystem(10, record(&journal, "a"))
	app.AddSystem(20, record(&journal, "c"))

	if err := app.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	app.Update()

	if !reflect.DeepEqual(journal, []string{"a", "b", "c"}) {
		t.Errorf("Expected [a b c], got %v", journal)
	}
}

// TestApp_Handlers verifies router handlers receive events after the state machine
func TestApp_Handlers(t *testing.T) {
	app := newTestApp(t)
	var seenState fsm.StateID
	app.AddHandler(HandlerFunc(func(w *World, cmd *Commands, ev event.Event) {
		seenState = app.State()
		cmd.Spawn()
	}, event.EventStart))

	if err := app.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	app.Emit(event.EventStart, nil)
	app.Update()

	if seenState != statePlaying {
		t.Errorf("Expected handler to observe Playing, got %d", seenState)
	}
	if app.World().Count() != 1 {
		t.Errorf("Expected handler commands applied, got %d entities", app.World().Count())
	}
}

// TestApp_Sealed verifies assembly calls panic after Startup and seal hooks run once
func TestApp_Sealed(t *testing.T) {
	app := newTestApp(t)
	hooks := 0
	app.OnSeal(func() { hooks++ })

	if err := app.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if hooks != 1 || !app.Sealed() {
		t.Errorf("Expected sealed with 1 hook run, got sealed=%v hooks=%d", app.Sealed(), hooks)
	}

	calls := map[string]func(){
		"OnEnter":          func() { app.OnEnter(stateMenu, record(new([]string), "x")) },
		"OnExit":           func() { app.OnExit(stateMenu, record(new([]string), "x")) },
		"AddSystem":        func() { app.AddSystem(0, record(new([]string), "x")) },
		"AddStartupSystem": func() { app.AddStartupSystem(record(new([]string), "x")) },
	}
	for name, call := range calls {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrSealed) {
					t.Errorf("%s: expected ErrSealed panic, got %v", name, r)
				}
			}()
			call()
		}()
	}
}

// TestApp_UnknownState verifies reactions and requests naming undefined states panic
func TestApp_UnknownState(t *testing.T) {
	app := newTestApp(t)

	for name, call := range map[string]func(){
		"OnEnter":      func() { app.OnEnter(fsm.StateID(99), record(new([]string), "x")) },
		"SetNextState": func() { app.SetNextState(fsm.StateID(99)) },
	} {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrUnknownState) {
					t.Errorf("%s: expected ErrUnknownState panic, got %v", name, r)
				}
			}()
			call()
		}()
	}
}

// TestApp_StartupWithoutInitial verifies a missing initial state is reported
func TestApp_StartupWithoutInitial(t *testing.T) {
	app := NewApp()
	if err := app.Startup(); err == nil {
		t.Error("Expected error without initial state")
	}
}
