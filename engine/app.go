package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/lixenwraith/scenery/engine/fsm"
	"github.com/lixenwraith/scenery/event"
	"github.com/lixenwraith/scenery/parameter"
	"github.com/lixenwraith/scenery/status"
)

var (
	// ErrSealed is the panic value for assembly calls made after Startup
	ErrSealed = errors.New("app assembly sealed")
	// ErrUnknownState is the panic value for reactions or requests naming an undefined state
	ErrUnknownState = errors.New("unknown state")
	// ErrAlreadyStarted is returned by a second Startup call
	ErrAlreadyStarted = errors.New("app already started")
)

// StateContext is passed to state machine actions and guards
type StateContext struct {
	World    *World
	Commands *Commands
}

// Plugin bundles assembly-time registrations
type Plugin interface {
	Build(app *App)
}

// Option configures an App at construction
type Option func(*App)

// WithTick sets the fixed update interval used by Run and state machine timers
func WithTick(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.tick = d
		}
	}
}

// WithMetrics attaches a metrics facade; nil disables recording
func WithMetrics(m *status.Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

type scheduledSystem struct {
	priority int
	fn       SystemFunc
}

// App owns the world, the state machine and the per-tick schedule
//
// Tick order:
//  1. Drain events: state machine first, then router handlers
//  2. Barrier
//  3. Apply the pending SetNextState request (exit, barrier, enter, barrier)
//  4. Tick transitions
//  5. Update systems by ascending priority
//  6. Barrier, frame advance
type App struct {
	world   *World
	cmd     *Commands
	ctx     *StateContext
	machine *fsm.Machine[*StateContext]
	router  *EventRouter
	queue   *event.EventQueue

	startup []SystemFunc
	systems []scheduledSystem

	sealHooks []func()
	pending   fsm.StateID
	tick      time.Duration
	metrics   *status.Metrics
	sealed    bool
	started   bool
}

// NewApp creates an App with an empty world and a state machine holding only Root
func NewApp(opts ...Option) *App {
	w := NewWorld()
	cmd := NewCommands(w)

	a := &App{
		world:   w,
		cmd:     cmd,
		ctx:     &StateContext{World: w, Commands: cmd},
		machine: fsm.NewMachine[*StateContext](),
		router:  NewEventRouter(),
		queue:   event.NewEventQueue(parameter.EventQueueSize),
		tick:    parameter.TickInterval,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.machine.SetPhaseHook(a.barrier)
	return a
}

// barrier applies staged commands between transition phases
func (a *App) barrier(ctx *StateContext, phase fsm.Phase) {
	ctx.Commands.Apply()
	if phase == fsm.PhaseEnter {
		name := a.machine.StateName(a.machine.Current())
		a.metrics.Transitioned(name)
		log.Printf("[app] entered %s", a.machine.PathString())
	}
}

// World returns the object store
func (a *App) World() *World {
	return a.world
}

// States returns the state machine for graph construction
func (a *App) States() *fsm.Machine[*StateContext] {
	return a.machine
}

// Router returns the event router for handler registration
func (a *App) Router() *EventRouter {
	return a.router
}

// Metrics returns the attached metrics facade, possibly nil
func (a *App) Metrics() *status.Metrics {
	return a.metrics
}

// Tick returns the fixed update interval
func (a *App) Tick() time.Duration {
	return a.tick
}

// Sealed reports whether Startup has completed
func (a *App) Sealed() bool {
	return a.sealed
}

func (a *App) mustAssemble(op string) {
	if a.sealed {
		panic(fmt.Errorf("%s: %w", op, ErrSealed))
	}
}

// AddPlugin runs the plugin's registrations
func (a *App) AddPlugin(p Plugin) *App {
	a.mustAssemble("AddPlugin")
	p.Build(a)
	return a
}

// AddStartupSystem schedules fn once, before the initial state is entered
func (a *App) AddStartupSystem(fn SystemFunc) *App {
	a.mustAssemble("AddStartupSystem")
	a.startup = append(a.startup, fn)
	return a
}

// AddSystem schedules fn every tick; lower priority runs first, ties keep registration order
func (a *App) AddSystem(priority int, fn SystemFunc) *App {
	a.mustAssemble("AddSystem")
	a.systems = append(a.systems, scheduledSystem{priority: priority, fn: fn})
	sort.SliceStable(a.systems, func(i, j int) bool {
		return a.systems[i].priority < a.systems[j].priority
	})
	return a
}

// AddHandler registers an event handler
func (a *App) AddHandler(h EventHandler) *App {
	a.mustAssemble("AddHandler")
	a.router.Register(h)
	return a
}

// OnSeal registers fn to run once assembly is sealed
func (a *App) OnSeal(fn func()) {
	a.mustAssemble("OnSeal")
	a.sealHooks = append(a.sealHooks, fn)
}

// OnEnter runs fn each time state is entered; mutations apply at the following barrier
func (a *App) OnEnter(state fsm.StateID, fn SystemFunc) *App {
	a.mustAssemble("OnEnter")
	if err := a.machine.AddEnterAction(state, wrapAction(fn)); err != nil {
		panic(fmt.Errorf("OnEnter: %w: %v", ErrUnknownState, err))
	}
	return a
}

// OnExit runs fn each time state is exited; mutations apply before any enter reaction runs
func (a *App) OnExit(state fsm.StateID, fn SystemFunc) *App {
	a.mustAssemble("OnExit")
	if err := a.machine.AddExitAction(state, wrapAction(fn)); err != nil {
		panic(fmt.Errorf("OnExit: %w: %v", ErrUnknownState, err))
	}
	return a
}

func wrapAction(fn SystemFunc) fsm.ActionFunc[*StateContext] {
	return func(ctx *StateContext) {
		fn(ctx.World, ctx.Commands)
	}
}

// Startup runs startup systems, enters the initial state path and seals assembly
func (a *App) Startup() error {
	if a.started {
		return ErrAlreadyStarted
	}
	a.started = true

	for _, fn := range a.startup {
		fn(a.world, a.cmd)
	}
	a.cmd.Apply()

	if err := a.machine.CompilePaths(); err != nil {
		return fmt.Errorf("compile state graph: %w", err)
	}
	if err := a.machine.Init(a.ctx); err != nil {
		return fmt.Errorf("enter initial state: %w", err)
	}

	a.sealed = true
	for _, fn := range a.sealHooks {
		fn()
	}
	return nil
}

// Emit queues an event for the next tick; safe from any goroutine
func (a *App) Emit(t event.EventType, payload any) {
	a.queue.Push(event.Event{Type: t, Payload: payload, Frame: a.world.Frame()})
}

// SetNextState requests a transition applied during the next tick
// The last request within a tick wins; requesting the active state changes nothing
func (a *App) SetNextState(id fsm.StateID) {
	if !a.machine.Has(id) || id == fsm.StateRoot {
		panic(fmt.Errorf("SetNextState(%d): %w", id, ErrUnknownState))
	}
	a.pending = id
}

// State returns the active leaf state
func (a *App) State() fsm.StateID {
	return a.machine.Current()
}

// InState reports whether id is active, including ancestors of the leaf
func (a *App) InState(id fsm.StateID) bool {
	return a.machine.InState(id)
}

// Update runs one tick
func (a *App) Update() {
	for _, ev := range a.queue.Consume() {
		a.machine.HandleEvent(a.ctx, ev.Type)
		a.router.Dispatch(a.world, a.cmd, ev)
	}
	a.cmd.Apply()

	if a.pending != fsm.StateNone {
		target := a.pending
		a.pending = fsm.StateNone
		if _, err := a.machine.TransitionTo(a.ctx, target); err != nil {
			log.Printf("[app] transition to %d failed: %v", target, err)
		}
	}

	a.machine.Update(a.ctx, a.tick)

	for _, s := range a.systems {
		s.fn(a.world, a.cmd)
	}
	a.cmd.Apply()

	a.world.advanceFrame()
}

// Run calls Startup if needed, then Update every tick until ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	if !a.started {
		if err := a.Startup(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.Update()
		}
	}
}
