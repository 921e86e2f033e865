package parameter

import "time"

// Host loop timing
const (
	// TickInterval is the default scheduler tick (state transitions, update systems, barriers)
	TickInterval = 50 * time.Millisecond

	// FrameInterval is the terminal redraw interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond
)

// ECS & Resources Limits
const (
	// EventQueueSize is the event ring capacity; a power of two
	EventQueueSize = 2048

	// StoreInitialCapacity is the preallocated entity slice length of a component store
	StoreInitialCapacity = 64
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "scenery.log"
	LogMaxSize  = 10 * 1024 * 1024
)
