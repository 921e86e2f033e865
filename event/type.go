package event

// EventType represents the type of application event
type EventType int

const (
	// EventTick is reserved for automatic FSM transitions evaluated every tick
	EventTick EventType = iota

	// === State Events ===

	// EventStart leaves the main menu for gameplay
	// Trigger: Input | Consumer: FSM
	EventStart

	// EventPause suspends gameplay
	// Trigger: Input | Consumer: FSM
	EventPause

	// EventResume returns from the pause state
	// Trigger: Input | Consumer: FSM
	EventResume

	// EventMenu returns to the main menu from anywhere
	// Trigger: Input | Consumer: FSM
	EventMenu

	// EventQuit requests host shutdown
	// Trigger: Input | Consumer: Host loop
	EventQuit

	// === UI Events ===

	// EventDevModalOpen opens the developer modal if it is not already live
	// Trigger: Input | Consumer: dev modal handler | Payload: nil
	EventDevModalOpen

	// EventModalClose activates a modal close entity
	// Trigger: Input | Consumer: dev modal handler | Payload: *ModalClosePayload
	EventModalClose
)

// Event is a single queued application event
type Event struct {
	Type    EventType
	Payload any
	Frame   int64
}
