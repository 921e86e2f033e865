package parameter

// Update system execution priorities (lower runs first)
const (
	PriorityUI = 240
)
