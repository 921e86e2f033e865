package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioVolume     = 0.3
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines speaker latency
	// 50ms aligns with the scheduler tick
	AudioBufferDuration = 50 * time.Millisecond

	// MinCueGap between consecutive cues of the same kind
	MinCueGap = 50 * time.Millisecond
)

// Scene enter cue: rising two-note chime
const (
	EnterCueNote1Duration = 70 * time.Millisecond
	EnterCueNote2Duration = 180 * time.Millisecond
	EnterCueAttack        = 5 * time.Millisecond
	EnterCueRelease       = 60 * time.Millisecond
)

// Scene exit cue: falling two-note chime
const (
	ExitCueNote1Duration = 70 * time.Millisecond
	ExitCueNote2Duration = 140 * time.Millisecond
	ExitCueAttack        = 5 * time.Millisecond
	ExitCueRelease       = 60 * time.Millisecond
)

// Modal cues
const (
	OpenCueDuration  = 120 * time.Millisecond
	CloseCueDuration = 90 * time.Millisecond
	ModalCueAttack   = 5 * time.Millisecond
	ModalCueRelease  = 50 * time.Millisecond
)
