package audio

// Cue identifies a short interface sound
type Cue int

const (
	CueEnter Cue = iota // Scene entered
	CueExit             // Scene torn down
	CueOpen             // Modal opened
	CueClose            // Modal closed
	cueCount
)

var cueNames = [cueCount]string{"enter", "exit", "open", "close"}

// String returns the cue name
func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Player is the minimal audio interface used by systems
// Published as a world resource when the audio service starts
type Player interface {
	Play(Cue) bool
	IsMuted() bool
	SetMuted(bool)
}
