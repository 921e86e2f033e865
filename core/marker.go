package core

import "strings"

// Marker is implemented by zero-sized tag types that name a scene or a one-shot callback
// TypePath must be declared on a value receiver and return a constant, fully-qualified name,
// e.g. "github.com/lixenwraith/scenery/ui/dev.Modal"
type Marker interface {
	TypePath() string
}

// Key is the stable identifier derived from a Marker type
// The same marker type always yields the same Key for the lifetime of the process
type Key string

// KeyOf derives the Key of marker type M from its zero value, without reflection
// Panics if M reports an empty path
func KeyOf[M Marker]() Key {
	var m M
	path := m.TypePath()
	if path == "" {
		panic("marker type reports empty TypePath")
	}
	return Key(path)
}

// String returns the full path
func (k Key) String() string {
	return string(k)
}

// Short returns the last path element ("dev.Modal"), used for log lines and metric labels
func (k Key) Short() string {
	s := string(k)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}
