package event

import "strings"

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

func init() {
	RegisterType("Start", EventStart)
	RegisterType("Pause", EventPause)
	RegisterType("Resume", EventResume)
	RegisterType("Menu", EventMenu)
	RegisterType("Quit", EventQuit)
	RegisterType("DevModalOpen", EventDevModalOpen)
	RegisterType("ModalClose", EventModalClose)
}

// RegisterType maps a name to an EventType
// Names are matched case-insensitively since config keys arrive lowercased
func RegisterType(name string, et EventType) {
	nameToType[strings.ToLower(name)] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	// Special case for FSM "Tick"
	if strings.EqualFold(name, "Tick") {
		return EventTick, true
	}
	et, ok := nameToType[strings.ToLower(name)]
	return et, ok
}

// GetEventName returns the registered name for an EventType
func GetEventName(et EventType) string {
	if et == EventTick {
		return "Tick"
	}
	return typeToName[et]
}

// String implements fmt.Stringer
func (et EventType) String() string {
	if name := GetEventName(et); name != "" {
		return name
	}
	return "Unknown"
}
