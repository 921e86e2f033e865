package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scenery/event"
)

// keyEvent maps a terminal key to the application event it emits
// Keys the host does not bind report false
func keyEvent(ev *tcell.EventKey) (event.EventType, any, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return event.EventQuit, nil, true
	case tcell.KeyEnter:
		return event.EventStart, nil, true
	case tcell.KeyRune:
	default:
		return 0, nil, false
	}

	switch ev.Rune() {
	case 'q':
		return event.EventQuit, nil, true
	case 's':
		return event.EventStart, nil, true
	case 'p':
		return event.EventPause, nil, true
	case 'r':
		return event.EventResume, nil, true
	case 'm':
		return event.EventMenu, nil, true
	case '`':
		return event.EventDevModalOpen, nil, true
	case 'x':
		return event.EventModalClose, &event.ModalClosePayload{}, true
	}
	return 0, nil, false
}
