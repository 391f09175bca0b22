package platform

// Token is the opaque callback reference handed to native code at listener
// registration. Native stores it and passes it back on every delivery.
type Token uint64

// EventKind identifies a native event stream on an object.
type EventKind int

const (
	EventNone EventKind = iota
	// EventTimer fires once when a backend timer expires.
	EventTimer
	// EventIdle fires once after pending events drain.
	EventIdle
	// EventClick is a button activation.
	EventClick
	// EventRightClick is a secondary button activation.
	EventRightClick
	// EventMouseButton is a raw mouse button press or release on an element.
	EventMouseButton
	// EventMouseEnter fires when the pointer enters an element.
	EventMouseEnter
	// EventMouseLeave fires when the pointer leaves an element.
	EventMouseLeave
	// EventKey is a keyboard key press or release on a window.
	EventKey
	// EventResize carries the new drawable size of a window.
	EventResize
	// EventClose is a close request for a window.
	EventClose
	// EventTextChange fires when a textbox's text is edited.
	EventTextChange
	// EventTextSubmit fires when a textbox is submitted.
	EventTextSubmit
	// EventCheckChange fires when a checkbox toggles.
	EventCheckChange
	// EventScroll carries the new offsets of a scroll area.
	EventScroll
)

var eventNames = [...]string{
	EventNone:        "none",
	EventTimer:       "timer",
	EventIdle:        "idle",
	EventClick:       "click",
	EventRightClick:  "right-click",
	EventMouseButton: "mouse-button",
	EventMouseEnter:  "mouse-enter",
	EventMouseLeave:  "mouse-leave",
	EventKey:         "key",
	EventResize:      "resize",
	EventClose:       "close",
	EventTextChange:  "text-change",
	EventTextSubmit:  "text-submit",
	EventCheckChange: "check-change",
	EventScroll:      "scroll",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is the payload of a native notification. Only the fields relevant to
// Kind are set:
//
//   - mouse: X, Y, Button, Pressed
//   - key: KeyCode, Pressed, Text, Modifiers
//   - resize: Width, Height
//   - text change/submit: Text
//   - check change: Checked
//   - scroll: X, Y
type Event struct {
	Kind      EventKind
	X, Y      float64
	Button    int
	Pressed   bool
	Width     int
	Height    int
	KeyCode   uint32
	Text      string
	Modifiers uint32
	Checked   bool
}

// Dispatcher receives native events. Toolkits call Deliver synchronously on
// the event-loop thread.
type Dispatcher interface {
	Deliver(token Token, ev Event)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(token Token, ev Event)

// Deliver calls f(token, ev).
func (f DispatcherFunc) Deliver(token Token, ev Event) {
	f(token, ev)
}
