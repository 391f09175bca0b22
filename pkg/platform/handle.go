package platform

import "strconv"

// Handle is an opaque identifier for an object living in the native toolkit.
// It is process local and meaningless outside the Toolkit that issued it.
type Handle uintptr

// NullHandle is returned by native creation calls that failed.
const NullHandle Handle = 0

// Valid reports whether h is not the null handle.
func (h Handle) Valid() bool {
	return h != NullHandle
}

func (h Handle) String() string {
	return "0x" + strconv.FormatUint(uint64(h), 16)
}

// Proxy is a Go value standing for exactly one native handle.
type Proxy interface {
	Handle() Handle
}

// Kind identifies the native object type behind a handle.
type Kind int

const (
	KindUnknown Kind = iota
	KindBackend
	KindWindow
	KindElement
	KindButton
	KindText
	KindRectangle
	KindLine
	KindCheckbox
	KindTextbox
	KindScrollArea
	KindColumnLayout
	KindRowLayout
)

func (k Kind) String() string {
	switch k {
	case KindBackend:
		return "backend"
	case KindWindow:
		return "window"
	case KindElement:
		return "element"
	case KindButton:
		return "button"
	case KindText:
		return "text"
	case KindRectangle:
		return "rectangle"
	case KindLine:
		return "line"
	case KindCheckbox:
		return "checkbox"
	case KindTextbox:
		return "textbox"
	case KindScrollArea:
		return "scroll area"
	case KindColumnLayout:
		return "column layout"
	case KindRowLayout:
		return "row layout"
	default:
		return "unknown"
	}
}
