package platform

import "time"

// Toolkit is the native side of the binding. Implementations wrap a real
// toolkit library or simulate one in memory.
//
// Creation calls return NullHandle on failure. Every other call takes handles
// the binding layer has already validated against its Registry; behavior on a
// destroyed handle is undefined, which is why the binding never makes one.
type Toolkit interface {
	BackendAPI
	WindowAPI
	ElementAPI
	WidgetAPI
}

// BackendAPI owns the event loop.
type BackendAPI interface {
	// SetDispatcher installs the receiver for every event the toolkit raises.
	SetDispatcher(d Dispatcher)
	CreateBackend() Handle
	// EnterLoop blocks until the toolkit decides to exit.
	EnterLoop(backend Handle)
	// AddTimer delivers an EventTimer for token once, no earlier than timeout.
	AddTimer(backend Handle, timeout time.Duration, token Token)
	// AddIdle delivers an EventIdle for token once, after pending events drain.
	AddIdle(backend Handle, token Token)
	DestroyBackend(backend Handle)
}

// WindowAPI manages top-level windows.
type WindowAPI interface {
	CreateWindow(p WindowParams) Handle
	// WindowRoot returns the window's root element handle.
	WindowRoot(window Handle) Handle
	OpenWindow(window Handle)
	CloseWindow(window Handle)
	WindowSize(window Handle) (width, height int)
	DestroyWindow(window Handle)
}

// ElementAPI is the capability set shared by all elements.
type ElementAPI interface {
	// DestroyElement drops the binding's reference to an element. Attached
	// descendants become invalid with it.
	DestroyElement(h Handle)

	AddChild(parent, child Handle)
	RemoveChild(parent, child Handle)
	ClearChildren(parent Handle)

	SetSize(h Handle, width, height int)
	SetMargin(h Handle, top, right, bottom, left int)
	SetGrow(h Handle, horizontal, vertical bool)
	SetAlign(h Handle, a Align)
	SetPositionMode(h Handle, m PositionMode)
	SetAbsolutePosition(h Handle, x, y int)

	// Listen routes events of kind on h to token, replacing any previous token.
	Listen(h Handle, kind EventKind, token Token)
	// Unlisten forgets the token for kind on h. After it returns the toolkit
	// never delivers that token again.
	Unlisten(h Handle, kind EventKind)
}

// WidgetAPI holds one creation call per widget kind and the kind-specific
// accessors.
type WidgetAPI interface {
	CreateButton(p ButtonParams) Handle
	CreateText(p TextParams) Handle
	CreateRectangle(p RectangleParams) Handle
	CreateLine(p LineParams) Handle
	CreateCheckbox(p CheckboxParams) Handle
	CreateTextbox(p TextboxParams) Handle
	CreateScrollArea(p ScrollAreaParams) Handle
	CreateColumnLayout(p LayoutParams) Handle
	CreateRowLayout(p LayoutParams) Handle

	SetButtonLabel(h Handle, label string)
	SetTextContent(h Handle, content string)
	SetTextFontSize(h Handle, size int)
	TextboxText(h Handle) string
	SetTextboxText(h Handle, text string)
	CheckboxChecked(h Handle) bool
	SetCheckboxChecked(h Handle, checked bool)
	ScrollOffset(h Handle) (x, y int)
	SetScroll(h Handle, x, y int)
}
