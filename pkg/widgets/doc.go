// Package widgets provides the proxies for native UI objects and the
// builders that create them.
//
// # Widget Construction
//
// Every widget kind has a value-type config with documented defaults. A
// config is consumed by Build, which takes the live backend explicitly and
// makes exactly one native creation call:
//
// ## Tier 1: Struct Literal (canonical, full control)
//
//	btn, err := widgets.ButtonConfig{
//	    Label:   "Submit",
//	    OnClick: handleSubmit,
//	}.Build(backend)
//
// Zero fields fall back to the kind's defaults.
//
// ## Tier 2: XxxOf helpers and WithX chaining
//
//	txt, err := widgets.TextOf("Hello").
//	    WithFontSize(18).
//	    WithAlpha(0.8).
//	    Build(backend)
//
// WithX methods return modified copies, so a config can be reused as a
// template.
//
// # Ownership
//
// A proxy wraps one native handle and is registered for it in the backend's
// registry, so the same handle always maps to the same proxy. Attaching an
// element to a parent hands its lifetime to the parent: destroying the
// parent, its window or the backend invalidates every element below it.
// Operations on an invalidated proxy fail with errors.ErrInvalidHandle and
// never reach the native side.
//
// # Handlers
//
// Handlers run on the event-loop thread, inside Backend.EnterLoop, and may
// change the tree or destroy objects. They stay reachable until replaced or
// until their object is destroyed. A panicking handler is recovered and
// reported through the errors package.
package widgets
