package platform

import (
	"fmt"
	"sync"

	"github.com/hyprbind/hyprbind/pkg/errors"
)

// Handler receives one native event.
type Handler func(ev Event)

type bridgeEntry struct {
	owner   Handle
	kind    EventKind
	handler Handler
	once    bool
}

// Bridge is the callback table between native event delivery and Go
// handlers. It implements Dispatcher.
//
// Native code only ever sees Tokens. The table entry is what keeps a handler
// closure reachable, so an entry must outlive every delivery native could
// still make: release a token only after the toolkit has forgotten it
// (Unlisten, object destroyed, or a one-shot that already fired).
//
// Deliver runs on the event-loop thread and calls the handler directly, with
// no lock held, so handlers may mutate the element tree or destroy objects.
type Bridge struct {
	mu      sync.Mutex
	next    Token
	entries map[Token]*bridgeEntry
}

// NewBridge returns an empty callback table.
func NewBridge() *Bridge {
	return &Bridge{entries: make(map[Token]*bridgeEntry)}
}

// Register stores handler for events of kind raised by owner and returns the
// token to hand to native code.
func (b *Bridge) Register(owner Handle, kind EventKind, handler Handler) Token {
	return b.add(owner, kind, handler, false)
}

// RegisterOnce is like Register, but the entry is released right after its
// first delivery.
func (b *Bridge) RegisterOnce(owner Handle, kind EventKind, handler Handler) Token {
	return b.add(owner, kind, handler, true)
}

func (b *Bridge) add(owner Handle, kind EventKind, handler Handler, once bool) Token {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.entries[b.next] = &bridgeEntry{owner: owner, kind: kind, handler: handler, once: once}
	return b.next
}

// Release drops the entry for token. Releasing an unknown token is a no-op.
func (b *Bridge) Release(token Token) {
	b.mu.Lock()
	delete(b.entries, token)
	b.mu.Unlock()
}

// ReleaseOwner drops every entry registered by owner and returns how many
// were dropped.
func (b *Bridge) ReleaseOwner(owner Handle) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for tok, e := range b.entries {
		if e.owner == owner {
			delete(b.entries, tok)
			n++
		}
	}
	return n
}

// Reset drops every entry and returns how many were dropped.
func (b *Bridge) Reset() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.entries)
	b.entries = make(map[Token]*bridgeEntry)
	return n
}

// Len returns the number of live entries.
func (b *Bridge) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Owned returns the number of live entries registered by owner.
func (b *Bridge) Owned(owner Handle) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.entries {
		if e.owner == owner {
			n++
		}
	}
	return n
}

// Deliver invokes the handler registered for token. A panic in the handler is
// recovered and reported; it never unwinds into the caller. Deliveries for
// unknown tokens are reported and dropped.
func (b *Bridge) Deliver(token Token, ev Event) {
	b.mu.Lock()
	e, ok := b.entries[token]
	if ok && e.once {
		delete(b.entries, token)
	}
	b.mu.Unlock()

	if !ok {
		errors.Report(&errors.BindError{
			Op:   "platform.Bridge.Deliver",
			Kind: errors.KindCallback,
			Err:  fmt.Errorf("%w: token %d (%s)", errors.ErrStaleToken, token, ev.Kind),
		})
		return
	}
	if e.handler == nil {
		return
	}
	b.invoke(e, ev)
}

func (b *Bridge) invoke(e *bridgeEntry, ev Event) {
	defer errors.Boundary{
		Op:     "platform.Bridge.Deliver",
		Handle: uint64(e.owner),
		Event:  e.kind.String(),
	}.Recover()
	e.handler(ev)
}
