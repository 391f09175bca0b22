package platform

import (
	"fmt"
	"sync"

	"github.com/hyprbind/hyprbind/pkg/errors"
)

// Registry maps live native handles to the single proxy standing for each and
// records the parent/child links of the element tree.
//
// A handle is registered right after its creation call succeeds and
// unregistered exactly once, when the native object is destroyed. Lookups never
// create proxies. The lock is never held while calling into native code or
// into handlers.
type Registry struct {
	mu       sync.RWMutex
	proxies  map[Handle]Proxy
	parents  map[Handle]Handle
	children map[Handle][]Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		proxies:  make(map[Handle]Proxy),
		parents:  make(map[Handle]Handle),
		children: make(map[Handle][]Handle),
	}
}

// Register binds h to proxy.
func (r *Registry) Register(h Handle, proxy Proxy) error {
	if !h.Valid() {
		return errors.New("platform.Registry.Register", errors.KindInvalidHandle, 0, errors.ErrInvalidHandle)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proxies[h]; ok {
		return errors.New("platform.Registry.Register", errors.KindDuplicateHandle, uint64(h), errors.ErrDuplicateHandle)
	}
	r.proxies[h] = proxy
	return nil
}

// Lookup returns the proxy registered for h.
func (r *Registry) Lookup(h Handle) (Proxy, error) {
	r.mu.RLock()
	p, ok := r.proxies[h]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("lookup %s: %w", h, errors.ErrNotFound)
	}
	return p, nil
}

// Contains reports whether h is registered.
func (r *Registry) Contains(h Handle) bool {
	r.mu.RLock()
	_, ok := r.proxies[h]
	r.mu.RUnlock()
	return ok
}

// Is reports whether h is registered to exactly proxy.
func (r *Registry) Is(h Handle, proxy Proxy) bool {
	r.mu.RLock()
	p, ok := r.proxies[h]
	r.mu.RUnlock()
	return ok && p == proxy
}

// Unregister removes h together with every descendant attached below it and
// detaches h from its parent. It returns the removed handles, h first, or nil
// if h was not registered.
func (r *Registry) Unregister(h Handle) []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proxies[h]; !ok {
		return nil
	}
	if parent, ok := r.parents[h]; ok {
		r.unlinkLocked(parent, h)
	}
	removed := []Handle{h}
	for i := 0; i < len(removed); i++ {
		cur := removed[i]
		removed = append(removed, r.children[cur]...)
		delete(r.children, cur)
		delete(r.parents, cur)
		delete(r.proxies, cur)
	}
	return removed
}

// Attach links child under parent. A previous parent link is replaced in the
// same step and returned, or NullHandle if there was none. Attaching a handle
// under itself or under one of its descendants fails with ErrInvalidTree.
func (r *Registry) Attach(parent, child Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proxies[parent]; !ok {
		return NullHandle, errors.New("platform.Registry.Attach", errors.KindInvalidHandle, uint64(parent), errors.ErrInvalidHandle)
	}
	if _, ok := r.proxies[child]; !ok {
		return NullHandle, errors.New("platform.Registry.Attach", errors.KindInvalidHandle, uint64(child), errors.ErrInvalidHandle)
	}
	for cur, ok := parent, true; ok; cur, ok = r.parents[cur] {
		if cur == child {
			return NullHandle, errors.New("platform.Registry.Attach", errors.KindTree, uint64(child),
				fmt.Errorf("%w: %s is an ancestor of %s", errors.ErrInvalidTree, child, parent))
		}
	}
	prev, had := r.parents[child]
	if had {
		if prev == parent {
			return prev, nil
		}
		r.unlinkLocked(prev, child)
	}
	r.parents[child] = parent
	r.children[parent] = append(r.children[parent], child)
	if !had {
		return NullHandle, nil
	}
	return prev, nil
}

// Detach removes the link between parent and child.
func (r *Registry) Detach(parent, child Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.parents[child]; !ok || p != parent {
		return errors.New("platform.Registry.Detach", errors.KindTree, uint64(child),
			fmt.Errorf("%w: %s is not a child of %s", errors.ErrInvalidTree, child, parent))
	}
	r.unlinkLocked(parent, child)
	return nil
}

// Clear detaches every child of parent and returns them in attach order.
// The children stay registered.
func (r *Registry) Clear(parent Handle) []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	kids := r.children[parent]
	delete(r.children, parent)
	for _, c := range kids {
		delete(r.parents, c)
	}
	return kids
}

// Parent returns the parent of h, if attached.
func (r *Registry) Parent(h Handle) (Handle, bool) {
	r.mu.RLock()
	p, ok := r.parents[h]
	r.mu.RUnlock()
	return p, ok
}

// Children returns a copy of the children of h in attach order.
func (r *Registry) Children(h Handle) []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kids := r.children[h]
	if len(kids) == 0 {
		return nil
	}
	out := make([]Handle, len(kids))
	copy(out, kids)
	return out
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.proxies)
}

// Reset drops every registration and returns the handles that were live.
func (r *Registry) Reset() []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Handle, 0, len(r.proxies))
	for h := range r.proxies {
		out = append(out, h)
	}
	r.proxies = make(map[Handle]Proxy)
	r.parents = make(map[Handle]Handle)
	r.children = make(map[Handle][]Handle)
	return out
}

func (r *Registry) unlinkLocked(parent, child Handle) {
	kids := r.children[parent]
	for i, c := range kids {
		if c == child {
			kids = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(kids) == 0 {
		delete(r.children, parent)
	} else {
		r.children[parent] = kids
	}
	delete(r.parents, child)
}
