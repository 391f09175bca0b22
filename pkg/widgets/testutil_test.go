package widgets_test

import (
	"testing"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/headless"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// newBackend returns a live backend on a fresh headless toolkit. The
// backend is destroyed when the test ends.
func newBackend(t *testing.T, opts ...headless.Option) (*engine.Backend, *headless.Toolkit) {
	t.Helper()
	tk := headless.New(opts...)
	rt := engine.NewRuntime(tk, engine.WithLogger(engine.DiscardLogger()))
	b, err := rt.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = b.Destroy() })
	return b, tk
}

func mustNode(t *testing.T, tk *headless.Toolkit, h platform.Handle) headless.Node {
	t.Helper()
	n, ok := tk.Node(h)
	if !ok {
		t.Fatalf("no native object %s", h)
	}
	return n
}

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return v
	}
}
