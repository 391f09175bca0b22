package markup_test

import (
	"image/color"
	"strings"
	"testing"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/headless"
	"github.com/hyprbind/hyprbind/pkg/markup"
	"github.com/hyprbind/hyprbind/pkg/platform"
	"github.com/hyprbind/hyprbind/pkg/widgets"
)

const counter = `
window:
  title: Counter
  size: [320, 200]
  onClose: quit
root:
  - type: column
    id: main
    gap: 8
    margin: [4, 6]
    grow: true
    children:
      - type: text
        id: count
        content: "0"
        color: gold
        fontSize: 18
      - type: row
        children:
          - type: button
            id: inc
            label: Increment
            onClick: increment
          - type: checkbox
            id: enabled
            label: Enabled
            checked: true
            onChange: toggled
      - type: textbox
        id: name
        placeholder: Name
        size: [120, 24]
        onSubmit: submitted
      - type: rectangle
        color: "#10203080"
        size: [10, 10]
      - type: line
        color: [255, 0, 0]
        points: [[0, 0], [1, 1]]
`

func newBackend(t *testing.T) (*engine.Backend, *headless.Toolkit) {
	t.Helper()
	tk := headless.New()
	rt := engine.NewRuntime(tk, engine.WithLogger(engine.DiscardLogger()))
	b, err := rt.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = b.Destroy() })
	return b, tk
}

func parse(t *testing.T, src string) *markup.Document {
	t.Helper()
	doc, err := markup.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestBuildCounter(t *testing.T) {
	b, tk := newBackend(t)
	var got []markup.Event
	record := func(ev markup.Event) { got = append(got, ev) }
	actions := markup.Actions{
		"increment": func(ev markup.Event) {
			record(ev)
			txt, ok := markup.Lookup[*widgets.Text](ev.Scene, "count")
			if !ok {
				t.Error("count text missing from scene")
				return
			}
			if err := txt.SetContent("1"); err != nil {
				t.Error(err)
			}
		},
		"toggled":   record,
		"submitted": record,
		"quit":      record,
	}

	scene, err := markup.Build(b, parse(t, counter), actions)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	win := mustNode(t, tk, scene.Window.Handle())
	if win.Title != "Counter" || win.Width != 320 || win.Height != 200 {
		t.Errorf("window = %q %dx%d", win.Title, win.Width, win.Height)
	}
	wantIDs := []string{"count", "enabled", "inc", "main", "name"}
	if ids := scene.IDs(); strings.Join(ids, ",") != strings.Join(wantIDs, ",") {
		t.Errorf("IDs = %v, want %v", ids, wantIDs)
	}

	main, _ := scene.Widget("main")
	n := mustNode(t, tk, main.Handle())
	if n.Kind != platform.KindColumnLayout || n.Gap != 8 || len(n.Children) != 5 {
		t.Errorf("main = %s gap=%d children=%d", n.Kind, n.Gap, len(n.Children))
	}
	if n.Margin != [4]int{4, 6, 4, 6} || !n.GrowH || !n.GrowV {
		t.Errorf("main margin=%v grow=%v,%v", n.Margin, n.GrowH, n.GrowV)
	}
	count, _ := markup.Lookup[*widgets.Text](scene, "count")
	if c := mustNode(t, tk, count.Handle()); c.Color != (color.RGBA{0xff, 0xd7, 0x00, 0xff}) || c.FontSize != 18 {
		t.Errorf("count color=%v size=%d", c.Color, c.FontSize)
	}
	name, _ := markup.Lookup[*widgets.Textbox](scene, "name")
	if tb := mustNode(t, tk, name.Handle()); tb.Width != 120 || tb.Height != 24 || tb.Placeholder != "Name" {
		t.Errorf("textbox = %dx%d %q", tb.Width, tb.Height, tb.Placeholder)
	}

	inc, _ := markup.Lookup[*widgets.Button](scene, "inc")
	enabled, _ := markup.Lookup[*widgets.Checkbox](scene, "enabled")
	tk.Click(inc.Handle())
	tk.Toggle(enabled.Handle())
	tk.Type(name.Handle(), "ada")
	tk.Submit(name.Handle())
	tk.RequestClose(scene.Window.Handle())

	if len(got) != 4 {
		t.Fatalf("events = %d, want 4", len(got))
	}
	if got[0].ID != "inc" || got[0].Handler != "onClick" || got[0].Source != widgets.Widget(inc) {
		t.Errorf("click event = %+v", got[0])
	}
	if got[1].ID != "enabled" || got[1].Checked {
		t.Errorf("toggle event = %+v, want unchecked", got[1])
	}
	if got[2].Text != "ada" || got[2].Handler != "onSubmit" {
		t.Errorf("submit event = %+v", got[2])
	}
	if got[3].Source != nil || got[3].Handler != "onClose" {
		t.Errorf("close event = %+v", got[3])
	}
	if c := mustNode(t, tk, count.Handle()); c.Content != "1" {
		t.Errorf("count = %q after increment, want 1", c.Content)
	}

	if err := scene.Destroy(); err != nil {
		t.Fatal(err)
	}
	if tk.Len() != 0 || b.Registry().Len() != 0 {
		t.Errorf("after Destroy: native=%d registry=%d", tk.Len(), b.Registry().Len())
	}
}

func TestValidationFailsBeforeNativeCalls(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown type", "root:\n  - type: slider\n", markup.ErrUnknownType},
		{"unknown action", "root:\n  - type: button\n    onClick: nope\n", markup.ErrUnknownAction},
		{"unknown window action", "window:\n  onClose: nope\n", markup.ErrUnknownAction},
		{"duplicate id", "root:\n  - type: text\n    id: a\n  - type: text\n    id: a\n", markup.ErrDuplicateID},
		{"handler on wrong type", "root:\n  - type: text\n    onClick: ok\n", markup.ErrInvalidNode},
		{"children on leaf", "root:\n  - type: button\n    children:\n      - type: text\n", markup.ErrInvalidNode},
		{"bad align", "root:\n  - type: text\n    align: sideways\n", markup.ErrInvalidNode},
		{"short line", "root:\n  - type: line\n    points: [[0, 0]]\n", markup.ErrInvalidNode},
		{"nested unknown", "root:\n  - type: column\n    children:\n      - type: row\n        children:\n          - type: knob\n", markup.ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, tk := newBackend(t)
			before := len(tk.Calls())
			_, err := markup.Build(b, parse(t, tt.src), markup.Actions{"ok": func(markup.Event) {}})
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build = %v, want %v", err, tt.want)
			}
			var ve *markup.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error %T is not a ValidationError", err)
			}
			if after := len(tk.Calls()); after != before {
				t.Errorf("invalid document made %d native calls", after-before)
			}
		})
	}
}

func TestValidationCollectsEveryProblem(t *testing.T) {
	doc := parse(t, `
root:
  - type: slider
  - type: button
    onClick: a
    onSubmit: b
`)
	err := markup.Validate(doc, nil)
	var ve *markup.ValidationError
	if !errors.As(err, &ve) || len(ve.Problems) != 3 {
		t.Fatalf("Validate = %v, want 3 problems", err)
	}
	if !strings.Contains(err.Error(), "root[1]") {
		t.Errorf("error %q does not name the node path", err)
	}
}

func TestBuildFailureLeavesNothingBehind(t *testing.T) {
	b, tk := newBackend(t)
	tk.FailNext(platform.KindButton)
	doc := parse(t, `
root:
  - type: text
    content: kept?
  - type: column
    children:
      - type: text
      - type: button
        label: fails
`)
	scene, err := markup.Build(b, doc, nil)
	if scene != nil || !errors.Is(err, errors.ErrCreationFailed) {
		t.Fatalf("Build = %v, %v; want ErrCreationFailed", scene, err)
	}
	if !strings.Contains(err.Error(), "root[1].children[1]") {
		t.Errorf("error %q does not name the failing node", err)
	}
	if tk.Len() != 0 || b.Registry().Len() != 0 || b.Bridge().Len() != 0 {
		t.Errorf("leftovers: native=%d registry=%d bridge=%d", tk.Len(), b.Registry().Len(), b.Bridge().Len())
	}
}

func TestRectangleBorderColor(t *testing.T) {
	b, tk := newBackend(t)
	doc := parse(t, `
root:
  - type: rectangle
    id: plain
    borderThickness: 2
  - type: rectangle
    id: tinted
    borderColor: red
    borderThickness: 3
`)
	scene, err := markup.Build(b, doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		id        string
		color     color.RGBA
		thickness int
	}{
		{"plain", widgets.DefaultBorderColor, 2},
		{"tinted", color.RGBA{R: 0xff, A: 0xff}, 3},
	}
	for _, tt := range tests {
		rect, ok := markup.Lookup[*widgets.Rectangle](scene, tt.id)
		if !ok {
			t.Fatalf("no rectangle %q", tt.id)
		}
		n := mustNode(t, tk, rect.Handle())
		if n.BorderColor != tt.color || n.BorderThickness != tt.thickness {
			t.Errorf("%s border = %v/%d, want %v/%d", tt.id, n.BorderColor, n.BorderThickness, tt.color, tt.thickness)
		}
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := markup.Parse([]byte("root:\n  - type: text\n    colour: red\n")); err == nil {
		t.Error("unknown key accepted")
	}
	if _, err := markup.Parse(nil); err == nil {
		t.Error("empty document accepted")
	}
}

func mustNode(t *testing.T, tk *headless.Toolkit, h platform.Handle) headless.Node {
	t.Helper()
	n, ok := tk.Node(h)
	if !ok {
		t.Fatalf("no native object %s", h)
	}
	return n
}
