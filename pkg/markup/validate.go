package markup

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hyprbind/hyprbind/pkg/platform"
)

var (
	// ErrUnknownType is returned for a node type Build cannot make.
	ErrUnknownType = stderrors.New("unknown node type")
	// ErrUnknownAction is returned for a handler naming no entry of Actions.
	ErrUnknownAction = stderrors.New("unknown action")
	// ErrDuplicateID is returned when two nodes share an id.
	ErrDuplicateID = stderrors.New("duplicate id")
	// ErrInvalidNode is returned for keys that do not apply to a node type
	// and for malformed values.
	ErrInvalidNode = stderrors.New("invalid node")
)

// ValidationError collects every problem found in a document.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "invalid layout: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error { return e.Problems }

// handlers lists the handler keys each node type accepts.
var handlers = map[string][]string{
	TypeColumn:    nil,
	TypeRow:       nil,
	TypeText:      nil,
	TypeRectangle: nil,
	TypeLine:      nil,
	TypeButton:    {"onClick", "onRightClick"},
	TypeCheckbox:  {"onChange"},
	TypeTextbox:   {"onChange", "onSubmit"},
	TypeScroll:    {"onScroll"},
}

func containerType(t string) bool {
	return t == TypeColumn || t == TypeRow || t == TypeScroll
}

// Validate checks d against actions without touching a toolkit. It reports
// unknown node types, unknown actions, duplicate ids, handlers and children
// on types that cannot take them, and malformed values.
func Validate(d *Document, actions Actions) error {
	var problems []error
	add := func(path string, err error, format string, args ...any) {
		problems = append(problems, fmt.Errorf("%s: %w: %s", path, err, fmt.Sprintf(format, args...)))
	}
	checkAction := func(path, key, name string) {
		if name == "" {
			return
		}
		if _, ok := actions[name]; !ok {
			add(path, ErrUnknownAction, "%s: %q", key, name)
		}
	}

	checkAction("window", "onClose", d.Window.OnClose)
	if d.Window.Size.Width < 0 || d.Window.Size.Height < 0 {
		add("window", ErrInvalidNode, "negative size")
	}

	ids := make(map[string]string)
	d.Walk(func(path string, n *Node) bool {
		accepted, known := handlers[n.Type]
		if !known {
			add(path, ErrUnknownType, "%q", n.Type)
			return false
		}
		if n.ID != "" {
			if prev, dup := ids[n.ID]; dup {
				add(path, ErrDuplicateID, "%q also used at %s", n.ID, prev)
			} else {
				ids[n.ID] = path
			}
		}
		for _, h := range n.handlerKeys() {
			if h.action == "" {
				continue
			}
			if !slices.Contains(accepted, h.key) {
				add(path, ErrInvalidNode, "%s does not take %s", n.Type, h.key)
				continue
			}
			checkAction(path, h.key, h.action)
		}
		if len(n.Children) > 0 && !containerType(n.Type) {
			add(path, ErrInvalidNode, "%s cannot have children", n.Type)
		}
		if n.Align != "" {
			if _, ok := platform.ParseAlign(n.Align); !ok {
				add(path, ErrInvalidNode, "unknown align %q", n.Align)
			}
		}
		if n.TextAlign != "" {
			if n.Type != TypeText {
				add(path, ErrInvalidNode, "%s does not take textAlign", n.Type)
			} else if _, ok := platform.ParseAlign(n.TextAlign); !ok {
				add(path, ErrInvalidNode, "unknown textAlign %q", n.TextAlign)
			}
		}
		if n.Type == TypeLine && len(n.Points) < 2 {
			add(path, ErrInvalidNode, "line needs at least 2 points")
		}
		if n.Size.Width < 0 || n.Size.Height < 0 {
			add(path, ErrInvalidNode, "negative size")
		}
		return true
	})

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

type handlerKey struct {
	key, action string
}

func (n *Node) handlerKeys() []handlerKey {
	return []handlerKey{
		{"onClick", n.OnClick},
		{"onRightClick", n.OnRightClick},
		{"onChange", n.OnChange},
		{"onSubmit", n.OnSubmit},
		{"onScroll", n.OnScroll},
	}
}
