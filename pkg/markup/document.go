// Package markup builds windows from YAML layout documents.
//
// A document names one window and the tree placed in its root element:
//
//	window:
//	  title: Counter
//	  size: [320, 200]
//	  onClose: quit
//	root:
//	  - type: column
//	    gap: 8
//	    children:
//	      - type: text
//	        id: count
//	        content: "0"
//	        color: gold
//	      - type: button
//	        label: Increment
//	        onClick: increment
//
// Handler keys name entries of an Actions map supplied to Build. The whole
// document is validated against the map before any native object is made.
package markup

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Node types.
const (
	TypeColumn    = "column"
	TypeRow       = "row"
	TypeText      = "text"
	TypeButton    = "button"
	TypeRectangle = "rectangle"
	TypeLine      = "line"
	TypeCheckbox  = "checkbox"
	TypeTextbox   = "textbox"
	TypeScroll    = "scroll"
)

// Document is a parsed layout file.
type Document struct {
	Window Window `yaml:"window"`
	Root   []Node `yaml:"root"`
}

// Window describes the top-level window.
type Window struct {
	Title   string `yaml:"title"`
	Class   string `yaml:"class"`
	Size    Size   `yaml:"size"`
	MinSize Size   `yaml:"minSize"`
	MaxSize Size   `yaml:"maxSize"`
	OnClose string `yaml:"onClose"`
}

// Node is one widget in the tree. Keys that do not apply to Type are
// rejected by Validate.
type Node struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id"`

	Margin Margin `yaml:"margin"`
	Grow   Grow   `yaml:"grow"`
	Align  string `yaml:"align"`
	Size   Size   `yaml:"size"`

	// column, row
	Gap int `yaml:"gap"`
	// text
	Content    string   `yaml:"content"`
	FontFamily string   `yaml:"fontFamily"`
	Alpha      *float64 `yaml:"alpha"`
	TextAlign  string   `yaml:"textAlign"`
	// text, button
	FontSize int `yaml:"fontSize"`
	// button, checkbox
	Label string `yaml:"label"`
	// button
	NoBorder     bool `yaml:"noBorder"`
	NoBackground bool `yaml:"noBackground"`
	// text, rectangle, line
	Color Color `yaml:"color"`
	// rectangle
	BorderColor     Color `yaml:"borderColor"`
	BorderThickness int   `yaml:"borderThickness"`
	Rounding        int   `yaml:"rounding"`
	// line
	Thickness int          `yaml:"thickness"`
	Points    [][2]float64 `yaml:"points"`
	// checkbox
	Checked bool `yaml:"checked"`
	// textbox
	Placeholder string `yaml:"placeholder"`
	Text        string `yaml:"text"`
	// scroll
	ScrollX         *bool `yaml:"scrollX"`
	ScrollY         *bool `yaml:"scrollY"`
	BlockUserScroll bool  `yaml:"blockUserScroll"`

	OnClick      string `yaml:"onClick"`
	OnRightClick string `yaml:"onRightClick"`
	OnChange     string `yaml:"onChange"`
	OnSubmit     string `yaml:"onSubmit"`
	OnScroll     string `yaml:"onScroll"`

	Children []Node `yaml:"children"`
}

// Parse decodes a document. Unknown keys are an error.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one document from r.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse layout: empty document")
		}
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Walk calls fn for every node in depth-first order with its path, e.g.
// "root[0].children[2]". Returning false skips the node's children.
func (d *Document) Walk(fn func(path string, n *Node) bool) {
	for i := range d.Root {
		walk(fmt.Sprintf("root[%d]", i), &d.Root[i], fn)
	}
}

func walk(path string, n *Node, fn func(string, *Node) bool) {
	if !fn(path, n) {
		return
	}
	for i := range n.Children {
		walk(fmt.Sprintf("%s.children[%d]", path, i), &n.Children[i], fn)
	}
}
