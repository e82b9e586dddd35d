package document

import (
	"errors"
	"fmt"

	"github.com/san-kum/pagescroll/internal/scroll"
)

// ErrNotFound is returned by Lookup for unknown ids.
var ErrNotFound = errors.New("document: element not found")

// Heading is a table-of-contents entry.
type Heading struct {
	ID    string
	Title string
	Level int
	Line  int
}

// Document is an in-memory page: a scrolling root (the document element)
// with a body child. Body is not a scroll container, so page-mode writes
// only stick on the root, as in a standards-mode browser.
type Document struct {
	root   *Element
	body   *Element
	events *EventTarget
	ids    map[string]*Element

	lines      []string
	headings   []Heading
	lineHeight float64
}

// New creates an empty document with a viewport of width x height.
func New(width, height float64) *Document {
	root := NewElement("", 0, 0, width, height)
	root.SetViewport(width, height)
	body := root.AppendChild(NewElement("", 0, 0, width, 0))

	return &Document{
		root:       root,
		body:       body,
		events:     NewEventTarget(),
		ids:        make(map[string]*Element),
		lineHeight: 1,
	}
}

func (d *Document) RootElement() *Element { return d.root }
func (d *Document) BodyElement() *Element { return d.body }

// Append links el under parent (the body when parent is nil) and indexes
// its id. The body grows to fit its children.
func (d *Document) Append(parent, el *Element) *Element {
	if parent == nil {
		parent = d.body
	}
	parent.AppendChild(el)
	if el.id != "" {
		d.ids[el.id] = el
	}
	if parent == d.body {
		d.body.height = d.body.ScrollHeight()
		d.body.width = d.body.ScrollWidth()
	}
	d.root.clampScroll()
	return el
}

func (d *Document) ElementByID(id string) scroll.Node {
	el, ok := d.ids[id]
	if !ok {
		return nil
	}
	return el
}

func (d *Document) Lookup(id string) (*Element, error) {
	el, ok := d.ids[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	return el, nil
}

func (d *Document) Root() scroll.Surface            { return d.root }
func (d *Document) Body() scroll.Surface            { return d.body }
func (d *Document) BodyParent() scroll.Surface      { return d.body.parent }
func (d *Document) EventTarget() scroll.EventTarget { return d.events }

func (d *Document) Events() *EventTarget { return d.events }

// Dispatch delivers ev to the body's listeners.
func (d *Document) Dispatch(ev scroll.Event) int {
	return d.events.Dispatch(ev)
}

// Resize changes the root viewport and clamps the current scroll offset.
func (d *Document) Resize(width, height float64) {
	d.root.SetViewport(width, height)
}

func (d *Document) Lines() []string     { return d.lines }
func (d *Document) Headings() []Heading { return d.headings }
func (d *Document) LineHeight() float64 { return d.lineHeight }

// HeadingIndex returns the index of the heading with id, or -1.
func (d *Document) HeadingIndex(id string) int {
	for i, h := range d.headings {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// SectionAt returns the section element covering line, or nil above the
// first heading.
func (d *Document) SectionAt(line int) *Element {
	var found *Element
	for _, h := range d.headings {
		if h.Line > line {
			break
		}
		found = d.ids["section-"+h.ID]
	}
	return found
}
