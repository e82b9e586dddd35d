package scroll

import (
	"math"
	"strings"
)

// Surface is anything whose scroll offset can be read and written. A false
// ok result means the offset is undefined for that axis.
type Surface interface {
	ScrollTop() (float64, bool)
	SetScrollTop(v float64)
	ScrollLeft() (float64, bool)
	SetScrollLeft(v float64)
}

// Container is implemented by surfaces that can tell whether a node lies
// inside them.
type Container interface {
	Contains(n Node) bool
}

// Node is an element with offset geometry relative to its offset parent.
type Node interface {
	ID() string
	OffsetTop() float64
	OffsetLeft() float64
	// OffsetParent returns nil for the root.
	OffsetParent() Node
}

// Event is a user interaction delivered to an EventTarget.
type Event struct {
	Type   string
	Key    string
	Target Node
}

type Listener func(Event)

// EventTarget registers listeners. The returned func removes exactly the
// listener that was added and is safe to call more than once.
type EventTarget interface {
	AddListener(event string, l Listener) (remove func())
}

// Document is the root context targets are looked up in.
type Document interface {
	// ElementByID returns nil when no element has the id.
	ElementByID(id string) Node
	Root() Surface
	Body() Surface
	BodyParent() Surface
	// EventTarget is the top-level interactive container interrupt
	// listeners are attached to.
	EventTarget() EventTarget
}

// EasingFunc maps (currentTime, startValue, changeInValue, duration) to a
// position. Time and duration share a unit.
type EasingFunc func(t, b, c, d float64) float64

// FinishFunc receives true when an animation completed and false when it
// was interrupted or abandoned.
type FinishFunc func(completed bool)

// InterruptReporter decides what to do about user input that arrived while
// an instance had interrupt listeners attached.
type InterruptReporter interface {
	Report(ev Event, inst *Instance)
}

type ReporterFunc func(ev Event, inst *Instance)

func (f ReporterFunc) Report(ev Event, inst *Instance) { f(ev, inst) }

// Target is either a node reference or a "#id" selector.
type Target struct {
	node     Node
	selector string
}

// Element targets n. A nil n never resolves.
func Element(n Node) Target {
	if isNil(n) {
		return Target{}
	}
	return Target{node: n}
}

func Selector(s string) Target { return Target{selector: s} }

func (t Target) IsSelector() bool { return t.node == nil }

func (t Target) Node() Node { return t.node }

func (t Target) String() string {
	if t.node != nil {
		if id := t.node.ID(); id != "" {
			return "#" + id
		}
		return "<node>"
	}
	return t.selector
}

// id strips the selector's leading '#'.
func (t Target) id() string {
	return strings.TrimPrefix(t.selector, "#")
}

// Position is a target coordinate. NaN fields mean the target could not be
// resolved.
type Position struct {
	Top  float64
	Left float64
}

var unresolved = Position{Top: math.NaN(), Left: math.NaN()}

func (p Position) Valid() bool {
	return !math.IsNaN(p.Top) && !math.IsNaN(p.Left)
}

// Axis returns Top for vertical scrolling and Left otherwise.
func (p Position) Axis(vertical bool) float64 {
	if vertical {
		return p.Top
	}
	return p.Left
}
