package document

import (
	"math"

	"github.com/san-kum/pagescroll/internal/scroll"
)

// Element is a box positioned relative to its offset parent. Elements with a
// viewport are scroll containers; all others report a scroll offset of 0 and
// ignore writes, like a non-scrolling block in a browser.
type Element struct {
	id                    string
	offsetTop, offsetLeft float64
	width, height         float64

	parent   *Element
	children []*Element

	scrollable                bool
	clientWidth, clientHeight float64
	scrollTop, scrollLeft     float64
}

func NewElement(id string, top, left, width, height float64) *Element {
	return &Element{
		id:         id,
		offsetTop:  top,
		offsetLeft: left,
		width:      width,
		height:     height,
	}
}

func (e *Element) ID() string           { return e.id }
func (e *Element) OffsetTop() float64   { return e.offsetTop }
func (e *Element) OffsetLeft() float64  { return e.offsetLeft }
func (e *Element) Width() float64       { return e.width }
func (e *Element) Height() float64      { return e.height }
func (e *Element) Parent() *Element     { return e.parent }
func (e *Element) Children() []*Element { return e.children }

func (e *Element) OffsetParent() scroll.Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// AppendChild links child under e.
func (e *Element) AppendChild(child *Element) *Element {
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// SetViewport turns e into a scroll container showing width x height of its
// content.
func (e *Element) SetViewport(width, height float64) {
	e.scrollable = true
	e.clientWidth = width
	e.clientHeight = height
	e.clampScroll()
}

func (e *Element) Scrollable() bool      { return e.scrollable }
func (e *Element) ClientHeight() float64 { return e.clientHeight }
func (e *Element) ClientWidth() float64  { return e.clientWidth }

// ScrollHeight is the height of e's content, never less than its viewport.
func (e *Element) ScrollHeight() float64 {
	h := math.Max(e.height, e.clientHeight)
	for _, c := range e.children {
		h = math.Max(h, c.offsetTop+c.height)
	}
	return h
}

func (e *Element) ScrollWidth() float64 {
	w := math.Max(e.width, e.clientWidth)
	for _, c := range e.children {
		w = math.Max(w, c.offsetLeft+c.width)
	}
	return w
}

func (e *Element) MaxScrollTop() float64 {
	if !e.scrollable {
		return 0
	}
	return math.Max(0, e.ScrollHeight()-e.clientHeight)
}

func (e *Element) MaxScrollLeft() float64 {
	if !e.scrollable {
		return 0
	}
	return math.Max(0, e.ScrollWidth()-e.clientWidth)
}

func (e *Element) ScrollTop() (float64, bool)  { return e.scrollTop, true }
func (e *Element) ScrollLeft() (float64, bool) { return e.scrollLeft, true }

// SetScrollTop clamps v to the scrollable range and rounds it to a whole
// pixel.
func (e *Element) SetScrollTop(v float64) {
	e.scrollTop = clamp(math.Round(v), 0, e.MaxScrollTop())
}

func (e *Element) SetScrollLeft(v float64) {
	e.scrollLeft = clamp(math.Round(v), 0, e.MaxScrollLeft())
}

func (e *Element) clampScroll() {
	e.scrollTop = clamp(e.scrollTop, 0, e.MaxScrollTop())
	e.scrollLeft = clamp(e.scrollLeft, 0, e.MaxScrollLeft())
}

// Contains reports whether n is e or one of its descendants.
func (e *Element) Contains(n scroll.Node) bool {
	other, ok := n.(*Element)
	if !ok || other == nil {
		return false
	}
	for cur := other; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
