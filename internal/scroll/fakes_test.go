package scroll

import "math"

type testSurface struct {
	name      string
	top, left float64
	maxTop    float64
	maxLeft   float64
	noLeft    bool
	ignore    bool
	writes    int
}

func (s *testSurface) ScrollTop() (float64, bool) { return s.top, true }

func (s *testSurface) SetScrollTop(v float64) {
	s.writes++
	if s.ignore {
		return
	}
	s.top = math.Round(math.Max(0, math.Min(v, s.maxTop)))
}

func (s *testSurface) ScrollLeft() (float64, bool) {
	if s.noLeft {
		return 0, false
	}
	return s.left, true
}

func (s *testSurface) SetScrollLeft(v float64) {
	s.writes++
	if s.ignore || s.noLeft {
		return
	}
	s.left = math.Round(math.Max(0, math.Min(v, s.maxLeft)))
}

type testNode struct {
	id        string
	top, left float64
	parent    *testNode
}

func (n *testNode) ID() string          { return n.id }
func (n *testNode) OffsetTop() float64  { return n.top }
func (n *testNode) OffsetLeft() float64 { return n.left }

func (n *testNode) OffsetParent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

type testTarget struct {
	listeners map[string]map[int]Listener
	next      int
}

func newTestTarget() *testTarget {
	return &testTarget{listeners: make(map[string]map[int]Listener)}
}

func (t *testTarget) AddListener(event string, l Listener) func() {
	if t.listeners[event] == nil {
		t.listeners[event] = make(map[int]Listener)
	}
	id := t.next
	t.next++
	t.listeners[event][id] = l
	return func() { delete(t.listeners[event], id) }
}

func (t *testTarget) count(event string) int { return len(t.listeners[event]) }

func (t *testTarget) total() int {
	n := 0
	for _, ls := range t.listeners {
		n += len(ls)
	}
	return n
}

func (t *testTarget) dispatch(ev Event) {
	for _, l := range t.listeners[ev.Type] {
		l(ev)
	}
}

type testDocument struct {
	nodes                  map[string]*testNode
	root, body, bodyParent *testSurface
	target                 *testTarget
}

func newTestDocument() *testDocument {
	root := &testSurface{name: "root", maxTop: 5000, maxLeft: 2000}
	return &testDocument{
		nodes:      make(map[string]*testNode),
		root:       root,
		body:       &testSurface{name: "body", maxTop: 5000, maxLeft: 2000},
		bodyParent: root,
		target:     newTestTarget(),
	}
}

func (d *testDocument) add(n *testNode) *testNode {
	d.nodes[n.id] = n
	return n
}

func (d *testDocument) ElementByID(id string) Node {
	if n, ok := d.nodes[id]; ok {
		return n
	}
	return nil
}

func (d *testDocument) Root() Surface            { return d.root }
func (d *testDocument) Body() Surface            { return d.body }
func (d *testDocument) BodyParent() Surface      { return d.bodyParent }
func (d *testDocument) EventTarget() EventTarget { return d.target }
