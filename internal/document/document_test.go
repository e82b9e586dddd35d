package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/pagescroll/internal/scroll"
)

const testText = `# Title

intro
## First Part

one
two
## Second {#custom}
three
## First Part
four
`

func TestParseHeadings(t *testing.T) {
	d, err := Parse(strings.NewReader(testText), ParseOptions{Width: 40, Height: 40, LineHeight: 10})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := []Heading{
		{ID: "title", Title: "Title", Level: 1, Line: 0},
		{ID: "first-part", Title: "First Part", Level: 2, Line: 3},
		{ID: "custom", Title: "Second", Level: 2, Line: 7},
		{ID: "first-part-1", Title: "First Part", Level: 2, Line: 9},
	}
	got := d.Headings()
	if len(got) != len(want) {
		t.Fatalf("expected %d headings, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if d.Lines()[7] != "## Second" {
		t.Errorf("expected explicit id stripped from line, got %q", d.Lines()[7])
	}
}

func TestParsePositions(t *testing.T) {
	d, err := Parse(strings.NewReader(testText), ParseOptions{Width: 40, Height: 40, LineHeight: 10})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	node := d.ElementByID("custom")
	if node == nil {
		t.Fatal("expected #custom")
	}
	if node.OffsetTop() != 0 {
		t.Errorf("expected heading at top of its section, got %f", node.OffsetTop())
	}
	pos := scroll.ElementPosition(node)
	if pos.Top != 70 {
		t.Errorf("expected document position 70, got %f", pos.Top)
	}
	if d.RootElement().ScrollHeight() != 110 {
		t.Errorf("expected scroll height 110, got %f", d.RootElement().ScrollHeight())
	}
	if d.RootElement().MaxScrollTop() != 70 {
		t.Errorf("expected max scroll 70, got %f", d.RootElement().MaxScrollTop())
	}
}

func TestElementByIDMissing(t *testing.T) {
	d := New(80, 24)
	if n := d.ElementByID("nope"); n != nil {
		t.Errorf("expected nil node, got %v", n)
	}
	if _, err := d.Lookup("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScrollClamping(t *testing.T) {
	d := New(80, 20)
	d.Append(nil, NewElement("a", 0, 0, 80, 100))
	root := d.RootElement()

	root.SetScrollTop(50.6)
	if top, _ := root.ScrollTop(); top != 51 {
		t.Errorf("expected rounded 51, got %f", top)
	}
	root.SetScrollTop(500)
	if top, _ := root.ScrollTop(); top != 80 {
		t.Errorf("expected clamp at 80, got %f", top)
	}
	root.SetScrollTop(-5)
	if top, _ := root.ScrollTop(); top != 0 {
		t.Errorf("expected clamp at 0, got %f", top)
	}

	body := d.BodyElement()
	body.SetScrollTop(30)
	if top, _ := body.ScrollTop(); top != 0 {
		t.Errorf("expected body to ignore writes, got %f", top)
	}
}

func TestResizeClampsOffset(t *testing.T) {
	d := New(80, 20)
	d.Append(nil, NewElement("a", 0, 0, 80, 100))
	d.RootElement().SetScrollTop(80)

	d.Resize(80, 60)
	if top, _ := d.RootElement().ScrollTop(); top != 40 {
		t.Errorf("expected offset clamped to 40, got %f", top)
	}
}

func TestContains(t *testing.T) {
	d := New(80, 20)
	outer := d.Append(nil, NewElement("outer", 0, 0, 80, 50))
	inner := d.Append(outer, NewElement("inner", 5, 0, 10, 5))
	other := d.Append(nil, NewElement("other", 50, 0, 80, 50))

	if !outer.Contains(inner) || !outer.Contains(outer) {
		t.Error("expected outer to contain itself and inner")
	}
	if outer.Contains(other) {
		t.Error("expected outer not to contain sibling")
	}
	if !d.RootElement().Contains(inner) {
		t.Error("expected root to contain everything")
	}
}

func TestEventTargetDispatch(t *testing.T) {
	target := NewEventTarget()
	var order []int

	removeA := target.AddListener("wheel", func(scroll.Event) { order = append(order, 1) })
	target.AddListener("wheel", func(scroll.Event) { order = append(order, 2) })
	target.AddListener("keyup", func(scroll.Event) { order = append(order, 3) })

	if n := target.Dispatch(scroll.Event{Type: "wheel"}); n != 2 {
		t.Errorf("expected 2 listeners called, got %d", n)
	}
	removeA()
	removeA()
	target.Dispatch(scroll.Event{Type: "wheel"})

	want := []int{1, 2, 2}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
		}
	}
	if target.TotalListeners() != 2 {
		t.Errorf("expected 2 listeners left, got %d", target.TotalListeners())
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Getting Started", "getting-started"},
		{"Résumé of Keys", "resume-of-keys"},
		{"  Trailing -- dashes -- ", "trailing-dashes"},
		{"C++ & Go!", "c-go"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSample(t *testing.T) {
	d := Sample(80, 24)
	if len(d.Headings()) < 5 {
		t.Fatalf("expected sample headings, got %d", len(d.Headings()))
	}
	if d.ElementByID("resume-of-keys") == nil {
		t.Error("expected folded accent slug in sample")
	}
	if d.ElementByID("bottom") == nil {
		t.Error("expected explicit #bottom anchor")
	}
	if d.RootElement().MaxScrollTop() <= 0 {
		t.Error("expected sample to be scrollable")
	}
}

func TestSectionAt(t *testing.T) {
	d, err := Parse(strings.NewReader("intro\n# One\na\nb\n# Two\nc\n"), ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line int
		want string
	}{
		{0, ""},
		{1, "section-one"},
		{3, "section-one"},
		{4, "section-two"},
		{9, "section-two"},
	}
	for _, tt := range tests {
		got := d.SectionAt(tt.line)
		id := ""
		if got != nil {
			id = got.ID()
		}
		if id != tt.want {
			t.Errorf("line %d: expected %q, got %q", tt.line, tt.want, id)
		}
	}
}

func TestParseLongLines(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	text := "# Start\r\n" + long + "\r\n## End"

	d, err := Parse(strings.NewReader(text), ParseOptions{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	lines := d.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if len(lines[1]) != len(long) {
		t.Errorf("expected the long line intact, got %d bytes", len(lines[1]))
	}
	if lines[0] != "# Start" || lines[2] != "## End" {
		t.Errorf("expected carriage returns dropped and final line kept, got %q / %q", lines[0], lines[2])
	}
	if i := d.HeadingIndex("end"); i != 1 || d.Headings()[i].Line != 2 {
		t.Errorf("expected #end on line 2, got index %d", i)
	}
}

func TestParseEmpty(t *testing.T) {
	d, err := Parse(strings.NewReader(""), ParseOptions{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(d.Lines()) != 0 || len(d.Headings()) != 0 {
		t.Errorf("expected an empty document, got %d lines", len(d.Lines()))
	}
}
