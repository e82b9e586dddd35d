package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/scroll"
)

func newSurface(lines int) (*ViewportSurface, *viewport.Model, *document.Document) {
	doc := document.New(20, 5)
	vp := viewport.New(20, 5)
	vp.SetContent(strings.TrimSuffix(strings.Repeat("x\n", lines), "\n"))
	return NewViewportSurface(&vp, doc), &vp, doc
}

func TestViewportSurfaceClamps(t *testing.T) {
	s, vp, _ := newSurface(30)

	s.SetScrollTop(7.6)
	if vp.YOffset != 8 {
		t.Errorf("expected offset 8, got %d", vp.YOffset)
	}
	s.SetScrollTop(100)
	if got, ok := s.ScrollTop(); !ok || got != 25 {
		t.Errorf("expected clamped offset 25, got %f", got)
	}
	s.SetScrollTop(-3)
	if vp.YOffset != 0 {
		t.Errorf("expected offset 0, got %d", vp.YOffset)
	}
}

func TestViewportSurfaceHorizontalUndefined(t *testing.T) {
	s, _, _ := newSurface(30)
	s.SetScrollLeft(10)
	if _, ok := s.ScrollLeft(); ok {
		t.Error("expected horizontal reads to be undefined")
	}
}

func TestViewportSurfaceContains(t *testing.T) {
	s, _, doc := newSurface(30)
	inside := doc.Append(nil, document.NewElement("inside", 0, 0, 1, 1))
	stray := document.NewElement("stray", 0, 0, 1, 1)

	if !s.Contains(inside) {
		t.Error("expected document element to be inside")
	}
	if s.Contains(stray) || s.Contains(nil) {
		t.Error("expected detached and nil nodes to be outside")
	}
}

func TestViewportSurfaceExhausts(t *testing.T) {
	s, _, doc := newSurface(30)
	inst := scroll.New(doc, scroll.Selector("#none"), scroll.Options{Views: []scroll.Surface{s}})

	if !inst.WritePosition(100) {
		t.Error("expected first write to move closer")
	}
	if inst.WritePosition(100) {
		t.Error("expected write at the limit to be rejected")
	}
}
