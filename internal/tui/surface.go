package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/scroll"
)

// ViewportSurface exposes a bubbles viewport as a scroll surface. Offsets
// are terminal rows; the viewport clamps writes to its content.
type ViewportSurface struct {
	vp   *viewport.Model
	root *document.Element
}

func NewViewportSurface(vp *viewport.Model, doc *document.Document) *ViewportSurface {
	return &ViewportSurface{vp: vp, root: doc.RootElement()}
}

func (s *ViewportSurface) ScrollTop() (float64, bool) {
	return float64(s.vp.YOffset), true
}

func (s *ViewportSurface) SetScrollTop(v float64) {
	s.vp.SetYOffset(int(math.Round(v)))
}

// ScrollLeft is undefined: the viewport never scrolls sideways.
func (s *ViewportSurface) ScrollLeft() (float64, bool) { return 0, false }

func (s *ViewportSurface) SetScrollLeft(float64) {}

// Contains reports whether n belongs to the document shown in the viewport.
func (s *ViewportSurface) Contains(n scroll.Node) bool {
	return n != nil && s.root.Contains(n)
}
