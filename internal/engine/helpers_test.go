package engine

import (
	"time"

	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/scroll"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// listDocument has a 100-unit scroll container #list holding #target at
// targetTop and content of the given height.
func listDocument(targetTop, contentHeight float64) (*document.Document, *document.Element) {
	doc := document.New(80, 100)
	list := doc.Append(nil, document.NewElement("list", 0, 0, 80, 100))
	list.SetViewport(80, 100)
	doc.Append(list, document.NewElement("content", 0, 0, 80, contentHeight))
	doc.Append(list, document.NewElement("target", targetTop, 0, 80, 10))
	return doc, list
}

type finishRecorder struct {
	calls []bool
}

func (r *finishRecorder) record(completed bool) { r.calls = append(r.calls, completed) }

func drive(s *Service, clock *fakeClock, step time.Duration, maxTicks int) int {
	ticks := 0
	for s.Running("") > 0 && ticks < maxTicks {
		clock.Advance(step)
		s.Tick(clock.Now())
		ticks++
	}
	return ticks
}

func top(s scroll.Surface) float64 {
	v, _ := s.ScrollTop()
	return v
}
