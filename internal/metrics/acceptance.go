package metrics

import "github.com/san-kum/pagescroll/internal/engine"

// Acceptance is the fraction of writes that moved at least one view closer
// to its candidate.
type Acceptance struct {
	name     string
	rejected int
	samples  int
}

func NewAcceptance() *Acceptance {
	return &Acceptance{
		name: "acceptance",
	}
}

func (a *Acceptance) Name() string {
	return a.name
}

func (a *Acceptance) Observe(f engine.Frame) {
	a.samples++
	if !f.Accepted {
		a.rejected++
	}
}

func (a *Acceptance) Value() float64 {
	if a.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(a.rejected)/float64(a.samples)
}

func (a *Acceptance) Reset() {
	a.rejected = 0
	a.samples = 0
}

type FrameCount struct {
	n int
}

func NewFrameCount() *FrameCount { return &FrameCount{} }

func (c *FrameCount) Name() string           { return "frames" }
func (c *FrameCount) Observe(f engine.Frame) { c.n++ }
func (c *FrameCount) Value() float64         { return float64(c.n) }
func (c *FrameCount) Reset()                 { c.n = 0 }

// Default returns one of each metric.
func Default() []engine.Metric {
	return []engine.Metric{NewFrameCount(), NewMeanStep(), NewMaxStep(), NewAcceptance(), NewJitter()}
}
