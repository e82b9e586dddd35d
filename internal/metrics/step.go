package metrics

import (
	"math"

	"github.com/san-kum/pagescroll/internal/engine"
)

// MeanStep is the average distance between consecutive candidate positions.
type MeanStep struct {
	name    string
	sum     float64
	last    float64
	samples int
}

func NewMeanStep() *MeanStep {
	return &MeanStep{
		name: "mean_step",
	}
}

func (m *MeanStep) Name() string {
	return m.name
}

func (m *MeanStep) Observe(f engine.Frame) {
	if m.samples > 0 {
		m.sum += math.Abs(f.Candidate - m.last)
	}
	m.last = f.Candidate
	m.samples++
}

func (m *MeanStep) Value() float64 {
	if m.samples < 2 {
		return 0
	}
	return m.sum / float64(m.samples-1)
}

func (m *MeanStep) Reset() {
	m.sum = 0
	m.last = 0
	m.samples = 0
}

// MaxStep is the largest jump between consecutive candidates. A large value
// relative to MeanStep means the curve is uneven at the current interval.
type MaxStep struct {
	name    string
	last    float64
	maxStep float64
	samples int
}

func NewMaxStep() *MaxStep {
	return &MaxStep{name: "max_step"}
}

func (m *MaxStep) Name() string { return m.name }

func (m *MaxStep) Observe(f engine.Frame) {
	if m.samples > 0 {
		m.maxStep = math.Max(m.maxStep, math.Abs(f.Candidate-m.last))
	}
	m.last = f.Candidate
	m.samples++
}

func (m *MaxStep) Value() float64 { return m.maxStep }

func (m *MaxStep) Reset() {
	m.last = 0
	m.maxStep = 0
	m.samples = 0
}
