package metrics

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/pagescroll/internal/engine"
)

// Jitter is the share of the step signal's spectrum above a quarter of the
// frame rate. Smooth easings concentrate their energy in the lowest bins;
// a curve that alternates between long and short steps scores near 1.
type Jitter struct {
	name  string
	last  float64
	seen  bool
	steps []float64
}

func NewJitter() *Jitter {
	return &Jitter{name: "jitter"}
}

func (j *Jitter) Name() string { return j.name }

func (j *Jitter) Observe(f engine.Frame) {
	if j.seen {
		j.steps = append(j.steps, f.Candidate-j.last)
	}
	j.last = f.Candidate
	j.seen = true
}

func (j *Jitter) Value() float64 {
	n := len(j.steps)
	if n < 4 {
		return 0
	}

	mean := 0.0
	for _, s := range j.steps {
		mean += s
	}
	mean /= float64(n)

	// Hann window over the mean-removed steps.
	windowed := make([]float64, n)
	for i, s := range j.steps {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (s - mean) * w
	}
	spectrum := fft.FFTReal(windowed)

	var total, high float64
	for i := 1; i <= n/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		total += mag
		if i > n/4 {
			high += mag
		}
	}
	if total < 1e-9 {
		return 0
	}
	return high / total
}

func (j *Jitter) Reset() {
	j.last = 0
	j.seen = false
	j.steps = j.steps[:0]
}
