package engine

import (
	"time"

	"github.com/san-kum/pagescroll/internal/scroll"
)

// Outcome says what Start did with an instance.
type Outcome int

const (
	// OutcomeStarted means the instance is animating.
	OutcomeStarted Outcome = iota
	// OutcomeAlreadyThere means the target was within the minimum scroll
	// distance; the finish event fired with true.
	OutcomeAlreadyThere
	// OutcomeTargetNotFound means the target did not resolve; the finish
	// event fired with false.
	OutcomeTargetNotFound
	// OutcomeInvalid means the instance was nil.
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeAlreadyThere:
		return "already-there"
	case OutcomeTargetNotFound:
		return "target-not-found"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Frame is one position write made while driving an instance.
type Frame struct {
	Instance  *scroll.Instance `json:"-"`
	Namespace string           `json:"namespace"`
	Target    string           `json:"target"`
	Time      time.Time        `json:"time"`
	Elapsed   time.Duration    `json:"elapsed"`
	Candidate float64          `json:"candidate"`
	Accepted  bool             `json:"accepted"`
	Done      bool             `json:"done"`
}

type Observer interface {
	OnFrame(f Frame)
}

type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Config tunes a Service. Zero values take the defaults below.
type Config struct {
	// Interval is the Run cadence.
	Interval time.Duration
	// InterruptKeys are the key names that stop an interruptible animation
	// on keyup. Other keys are ignored.
	InterruptKeys []string
	// Clock returns the current time; tests substitute a fake.
	Clock func() time.Time
}

const DefaultInterval = 10 * time.Millisecond

// DefaultInterruptKeys are page up, page down, end, home, up and down.
var DefaultInterruptKeys = []string{"pgup", "pgdown", "end", "home", "up", "down"}

// Result summarises a finished or stopped animation.
type Result struct {
	Completed bool
	// Exhausted means the last write was rejected by every view.
	Exhausted bool
	Frames    int
	Final     float64
}
