package scroll

import "time"

const (
	DefaultNamespace         = "default"
	DefaultDuration          = 1250 * time.Millisecond
	DefaultMinScrollDistance = 2.0
	DefaultLogLevel          = 1
)

// Log levels understood by instances and the engine. Higher is chattier.
const (
	LogSilent  = 0
	LogErrors  = 1
	LogInfo    = 2
	LogVerbose = 5
)

// DefaultInterruptEvents are the event names that cancel an interruptible
// animation.
var DefaultInterruptEvents = []string{"mousedown", "wheel", "DOMMouseScroll", "mousewheel", "keyup", "touchmove"}

// Linear is the default easing: c*t/d + b, with t clamped to [0, d].
func Linear(t, b, c, d float64) float64 {
	if d <= 0 || t >= d {
		return b + c
	}
	if t <= 0 {
		return b
	}
	return c*t/d + b
}

// Defaults is an immutable snapshot of process-wide configuration. New reads
// it once per instance, so changing a Defaults value after construction
// never affects running animations.
type Defaults struct {
	Namespace         string
	Vertical          bool
	Offset            float64
	Duration          time.Duration
	Easing            EasingFunc
	Interruptible     bool
	MinScrollDistance float64
	InterruptEvents   []string
	LogLevel          int
}

func DefaultDefaults() *Defaults {
	return &Defaults{
		Namespace:         DefaultNamespace,
		Vertical:          true,
		Offset:            0,
		Duration:          DefaultDuration,
		Easing:            Linear,
		Interruptible:     true,
		MinScrollDistance: DefaultMinScrollDistance,
		InterruptEvents:   append([]string(nil), DefaultInterruptEvents...),
		LogLevel:          DefaultLogLevel,
	}
}

func (d *Defaults) Clone() *Defaults {
	c := *d
	c.InterruptEvents = append([]string(nil), d.InterruptEvents...)
	return &c
}
