package scroll

import "time"

// Stopper is the handle of whatever timer drives an instance.
type Stopper interface {
	Stop()
}

// Progress is the animation state a driving loop populates when it starts an
// instance. Distance always equals Target - Start; use Begin to set it.
type Progress struct {
	Start     float64
	Target    float64
	Distance  float64
	StartTime time.Time
	EndTime   time.Time
	Timer     Stopper
}

// Instance is one scroll request. Configuration is fixed by New; only
// Progress and the listener registrations change afterwards.
type Instance struct {
	namespace     string
	doc           Document
	views         []Surface
	inline        bool
	target        Target
	vertical      bool
	offset        float64
	duration      time.Duration
	easing        EasingFunc
	interruptible bool
	onFinish      FinishFunc

	minScrollDistance float64
	interruptEvents   []string
	logLevel          int

	Progress Progress

	removers []func()
	attached bool
}

func (i *Instance) Namespace() string          { return i.namespace }
func (i *Instance) Document() Document         { return i.doc }
func (i *Instance) Views() []Surface           { return i.views }
func (i *Instance) Inline() bool               { return i.inline }
func (i *Instance) Target() Target             { return i.target }
func (i *Instance) Vertical() bool             { return i.vertical }
func (i *Instance) Offset() float64            { return i.offset }
func (i *Instance) Duration() time.Duration    { return i.duration }
func (i *Instance) Easing() EasingFunc         { return i.easing }
func (i *Instance) Interruptible() bool        { return i.interruptible }
func (i *Instance) MinScrollDistance() float64 { return i.minScrollDistance }
func (i *Instance) LogLevel() int              { return i.logLevel }

// InterruptEvents returns a copy of the event names listeners are attached for.
func (i *Instance) InterruptEvents() []string {
	return append([]string(nil), i.interruptEvents...)
}

func (i *Instance) InterruptListenersAttached() bool { return i.attached }

// Begin records the start of an animation. It is the only place Distance is
// computed.
func (i *Instance) Begin(start, target float64, now time.Time) {
	i.Progress.Start = start
	i.Progress.Target = target
	i.Progress.Distance = target - start
	i.Progress.StartTime = now
	i.Progress.EndTime = now.Add(i.duration)
}

// ScrollValue reads the offset of s along the instance's axis.
func (i *Instance) ScrollValue(s Surface) (float64, bool) {
	if i.vertical {
		return s.ScrollTop()
	}
	return s.ScrollLeft()
}

func (i *Instance) setScrollValue(s Surface, v float64) {
	if i.vertical {
		s.SetScrollTop(v)
		return
	}
	s.SetScrollLeft(v)
}

// FireEvent notifies the finish listener, if any. completed is false for
// interrupted or abandoned animations.
func (i *Instance) FireEvent(completed bool) {
	if i.onFinish != nil {
		i.onFinish(completed)
	}
}
