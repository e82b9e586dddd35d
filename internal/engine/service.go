package engine

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/san-kum/pagescroll/internal/logging"
	"github.com/san-kum/pagescroll/internal/scroll"
)

// handle marks an instance as owned by the service. Its presence in
// Progress.Timer is what makes a stop fire the finish event.
type handle struct {
	stopped bool
}

func (h *handle) Stop() { h.stopped = true }

// Service drives scroll instances. Tick advances every running instance;
// Run calls Tick on a ticker. Start, Stop, StopAll and Report may be called
// from other goroutines while Run is active: mu serialises every read and
// write the service makes on an instance, its views, metrics and observers.
// Finish events fire after mu is released, so finish callbacks may call back
// into the service. Observers and metrics run with mu held and must not.
type Service struct {
	mu            sync.Mutex
	running       []*scroll.Instance
	interval      time.Duration
	interruptKeys map[string]bool
	clock         func() time.Time

	observers []Observer
	metrics   []Metric
}

// finish is a finish event collected under mu and fired after it.
type finish struct {
	inst      *scroll.Instance
	completed bool
}

func fire(finished []finish) {
	for _, f := range finished {
		f.inst.FireEvent(f.completed)
	}
}

func New(cfg Config) *Service {
	s := &Service{
		interval:      cfg.Interval,
		clock:         cfg.Clock,
		interruptKeys: make(map[string]bool),
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	keys := cfg.InterruptKeys
	if keys == nil {
		keys = DefaultInterruptKeys
	}
	for _, k := range keys {
		s.interruptKeys[k] = true
	}
	return s
}

func (s *Service) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Service) AddMetric(m Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *Service) Interval() time.Duration { return s.interval }

// Start stops every animation in inst's namespace, resolves the target and
// begins animating towards it.
func (s *Service) Start(inst *scroll.Instance) Outcome {
	if inst == nil {
		return OutcomeInvalid
	}

	s.mu.Lock()
	finished := s.stopNamespaceLocked(inst.Namespace())
	outcome := s.beginLocked(inst)
	s.mu.Unlock()

	fire(finished)
	switch outcome {
	case OutcomeTargetNotFound:
		inst.FireEvent(false)
	case OutcomeAlreadyThere:
		inst.FireEvent(true)
	}
	return outcome
}

func (s *Service) beginLocked(inst *scroll.Instance) Outcome {
	start := 0.0
	for _, view := range inst.Views() {
		if view == nil {
			continue
		}
		// the first view that is already scrolled gives the start position
		if v, ok := inst.ScrollValue(view); ok && v != 0 {
			start = v
			break
		}
	}

	pos := inst.ResolveTargetPosition()
	target := math.Round(pos.Axis(inst.Vertical()) - inst.Offset())
	if math.IsNaN(target - start) {
		if inst.LogLevel() >= scroll.LogInfo {
			logging.Info("scrolling to %s not possible: target not found", inst.Target())
		}
		return OutcomeTargetNotFound
	}

	if math.Abs(target-start) < inst.MinScrollDistance() {
		if inst.LogLevel() >= scroll.LogInfo {
			logging.Info("already at %s", inst.Target())
		}
		return OutcomeAlreadyThere
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	if inst.Interruptible() {
		inst.AttachInterruptListeners(s)
	}

	inst.Begin(start, target, s.clock())
	inst.Progress.Timer = &handle{}
	s.running = append(s.running, inst)

	logging.Debug("scroll %s started: %.0f -> %.0f over %v", inst.Target(), start, target, inst.Duration())
	return OutcomeStarted
}

// Tick advances every running instance to now. An instance stopped by
// another goroutine is never written after its finish event fired.
func (s *Service) Tick(now time.Time) {
	s.mu.Lock()
	var finished []finish
	for _, inst := range append([]*scroll.Instance(nil), s.running...) {
		f := s.step(inst, now)
		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, o := range s.observers {
			o.OnFrame(f)
		}
		if f.Done && s.stopLocked(inst) {
			finished = append(finished, finish{inst: inst, completed: true})
		}
	}
	s.mu.Unlock()

	fire(finished)
}

func (s *Service) step(inst *scroll.Instance, now time.Time) Frame {
	p := inst.Progress
	f := Frame{
		Instance:  inst,
		Namespace: inst.Namespace(),
		Target:    inst.Target().String(),
		Time:      now,
		Elapsed:   now.Sub(p.StartTime),
	}

	if !now.Before(p.EndTime) {
		f.Candidate = p.Target
		f.Done = true
	} else {
		elapsed := float64(f.Elapsed) / float64(time.Millisecond)
		duration := float64(inst.Duration()) / float64(time.Millisecond)
		f.Candidate = math.Round(inst.Easing()(elapsed, p.Start, p.Distance, duration))
	}

	f.Accepted = inst.WritePosition(f.Candidate)
	if !f.Accepted {
		// every view is at its limit
		f.Done = true
	}
	return f
}

// Run ticks until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick(s.clock())
		}
	}
}

// Stop interrupts inst. It reports whether inst was running.
func (s *Service) Stop(inst *scroll.Instance) bool {
	if inst == nil {
		return false
	}
	s.mu.Lock()
	stopped := s.stopLocked(inst)
	s.mu.Unlock()

	if stopped {
		inst.FireEvent(false)
	}
	return stopped
}

// StopAll interrupts every running instance in namespace and returns how
// many were stopped.
func (s *Service) StopAll(namespace string) int {
	s.mu.Lock()
	finished := s.stopNamespaceLocked(namespace)
	s.mu.Unlock()

	fire(finished)
	return len(finished)
}

func (s *Service) stopNamespaceLocked(namespace string) []finish {
	var finished []finish
	for _, inst := range append([]*scroll.Instance(nil), s.running...) {
		if inst.Namespace() == namespace && s.stopLocked(inst) {
			finished = append(finished, finish{inst: inst})
		}
	}
	return finished
}

// stopLocked removes inst from the running set and detaches its listeners.
// It reports whether inst held a timer, i.e. whether its finish event is
// owed to the caller.
func (s *Service) stopLocked(inst *scroll.Instance) bool {
	for i, r := range s.running {
		if r == inst {
			s.running = append(s.running[:i], s.running[i+1:]...)
			break
		}
	}
	timer := inst.Progress.Timer
	inst.Progress.Timer = nil

	if inst.InterruptListenersAttached() {
		inst.DetachInterruptListeners()
	}
	if timer == nil {
		return false
	}
	timer.Stop()
	logging.Debug("scroll %s stopped", inst.Target())
	return true
}

func (s *Service) IsRunning(inst *scroll.Instance) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.running {
		if r == inst {
			return true
		}
	}
	return false
}

// Running counts running instances in namespace; an empty namespace counts
// all of them.
func (s *Service) Running(namespace string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if namespace == "" {
		return len(s.running)
	}
	n := 0
	for _, inst := range s.running {
		if inst.Namespace() == namespace {
			n++
		}
	}
	return n
}

// Report implements scroll.InterruptReporter. Key releases only interrupt
// for the configured keys, and mouse presses only when they land inside one
// of the instance's views.
func (s *Service) Report(ev scroll.Event, inst *scroll.Instance) {
	if !inst.Interruptible() {
		return
	}

	shouldStop := true
	switch ev.Type {
	case "keyup":
		shouldStop = s.interruptKeys[ev.Key]
	case "mousedown":
		shouldStop = insideViews(inst, ev.Target)
	}

	if shouldStop {
		if inst.LogLevel() >= scroll.LogInfo {
			logging.Info("scroll %s interrupted by %s", inst.Target(), ev.Type)
		}
		s.StopAll(inst.Namespace())
	}
}

func insideViews(inst *scroll.Instance, target scroll.Node) bool {
	for _, view := range inst.Views() {
		if view == nil {
			continue
		}
		c, ok := view.(scroll.Container)
		if !ok {
			return true
		}
		if target != nil && c.Contains(target) {
			return true
		}
	}
	return false
}
