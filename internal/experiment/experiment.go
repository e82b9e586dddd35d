package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/engine"
	"github.com/san-kum/pagescroll/internal/scroll"
)

// ErrRunaway is returned when an animation is still running after
// MaxFrames ticks.
var ErrRunaway = errors.New("experiment: animation did not finish")

const DefaultMaxFrames = 100000

// Config describes one headless scroll on a virtual clock.
type Config struct {
	Target   string
	Defaults *scroll.Defaults
	// View, when set, is scrolled inline instead of the document's root
	// containers.
	View          scroll.Surface
	Interval      time.Duration
	InterruptKeys []string
	// InterruptAt, when positive, dispatches Interrupt once that much
	// virtual time has passed.
	InterruptAt time.Duration
	Interrupt   scroll.Event
	MaxFrames   int
	// WrapFinish, when set, wraps the finish callback, e.g. to publish it.
	WrapFinish func(next scroll.FinishFunc) scroll.FinishFunc
}

type Result struct {
	engine.Result
	Outcome  engine.Outcome
	Start    float64
	Target   float64
	Interval time.Duration
	Finished []bool
	Frames   []engine.Frame
	Metrics  map[string]float64
	Instance *scroll.Instance
}

type Experiment struct {
	cfg     Config
	doc     *document.Document
	now     time.Time
	svc     *engine.Service
	trace   *engine.Trace
	metrics []engine.Metric
}

func New(doc *document.Document, cfg Config) *Experiment {
	if cfg.Interval <= 0 {
		cfg.Interval = engine.DefaultInterval
	}
	if cfg.MaxFrames <= 0 {
		cfg.MaxFrames = DefaultMaxFrames
	}
	e := &Experiment{
		cfg:   cfg,
		doc:   doc,
		now:   time.Unix(0, 0).UTC(),
		trace: engine.NewTrace(nil),
	}
	e.svc = engine.New(engine.Config{
		Interval:      cfg.Interval,
		InterruptKeys: cfg.InterruptKeys,
		Clock:         func() time.Time { return e.now },
	})
	e.svc.AddObserver(e.trace)
	return e
}

func (e *Experiment) Setup(metrics []engine.Metric, observers ...engine.Observer) {
	for _, m := range metrics {
		e.metrics = append(e.metrics, m)
		e.svc.AddMetric(m)
	}
	for _, o := range observers {
		e.svc.AddObserver(o)
	}
}

// Service returns the underlying engine for adding observers.
func (e *Experiment) Service() *engine.Service {
	return e.svc
}

// Run animates to the configured target, advancing the virtual clock by
// one interval per tick until the animation ends.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	res := &Result{Interval: e.cfg.Interval, Metrics: make(map[string]float64)}

	var onFinish scroll.FinishFunc = func(completed bool) { res.Finished = append(res.Finished, completed) }
	if e.cfg.WrapFinish != nil {
		onFinish = e.cfg.WrapFinish(onFinish)
	}
	opts := scroll.Options{
		Defaults: e.cfg.Defaults,
		OnFinish: onFinish,
	}
	if e.cfg.View != nil {
		opts.Views = []scroll.Surface{e.cfg.View}
	}
	inst := scroll.New(e.doc, scroll.Selector(e.cfg.Target), opts)
	res.Instance = inst

	e.trace.Reset()
	res.Outcome = e.svc.Start(inst)
	res.Start = inst.Progress.Start
	res.Target = inst.Progress.Target

	begin := e.now
	interrupted := false
	for frames := 0; e.svc.IsRunning(inst); frames++ {
		if err := ctx.Err(); err != nil {
			e.svc.Stop(inst)
			return nil, err
		}
		if frames >= e.cfg.MaxFrames {
			e.svc.Stop(inst)
			return nil, fmt.Errorf("%w after %d frames", ErrRunaway, frames)
		}

		e.now = e.now.Add(e.cfg.Interval)
		if e.cfg.InterruptAt > 0 && !interrupted && e.now.Sub(begin) >= e.cfg.InterruptAt {
			interrupted = true
			e.doc.Dispatch(e.cfg.Interrupt)
			if !e.svc.IsRunning(inst) {
				break
			}
		}
		e.svc.Tick(e.now)
	}

	res.Result = e.trace.Result()
	res.Frames = e.trace.Frames()
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
