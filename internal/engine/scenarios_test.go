package engine_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/engine"
	"github.com/san-kum/pagescroll/internal/scroll"
)

var _ = Describe("Service", func() {
	var (
		doc      *document.Document
		list     *document.Element
		now      time.Time
		svc      *engine.Service
		trace    *engine.Trace
		finished []bool
	)

	advance := func(d time.Duration) {
		now = now.Add(d)
		svc.Tick(now)
	}

	runToEnd := func() {
		for i := 0; i < 1000 && svc.Running("") > 0; i++ {
			advance(16 * time.Millisecond)
		}
	}

	newInstance := func(opts scroll.Options) *scroll.Instance {
		opts.Views = []scroll.Surface{list}
		opts.Offset = scroll.Float(50)
		opts.Duration = 500 * time.Millisecond
		opts.OnFinish = func(ok bool) { finished = append(finished, ok) }
		return scroll.New(doc, scroll.Selector("#target"), opts)
	}

	BeforeEach(func() {
		doc = document.New(80, 100)
		list = doc.Append(nil, document.NewElement("list", 0, 0, 80, 100))
		list.SetViewport(80, 100)
		doc.Append(list, document.NewElement("content", 0, 0, 80, 2000))
		doc.Append(list, document.NewElement("target", 800, 0, 80, 10))

		now = time.Unix(1700000000, 0)
		svc = engine.New(engine.Config{Clock: func() time.Time { return now }})
		trace = engine.NewTrace(nil)
		svc.AddObserver(trace)
		finished = nil
	})

	Context("with an offset target inside a scroll container", func() {
		It("runs to the offset target and finishes once", func() {
			inst := newInstance(scroll.Options{})

			Expect(svc.Start(inst)).To(Equal(engine.OutcomeStarted))
			Expect(inst.Progress.Start).To(Equal(0.0))
			Expect(inst.Progress.Target).To(Equal(750.0))
			Expect(inst.Progress.Distance).To(Equal(750.0))
			Expect(inst.Progress.EndTime.Sub(inst.Progress.StartTime)).To(Equal(500 * time.Millisecond))

			runToEnd()

			top, _ := list.ScrollTop()
			Expect(top).To(Equal(750.0))
			Expect(finished).To(Equal([]bool{true}))
			Expect(inst.InterruptListenersAttached()).To(BeFalse())
			Expect(trace.Result().Completed).To(BeTrue())
		})

		It("stops on a wheel event and detaches its listeners", func() {
			inst := newInstance(scroll.Options{})
			svc.Start(inst)
			Expect(doc.Events().TotalListeners()).To(Equal(len(scroll.DefaultInterruptEvents)))

			advance(100 * time.Millisecond)
			advance(100 * time.Millisecond)

			Expect(doc.Dispatch(scroll.Event{Type: "wheel"})).To(Equal(1))
			Expect(finished).To(Equal([]bool{false}))
			Expect(svc.IsRunning(inst)).To(BeFalse())
			Expect(inst.InterruptListenersAttached()).To(BeFalse())
			Expect(doc.Events().TotalListeners()).To(BeZero())

			top, _ := list.ScrollTop()
			Expect(top).To(BeNumerically(">", 0))
			Expect(top).To(BeNumerically("<", 750))

			runToEnd()
			Expect(finished).To(HaveLen(1))
			Expect(trace.Result().Completed).To(BeFalse())
		})

		It("ignores user input when not interruptible", func() {
			inst := newInstance(scroll.Options{Interruptible: scroll.Bool(false)})
			svc.Start(inst)

			Expect(doc.Events().TotalListeners()).To(BeZero())
			Expect(doc.Dispatch(scroll.Event{Type: "wheel"})).To(BeZero())

			runToEnd()

			top, _ := list.ScrollTop()
			Expect(top).To(Equal(750.0))
			Expect(finished).To(Equal([]bool{true}))
		})

		It("re-arms listeners when restarted in the same namespace", func() {
			first := newInstance(scroll.Options{})
			second := newInstance(scroll.Options{})

			svc.Start(first)
			svc.Start(second)

			Expect(finished).To(Equal([]bool{false}))
			Expect(doc.Events().TotalListeners()).To(Equal(len(scroll.DefaultInterruptEvents)))

			runToEnd()
			Expect(finished).To(Equal([]bool{false, true}))
		})
	})

	Context("with a target that does not exist", func() {
		It("finishes with false and never writes", func() {
			inst := scroll.New(doc, scroll.Selector("#nowhere"), scroll.Options{
				Views:    []scroll.Surface{list},
				OnFinish: func(ok bool) { finished = append(finished, ok) },
			})

			Expect(inst.ResolveTargetPosition().Valid()).To(BeFalse())
			Expect(svc.Start(inst)).To(Equal(engine.OutcomeTargetNotFound))
			Expect(finished).To(Equal([]bool{false}))
			Expect(svc.Running("")).To(BeZero())
			Expect(trace.Frames()).To(BeEmpty())
		})
	})

	Context("in page mode", func() {
		It("scrolls the document root to a heading of a parsed page", func() {
			page := document.Sample(80, 24)
			inst := scroll.Page(page, scroll.Selector("#bottom"), "")
			Expect(inst.Views()).To(HaveLen(3))

			want := math.Min(inst.ResolveTargetPosition().Top, page.RootElement().MaxScrollTop())
			Expect(svc.Start(inst)).To(Equal(engine.OutcomeStarted))
			runToEnd()

			top, _ := page.RootElement().ScrollTop()
			Expect(top).To(Equal(want))
		})
	})
})
