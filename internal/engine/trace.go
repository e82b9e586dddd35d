package engine

import "sync"

// Trace records the frames of one instance, or of every instance when
// created with a nil filter.
type Trace struct {
	mu     sync.Mutex
	filter func(Frame) bool
	frames []Frame
}

func NewTrace(filter func(Frame) bool) *Trace {
	return &Trace{filter: filter}
}

func (t *Trace) OnFrame(f Frame) {
	if t.filter != nil && !t.filter(f) {
		return
	}
	t.mu.Lock()
	t.frames = append(t.frames, f)
	t.mu.Unlock()
}

func (t *Trace) Frames() []Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Frame(nil), t.frames...)
}

// Result summarises the recorded frames. An interrupted animation never
// records a Done frame.
func (t *Trace) Result() Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Result{Frames: len(t.frames)}
	if len(t.frames) > 0 {
		last := t.frames[len(t.frames)-1]
		r.Completed = last.Done
		r.Exhausted = last.Done && !last.Accepted
		r.Final = last.Candidate
	}
	return r
}

func (t *Trace) Reset() {
	t.mu.Lock()
	t.frames = nil
	t.mu.Unlock()
}
