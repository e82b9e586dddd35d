package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/pagescroll/internal/engine"
)

const liveBarWidth = 40

// LiveRenderer redraws a one-line progress bar on w for every frame, at most
// frameRate times per second. Final frames are always drawn.
type LiveRenderer struct {
	w         io.Writer
	frameRate int
	lastFrame time.Time
	start     float64
	distance  float64
	drawn     bool
}

func NewLiveRenderer(w io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{w: w, frameRate: frameRate}
}

func (r *LiveRenderer) OnFrame(f engine.Frame) {
	if f.Instance != nil {
		r.start = f.Instance.Progress.Start
		r.distance = f.Instance.Progress.Distance
	}
	if !f.Done && !r.lastFrame.IsZero() && f.Time.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = f.Time

	percent := 1.0
	if r.distance != 0 {
		percent = (f.Candidate - r.start) / r.distance
	}
	filled := int(percent * liveBarWidth)
	filled = min(max(filled, 0), liveBarWidth)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", liveBarWidth-filled)
	fmt.Fprintf(r.w, "\r%s %s %6.0f  %6.0fms", f.Target, bar, f.Candidate, float64(f.Elapsed)/float64(time.Millisecond))
	r.drawn = true
	if f.Done {
		fmt.Fprintln(r.w)
		r.drawn = false
	}
}

// Finish terminates a line left open by an interrupted animation.
func (r *LiveRenderer) Finish() {
	if r.drawn {
		fmt.Fprintln(r.w)
		r.drawn = false
	}
}
