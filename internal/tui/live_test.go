package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/engine"
	"github.com/san-kum/pagescroll/internal/scroll"
)

func TestLiveRendererThrottles(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10)

	doc := document.New(10, 10)
	inst := scroll.New(doc, scroll.Selector("#a"), scroll.Options{})
	start := time.Unix(0, 0)
	inst.Begin(0, 100, start)

	for i := 1; i <= 10; i++ {
		r.OnFrame(engine.Frame{
			Instance:  inst,
			Target:    "#a",
			Time:      start.Add(time.Duration(i) * 10 * time.Millisecond),
			Candidate: float64(i * 10),
			Done:      i == 10,
		})
	}

	out := buf.String()
	if got := strings.Count(out, "\r"); got != 2 {
		t.Errorf("expected 2 redraws, got %d", got)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("expected final frame to end the line")
	}
	if !strings.Contains(out, strings.Repeat("█", liveBarWidth)) {
		t.Error("expected a full bar on the final frame")
	}
}

func TestLiveRendererFinish(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0)

	r.OnFrame(engine.Frame{Target: "#a", Candidate: 5})
	r.Finish()
	r.Finish()

	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected one newline, got %q", buf.String())
	}
}
