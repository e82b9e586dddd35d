package automation

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pagescroll/internal/config"
	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/easing"
	"github.com/san-kum/pagescroll/internal/engine"
	"github.com/san-kum/pagescroll/internal/experiment"
	"github.com/san-kum/pagescroll/internal/logging"
	"github.com/san-kum/pagescroll/internal/scroll"
)

// Scenario is a scripted sequence of scrolls over one document. Each step
// starts where the previous one left the page.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Document    string `yaml:"document"`
	Steps       []Step `yaml:"steps"`
}

// Step overrides the base configuration for one scroll. Zero values keep
// the base setting.
type Step struct {
	Target        string   `yaml:"target"`
	Easing        string   `yaml:"easing"`
	DurationMs    int      `yaml:"duration_ms"`
	Offset        *float64 `yaml:"offset"`
	Horizontal    *bool    `yaml:"horizontal"`
	Interruptible *bool    `yaml:"interruptible"`
	// InterruptAtMs dispatches Interrupt after that much animation time.
	InterruptAtMs int    `yaml:"interrupt_at_ms"`
	Interrupt     string `yaml:"interrupt"`
}

// StepResult pairs a step with what happened.
type StepResult struct {
	Step   Step
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	for i, step := range scenario.Steps {
		if step.Target == "" {
			return nil, fmt.Errorf("scenario %s: step %d has no target", path, i+1)
		}
	}

	return &scenario, nil
}

// ParseEvent reads "type" or "type:key", e.g. "wheel" or "keyup:pgdown".
func ParseEvent(s string) scroll.Event {
	kind, key, _ := strings.Cut(s, ":")
	return scroll.Event{Type: kind, Key: key}
}

// apply returns a copy of base with the step's overrides.
func (s Step) apply(base *config.Config) *config.Config {
	cfg := base.Clone()
	if s.Easing != "" {
		cfg.Scroll.Easing = s.Easing
	}
	if s.DurationMs > 0 {
		cfg.Scroll.DurationMs = s.DurationMs
	}
	if s.Offset != nil {
		cfg.Scroll.Offset = *s.Offset
	}
	if s.Horizontal != nil {
		cfg.Scroll.Horizontal = *s.Horizontal
	}
	if s.Interruptible != nil {
		cfg.Scroll.Interruptible = *s.Interruptible
	}
	return cfg
}

// RunScenario executes the steps in order on doc. Observers see every
// frame of every step.
func RunScenario(ctx context.Context, doc *document.Document, scenario *Scenario, base *config.Config,
	registry *easing.Registry, newMetrics func() []engine.Metric, observers ...engine.Observer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	sc := base.ServiceConfig()

	for i, step := range scenario.Steps {
		logging.Info("scenario %s: step %d/%d to %s", scenario.Name, i+1, len(scenario.Steps), step.Target)

		cfg := step.apply(base)
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		defaults, err := cfg.Snapshot(registry)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(doc, experiment.Config{
			Target:        step.Target,
			Defaults:      defaults,
			Interval:      sc.Interval,
			InterruptKeys: sc.InterruptKeys,
			InterruptAt:   time.Duration(step.InterruptAtMs) * time.Millisecond,
			Interrupt:     ParseEvent(step.Interrupt),
		})
		var metrics []engine.Metric
		if newMetrics != nil {
			metrics = newMetrics()
		}
		exp.Setup(metrics, observers...)

		res, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Step: step, Result: res})
	}

	return results, nil
}
