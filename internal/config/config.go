package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pagescroll/internal/easing"
	"github.com/san-kum/pagescroll/internal/engine"
	"github.com/san-kum/pagescroll/internal/scroll"
)

const (
	DefaultDurationMs = 1250
	DefaultIntervalMs = 10
	DefaultStorageDir = "runs"
	DefaultTopic      = "pagescroll/frames"
	DefaultLogLevel   = "info"
)

type Config struct {
	Scroll  ScrollConfig  `yaml:"scroll"`
	Engine  EngineConfig  `yaml:"engine"`
	Storage StorageConfig `yaml:"storage"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Log     LogConfig     `yaml:"log"`
}

// ScrollConfig holds the defaults every new scroll instance starts from.
type ScrollConfig struct {
	Namespace         string   `yaml:"namespace"`
	Horizontal        bool     `yaml:"horizontal"`
	Offset            float64  `yaml:"offset"`
	DurationMs        int      `yaml:"duration_ms"`
	Easing            string   `yaml:"easing"`
	Interruptible     bool     `yaml:"interruptible"`
	MinScrollDistance float64  `yaml:"min_scroll_distance"`
	InterruptEvents   []string `yaml:"interrupt_events"`
	LogLevel          int      `yaml:"log_level"`
}

type EngineConfig struct {
	IntervalMs    int      `yaml:"interval_ms"`
	InterruptKeys []string `yaml:"interrupt_keys"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Scroll: ScrollConfig{
			Namespace:         scroll.DefaultNamespace,
			DurationMs:        DefaultDurationMs,
			Easing:            easing.DefaultName,
			Interruptible:     true,
			MinScrollDistance: scroll.DefaultMinScrollDistance,
			InterruptEvents:   append([]string(nil), scroll.DefaultInterruptEvents...),
			LogLevel:          scroll.DefaultLogLevel,
		},
		Engine: EngineConfig{
			IntervalMs:    DefaultIntervalMs,
			InterruptKeys: append([]string(nil), engine.DefaultInterruptKeys...),
		},
		Storage: StorageConfig{
			Dir: DefaultStorageDir,
		},
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "pagescroll",
			Topic:    DefaultTopic,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Scroll.DurationMs < 0 {
		return &FieldError{Field: "scroll.duration_ms", Wrapped: ErrInvalidDuration}
	}
	if c.Scroll.MinScrollDistance < 0 {
		return &FieldError{Field: "scroll.min_scroll_distance", Wrapped: ErrInvalidDistance}
	}
	if c.Engine.IntervalMs < 0 {
		return &FieldError{Field: "engine.interval_ms", Wrapped: ErrInvalidDuration}
	}
	if c.MQTT.QoS > 2 {
		return &FieldError{Field: "mqtt.qos", Wrapped: ErrInvalidQoS}
	}
	return nil
}

// Duration is the configured animation length. Zero means the library
// default.
func (c *Config) Duration() time.Duration {
	return time.Duration(c.Scroll.DurationMs) * time.Millisecond
}

// Snapshot converts the scroll block into the defaults new instances copy.
func (c *Config) Snapshot(reg *easing.Registry) (*scroll.Defaults, error) {
	fn, err := reg.Get(c.Scroll.Easing)
	if err != nil {
		return nil, &FieldError{Field: "scroll.easing", Wrapped: fmt.Errorf("%w %q", ErrUnknownEasing, c.Scroll.Easing)}
	}

	d := scroll.DefaultDefaults()
	if c.Scroll.Namespace != "" {
		d.Namespace = c.Scroll.Namespace
	}
	d.Vertical = !c.Scroll.Horizontal
	d.Offset = c.Scroll.Offset
	if dur := c.Duration(); dur > 0 {
		d.Duration = dur
	}
	d.Easing = fn
	d.Interruptible = c.Scroll.Interruptible
	d.MinScrollDistance = c.Scroll.MinScrollDistance
	if c.Scroll.InterruptEvents != nil {
		d.InterruptEvents = append([]string(nil), c.Scroll.InterruptEvents...)
	}
	d.LogLevel = c.Scroll.LogLevel
	return d, nil
}

// ServiceConfig returns the engine settings; the clock is left for the
// caller.
func (c *Config) ServiceConfig() engine.Config {
	return engine.Config{
		Interval:      time.Duration(c.Engine.IntervalMs) * time.Millisecond,
		InterruptKeys: append([]string(nil), c.Engine.InterruptKeys...),
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Scroll.InterruptEvents = append([]string(nil), c.Scroll.InterruptEvents...)
	cp.Engine.InterruptKeys = append([]string(nil), c.Engine.InterruptKeys...)
	return &cp
}
