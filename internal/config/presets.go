package config

import "sort"

var Presets = map[string]func(c *Config){
	"smooth": func(c *Config) {
		c.Scroll.Easing = "in-out-cubic"
		c.Scroll.DurationMs = 1250
	},
	"snappy": func(c *Config) {
		c.Scroll.Easing = "out-quad"
		c.Scroll.DurationMs = 400
	},
	"instant": func(c *Config) {
		c.Scroll.DurationMs = 1
	},
	"spring": func(c *Config) {
		c.Scroll.Easing = "spring"
		c.Scroll.DurationMs = 900
	},
	"locked": func(c *Config) {
		c.Scroll.Easing = "in-out-sine"
		c.Scroll.DurationMs = 1000
		c.Scroll.Interruptible = false
	},
}

// GetPreset returns the default configuration with the named preset
// applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply layers the named preset over c. It reports false for unknown names.
func (c *Config) Apply(preset string) bool {
	apply, ok := Presets[preset]
	if !ok {
		return false
	}
	apply(c)
	return true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
