package scroll

import (
	"reflect"
	"time"
)

// Options are the caller overrides for New. Nil pointers, a nil Easing and a
// non-positive Duration fall back to Defaults.
type Options struct {
	// Defaults is the configuration snapshot; nil means DefaultDefaults().
	Defaults *Defaults

	// Views are the surfaces to scroll. Empty means page mode.
	Views     []Surface
	Namespace string

	Vertical      *bool
	Offset        *float64
	Interruptible *bool
	Easing        EasingFunc
	Duration      time.Duration
	OnFinish      FinishFunc
}

func Bool(v bool) *bool { return &v }

func Float(v float64) *float64 { return &v }

// New builds an instance from opts. It has no side effects on doc.
// A nil doc (or a nil pointer behind the interface) is allowed: page mode
// then gets three undefined views, selectors never resolve and no interrupt
// listeners attach. Nil pointers among opts.Views are stored as nil.
func New(doc Document, target Target, opts Options) *Instance {
	if isNil(doc) {
		doc = nil
	}
	defaults := opts.Defaults
	if defaults == nil {
		defaults = DefaultDefaults()
	}

	inst := &Instance{
		namespace:         opts.Namespace,
		doc:               doc,
		target:            target,
		vertical:          defaults.Vertical,
		offset:            defaults.Offset,
		duration:          defaults.Duration,
		easing:            defaults.Easing,
		interruptible:     defaults.Interruptible,
		onFinish:          opts.OnFinish,
		minScrollDistance: defaults.MinScrollDistance,
		interruptEvents:   append([]string(nil), defaults.InterruptEvents...),
		logLevel:          defaults.LogLevel,
	}

	if inst.namespace == "" {
		inst.namespace = defaults.Namespace
	}
	if inst.namespace == "" {
		inst.namespace = DefaultNamespace
	}

	if len(opts.Views) == 0 {
		inst.inline = false
		inst.views = make([]Surface, 3)
		if doc != nil {
			inst.views[0], inst.views[1], inst.views[2] = doc.Root(), doc.Body(), doc.BodyParent()
		}
	} else {
		inst.inline = true
		inst.views = append([]Surface(nil), opts.Views...)
	}
	for i, v := range inst.views {
		if isNil(v) {
			inst.views[i] = nil
		}
	}

	if opts.Vertical != nil {
		inst.vertical = *opts.Vertical
	}
	if opts.Offset != nil {
		inst.offset = *opts.Offset
	}
	if opts.Interruptible != nil {
		inst.interruptible = *opts.Interruptible
	}
	if opts.Easing != nil {
		inst.easing = opts.Easing
	}
	if inst.easing == nil {
		inst.easing = Linear
	}
	if opts.Duration > 0 {
		inst.duration = opts.Duration
	}
	if inst.duration <= 0 {
		inst.duration = DefaultDuration
	}

	return inst
}

// Page scrolls the document's root containers vertically.
func Page(doc Document, target Target, namespace string) *Instance {
	return PageDirection(doc, target, true, namespace)
}

func PageDirection(doc Document, target Target, vertical bool, namespace string) *Instance {
	return New(doc, target, Options{Namespace: namespace, Vertical: Bool(vertical)})
}

// Inline scrolls view vertically. The target should live inside view,
// otherwise the view scrolls to an apparently arbitrary position.
func Inline(doc Document, target Target, view Surface, namespace string) *Instance {
	return InlineDirection(doc, target, view, true, namespace)
}

func InlineDirection(doc Document, target Target, view Surface, vertical bool, namespace string) *Instance {
	return New(doc, target, Options{Views: []Surface{view}, Namespace: namespace, Vertical: Bool(vertical)})
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or
// channel wrapped in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
