package easing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

// ErrUnknown is returned for easing names that are not registered.
var ErrUnknown = errors.New("easing: unknown easing function")

// DefaultName is the easing used when configuration does not name one.
const DefaultName = "linear"

type Registry struct {
	funcs map[string]func() Func
}

func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]func() Func)}

	r.funcs["linear"] = func() Func { return Linear }
	r.funcs["in-quad"] = unit(ease.InQuad)
	r.funcs["out-quad"] = unit(ease.OutQuad)
	r.funcs["in-out-quad"] = unit(ease.InOutQuad)
	r.funcs["in-cubic"] = unit(ease.InCubic)
	r.funcs["out-cubic"] = unit(ease.OutCubic)
	r.funcs["in-out-cubic"] = unit(ease.InOutCubic)
	r.funcs["in-sine"] = unit(ease.InSine)
	r.funcs["out-sine"] = unit(ease.OutSine)
	r.funcs["in-out-sine"] = unit(ease.InOutSine)
	r.funcs["in-expo"] = unit(ease.InExpo)
	r.funcs["out-expo"] = unit(ease.OutExpo)
	r.funcs["in-out-expo"] = func() Func { return InOutExpo }
	r.funcs["in-circ"] = unit(ease.InCirc)
	r.funcs["out-circ"] = unit(ease.OutCirc)
	r.funcs["in-out-circ"] = unit(ease.InOutCirc)
	r.funcs["out-bounce"] = unit(ease.OutBounce)
	r.funcs["out-elastic"] = unit(ease.OutElastic)
	r.funcs["spring"] = func() Func { return Spring(60, 6.0, 1.0) }

	return r
}

func unit(f func(float64) float64) func() Func {
	return func() Func { return FromUnit(f) }
}

// Register adds or replaces a named easing.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = func() Func { return fn }
}

func (r *Registry) Get(name string) (Func, error) {
	if name == "" {
		name = DefaultName
	}
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return fn(), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
