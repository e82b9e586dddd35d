package easing

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/pagescroll/internal/scroll"
)

// Func maps (t, b, c, d) to a position; see scroll.EasingFunc.
type Func = scroll.EasingFunc

// FromUnit adapts a curve on [0,1] to the (t, b, c, d) form. Time outside
// [0, d] is clamped.
func FromUnit(f func(float64) float64) Func {
	return func(t, b, c, d float64) float64 {
		if d <= 0 || t >= d {
			return b + c
		}
		if t <= 0 {
			return b
		}
		return b + c*f(t/d)
	}
}

// Linear is c*t/d + b.
var Linear Func = scroll.Linear

// InOutExpo accelerates exponentially to the midpoint and decelerates after.
func InOutExpo(t, b, c, d float64) float64 {
	if t <= 0 {
		return b
	}
	if d <= 0 || t >= d {
		return b + c
	}
	t /= d / 2
	if t < 1 {
		return c/2*math.Pow(2, 10*(t-1)) + b
	}
	t--
	return c/2*(-math.Pow(2, -10*t)+2) + b
}

// Spring builds an easing from a critically damped (or softer) harmonica
// spring stepped at fps frames over the unit interval. The curve always ends
// exactly at b+c.
func Spring(fps int, frequency, damping float64) Func {
	if fps <= 0 {
		fps = 60
	}
	spring := harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
	lut := make([]float64, fps+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= fps; i++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		lut[i] = pos
	}
	lut[fps] = 1.0

	return FromUnit(func(u float64) float64 {
		x := u * float64(fps)
		i := int(math.Floor(x))
		if i >= fps {
			return lut[fps]
		}
		frac := x - float64(i)
		return lut[i] + (lut[i+1]-lut[i])*frac
	})
}

// Sample returns n+1 evenly spaced unit samples of f for plotting.
func Sample(f Func, n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		out[i] = f(float64(i), 0, 1, float64(n))
	}
	return out
}
