// math/math.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Numbers lower than this are considered equal to zero when deciding
// whether a bracket straddles a root.
const Epsilon = 1e-12

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}

// Linearly interpolate x of the way between a and b. x==0 corresponds to
// a, x==1 corresponds to b, etc.
func Lerp[T constraints.Float](x, a, b T) T {
	return (1-x)*a + x*b
}

func Sqr[V constraints.Integer | constraints.Float](x V) V { return x * x }

// Within reports whether a and b differ by no more than tol.
func Within(a, b, tol float64) bool {
	return Abs(a-b) <= tol
}

// WithinRel reports whether a matches b to the given relative tolerance;
// a zero reference falls back to an absolute comparison.
func WithinRel(a, b, rtol float64) bool {
	if b == 0 {
		return Abs(a) <= rtol
	}
	return Abs(a-b) <= rtol*Abs(b)
}

// Between reports whether v lies in the closed interval spanned by a and b,
// in either order.
func Between(v, a, b float64) bool {
	if a <= b {
		return a <= v && v <= b
	}
	return b <= v && v <= a
}

// Interp1D evaluates the piecewise-linear function defined by the sample
// points (xs[i], ys[i]) at x, clamping to the end values outside the
// sampled range. xs must be strictly increasing and the same length as ys.
func Interp1D(x float64, xs, ys []float64) float64 {
	if len(xs) == 0 || len(xs) != len(ys) {
		return gomath.NaN()
	}
	if x <= xs[0] {
		return ys[0]
	}
	n := len(xs)
	if x >= xs[n-1] {
		return ys[n-1]
	}

	// Binary search for the bracketing interval.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := (x - xs[lo]) / (xs[hi] - xs[lo])
	return Lerp(t, ys[lo], ys[hi])
}
