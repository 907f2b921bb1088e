// math/root.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"errors"
	"fmt"
	gomath "math"
)

// ErrNoConvergence is wrapped by the errors returned when an iterative
// solve fails; callers can test for it with errors.Is.
var ErrNoConvergence = errors.New("no convergence")

// ConvergenceError reports a failed iterative solve along with the last
// estimate and its residual so that callers can log something useful.
type ConvergenceError struct {
	What     string
	Estimate float64
	Residual float64
	Iters    int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %v after %d iterations (estimate %g, residual %g)",
		e.What, ErrNoConvergence, e.Iters, e.Estimate, e.Residual)
}

func (e *ConvergenceError) Unwrap() error { return ErrNoConvergence }

const brentMaxIters = 100

// FindRoot returns x in [a, b] with |f(x)| driven below the bracketing
// interval tolerance xtol, using Brent's method. f(a) and f(b) must have
// opposite signs (values below Epsilon in magnitude count as zero).
func FindRoot(f func(float64) float64, a, b, xtol float64) (float64, error) {
	fa, fb := f(a), f(b)
	if Abs(fa) < Epsilon {
		return a, nil
	}
	if Abs(fb) < Epsilon {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, &ConvergenceError{What: "root not bracketed", Estimate: a, Residual: fa}
	}

	// Brent's method: inverse quadratic interpolation with secant and
	// bisection fallbacks.
	c, fc := a, fa
	d, e := b-a, b-a
	for i := 0; i < brentMaxIters; i++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if Abs(fc) < Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol := 2*gomath.Nextafter(Abs(b), gomath.Inf(1)) - 2*Abs(b) + xtol/2
		m := (c - b) / 2
		if Abs(m) <= tol || fb == 0 {
			return b, nil
		}
		if Abs(e) < tol || Abs(fa) <= Abs(fb) {
			// Bisection.
			d, e = m, m
		} else {
			s := fb / fa
			var p, q float64
			if a == c {
				// Secant step.
				p = 2 * m * s
				q = 1 - s
			} else {
				// Inverse quadratic interpolation.
				q = fa / fc
				r := fb / fc
				p = s * (2*m*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2*p < 3*m*q-Abs(tol*q) && p < Abs(e*q/2) {
				e = d
				d = p / q
			} else {
				d, e = m, m
			}
		}
		a, fa = b, fb
		if Abs(d) > tol {
			b += d
		} else if m > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb = f(b)
	}
	return b, &ConvergenceError{What: "root find", Estimate: b, Residual: fb, Iters: brentMaxIters}
}
