// aero/polar.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aero holds the aerodynamic model the mission computation needs:
// a drag polar sampled as matched CL/CD arrays.
package aero

import (
	"fmt"

	"github.com/skadler/missim/math"
)

// Polar is a drag polar given as sampled (CL, CD) pairs with CL strictly
// increasing. Lookups interpolate linearly and clamp outside the sampled
// range.
type Polar struct {
	cl, cd []float64

	optCL, optCD float64 // point of maximum L/D
}

// NewPolar validates the sample arrays and precomputes the maximum
// lift-to-drag point.
func NewPolar(cl, cd []float64) (*Polar, error) {
	if len(cl) < 2 || len(cl) != len(cd) {
		return nil, fmt.Errorf("polar needs matched CL/CD arrays of at least 2 points, got %d/%d",
			len(cl), len(cd))
	}
	for i := 1; i < len(cl); i++ {
		if cl[i] <= cl[i-1] {
			return nil, fmt.Errorf("polar CL must be strictly increasing: cl[%d]=%g, cl[%d]=%g",
				i-1, cl[i-1], i, cl[i])
		}
	}

	p := &Polar{cl: append([]float64(nil), cl...), cd: append([]float64(nil), cd...)}
	best := 0.0
	for i := range p.cl {
		if p.cd[i] > 0 {
			if ld := p.cl[i] / p.cd[i]; ld > best {
				best = ld
				p.optCL, p.optCD = p.cl[i], p.cd[i]
			}
		}
	}
	if best == 0 {
		return nil, fmt.Errorf("polar has no positive-CD sample")
	}
	return p, nil
}

// ParabolicPolar builds a polar CD = cd0 + k*CL^2 sampled on [0, clMax].
// cd0 must be positive; callers taking the coefficients from external
// input validate them before calling.
func ParabolicPolar(cd0, k, clMax float64) *Polar {
	n := int(clMax/0.01) + 1
	cl := make([]float64, n)
	cd := make([]float64, n)
	for i := range cl {
		cl[i] = float64(i) * 0.01
		cd[i] = cd0 + k*math.Sqr(cl[i])
	}
	p, err := NewPolar(cl, cd)
	if err != nil {
		panic(err)
	}
	return p
}

// CD returns the drag coefficient at the given lift coefficient.
func (p *Polar) CD(cl float64) float64 {
	return math.Interp1D(cl, p.cl, p.cd)
}

// OptimalCL returns the lift coefficient of maximum L/D.
func (p *Polar) OptimalCL() float64 { return p.optCL }

// MaxLiftToDrag returns the best sampled L/D ratio.
func (p *Polar) MaxLiftToDrag() float64 { return p.optCL / p.optCD }
