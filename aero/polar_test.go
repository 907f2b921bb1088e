// aero/polar_test.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	gomath "math"
	"testing"
)

func TestPolarValidation(t *testing.T) {
	if _, err := NewPolar([]float64{0.5}, []float64{0.02}); err == nil {
		t.Errorf("expected error for single-point polar")
	}
	if _, err := NewPolar([]float64{0, 0.5}, []float64{0.02}); err == nil {
		t.Errorf("expected error for mismatched array lengths")
	}
	if _, err := NewPolar([]float64{0, 0.5, 0.5}, []float64{0.02, 0.03, 0.04}); err == nil {
		t.Errorf("expected error for non-increasing CL")
	}
	if _, err := NewPolar([]float64{0, 0.5, 1}, []float64{0.02, 0.03, 0.05}); err != nil {
		t.Errorf("valid polar rejected: %v", err)
	}
}

func TestPolarLookup(t *testing.T) {
	p, err := NewPolar([]float64{0, 0.5, 1.0}, []float64{0.02, 0.03, 0.06})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct{ cl, want float64 }{
		{0, 0.02},
		{0.25, 0.025},
		{0.5, 0.03},
		{0.75, 0.045},
		{-1, 0.02}, // clamped
		{2, 0.06},  // clamped
	} {
		if got := p.CD(c.cl); gomath.Abs(got-c.want) > 1e-12 {
			t.Errorf("CD(%g) got %g, expected %g", c.cl, got, c.want)
		}
	}
}

func TestParabolicPolarOptimum(t *testing.T) {
	// CD = 0.016 + 0.06 CL^2: max L/D is at CL = sqrt(0.016/0.06) ~ 0.5164
	p := ParabolicPolar(0.016, 0.06, 1.5)

	wantCL := gomath.Sqrt(0.016 / 0.06)
	if gomath.Abs(p.OptimalCL()-wantCL) > 0.01 {
		t.Errorf("OptimalCL got %g, expected about %g", p.OptimalCL(), wantCL)
	}
	wantLD := wantCL / (2 * 0.016)
	if gomath.Abs(p.MaxLiftToDrag()-wantLD) > 0.05 {
		t.Errorf("MaxLiftToDrag got %g, expected about %g", p.MaxLiftToDrag(), wantLD)
	}
}
