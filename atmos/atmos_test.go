// atmos/atmos_test.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package atmos

import (
	gomath "math"
	"testing"
)

func rel(got, want float64) float64 {
	if want == 0 {
		return gomath.Abs(got)
	}
	return gomath.Abs(got-want) / gomath.Abs(want)
}

func TestStandardDay(t *testing.T) {
	for _, c := range []struct {
		alt, temp, press, rho float64
	}{
		{0, 288.15, 101325, 1.225},
		{5000, 255.65, 54019, 0.7361},
		{11000, 216.65, 22632, 0.3639},
		{15000, 216.65, 12044, 0.1937},
		{20000, 216.65, 5474.9, 0.0880},
	} {
		cond := At(c.alt)
		if rel(cond.Temperature, c.temp) > 1e-3 {
			t.Errorf("alt %.0f: temperature got %.2f, expected %.2f", c.alt, cond.Temperature, c.temp)
		}
		if rel(cond.Pressure, c.press) > 1e-3 {
			t.Errorf("alt %.0f: pressure got %.1f, expected %.1f", c.alt, cond.Pressure, c.press)
		}
		if rel(cond.Density, c.rho) > 2e-3 {
			t.Errorf("alt %.0f: density got %.4f, expected %.4f", c.alt, cond.Density, c.rho)
		}
	}
}

func TestDensityMonotonic(t *testing.T) {
	prev := Density(0)
	for alt := 100.0; alt <= StratosphereCeiling; alt += 100 {
		rho := Density(alt)
		if rho >= prev {
			t.Fatalf("density not decreasing at %.0f m: %.6f >= %.6f", alt, rho, prev)
		}
		prev = rho
	}
}

func TestTemperatureContinuity(t *testing.T) {
	below := Temperature(TropopauseAltitude - 1e-6)
	above := Temperature(TropopauseAltitude + 1e-6)
	if gomath.Abs(below-above) > 1e-4 {
		t.Errorf("temperature discontinuity at tropopause: %.6f vs %.6f", below, above)
	}
	if p0, p1 := Pressure(TropopauseAltitude-1e-6), Pressure(TropopauseAltitude+1e-6); gomath.Abs(p0-p1) > 1e-2 {
		t.Errorf("pressure discontinuity at tropopause: %.4f vs %.4f", p0, p1)
	}
}

func TestSpeedConversions(t *testing.T) {
	c := At(0)
	if a := c.SpeedOfSound(); rel(a, 340.29) > 1e-3 {
		t.Errorf("sea level speed of sound got %.2f, expected 340.29", a)
	}
	// EAS equals TAS at sea level
	if eas := c.EASFromTAS(100); rel(eas, 100) > 1e-9 {
		t.Errorf("sea level EAS got %.4f, expected 100", eas)
	}

	c = At(10000)
	tas := c.TASFromEAS(150)
	if got := c.EASFromTAS(tas); rel(got, 150) > 1e-9 {
		t.Errorf("EAS/TAS round trip got %.6f, expected 150", got)
	}
	if tas <= 150 {
		t.Errorf("TAS at altitude should exceed EAS: got %.2f", tas)
	}
	m := c.MachFromTAS(tas)
	if got := c.TASFromMach(m); rel(got, tas) > 1e-9 {
		t.Errorf("Mach/TAS round trip got %.6f, expected %.6f", got, tas)
	}
}

func TestViscosity(t *testing.T) {
	// Sutherland at 288.15 K is about 1.79e-5 Pa s
	if mu := At(0).DynamicViscosity(); rel(mu, 1.79e-5) > 1e-2 {
		t.Errorf("sea level viscosity got %.4g, expected about 1.79e-5", mu)
	}
}
