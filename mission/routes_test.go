// mission/routes_test.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/skadler/missim/aero"
	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/propulsion"
	"github.com/skadler/missim/segment"
)

func mediumRangeParams(t *testing.T) StandardFlightParams {
	t.Helper()
	engine, err := propulsion.NewRubberEngine(propulsion.RubberEngineParams{
		BypassRatio:          5,
		OverallPressureRatio: 30,
		TurbineInletTemp:     1500,
		MTOThrust:            1e5,
		MaxMach:              0.95,
		DesignAltitude:       10000,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	prop, err := propulsion.NewFuelEngineSet(engine, 2)
	if err != nil {
		t.Fatal(err)
	}
	return StandardFlightParams{
		Propulsion:     prop,
		ReferenceArea:  120,
		LowSpeedPolar:  aero.ParabolicPolar(0.03, 0.06, 2.0),
		HighSpeedPolar: aero.ParabolicPolar(0.016, 0.06, 1.5),
		CruiseMach:     0.78,
	}
}

func mediumRangeStart() flight.Point {
	p := flight.Point{
		TAS:            150 * flight.Knot,
		Altitude:       100 * flight.Foot,
		Mass:           70000,
		GroundDistance: 100e3,
	}
	p.CompleteSpeeds(flight.SpeedTAS)
	return p
}

func TestRangedRouteEndToEnd(t *testing.T) {
	const target = 2e6

	route, err := NewStandardFlight(mediumRangeParams(t), target, 0)
	if err != nil {
		t.Fatal(err)
	}
	if name, value := route.CruiseSpeed(); name != "mach" || value != 0.78 {
		t.Errorf("CruiseSpeed got (%s, %g), expected (mach, 0.78)", name, value)
	}

	start := mediumRangeStart()
	seq, err := route.ComputeFrom(start)
	if err != nil {
		t.Fatal(err)
	}

	if got := seq.GroundDistance(); gomath.Abs(got-target) > DefaultDistanceAccuracy {
		t.Errorf("total ground distance got %.0f, expected %.0f within %d m",
			got, target, DefaultDistanceAccuracy)
	}

	last := seq.Last()
	if gomath.Abs(last.Altitude-1500*flight.Foot) > 1e-6 {
		t.Errorf("final altitude got %.2f m, expected %.2f", last.Altitude, 1500*flight.Foot)
	}

	// a 2000 km mission on this aircraft burns about 16 t
	if fuel := seq.FuelBurned(); fuel < 12e3 || fuel > 20e3 {
		t.Errorf("implausible fuel burn: %.0f kg", fuel)
	}
	if h := seq.Duration() / 3600; h < 2 || h > 3.5 {
		t.Errorf("implausible duration: %.2f h", h)
	}

	// the optimal-altitude climb tops out near the design cruise altitude
	top := 0.0
	for _, p := range seq {
		top = gomath.Max(top, p.Altitude)
	}
	if top < 9000 || top > 12500 {
		t.Errorf("implausible top of climb: %.0f m", top)
	}

	// invariants over the whole mission
	phases := map[string]bool{}
	for i := 1; i < len(seq); i++ {
		if seq[i].Time < seq[i-1].Time {
			t.Fatalf("point %d: time decreased", i)
		}
		if seq[i].Mass > seq[i-1].Mass {
			t.Fatalf("point %d: mass increased", i)
		}
		if seq[i].GroundDistance < seq[i-1].GroundDistance {
			t.Fatalf("point %d: ground distance decreased", i)
		}
		phases[seq[i].Phase] = true
	}
	for _, want := range []string{"initial_climb", "climb", "cruise", "descent"} {
		if !phases[want] {
			t.Errorf("no points labeled %q", want)
		}
	}
}

func TestRangedRouteOptimalFlightLevel(t *testing.T) {
	p := mediumRangeParams(t)
	p.CruiseAltitude = flight.OptimalFL()

	route, err := NewStandardFlight(p, 2e6, 0)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := route.ComputeFrom(mediumRangeStart())
	if err != nil {
		t.Fatal(err)
	}

	// the cruise must sit on a 1000 ft flight level
	var cruiseAlt float64
	for _, pt := range seq {
		if pt.Phase == "cruise" {
			cruiseAlt = pt.Altitude
			break
		}
	}
	const level = 1000 * flight.Foot
	if r := gomath.Mod(cruiseAlt, level); gomath.Abs(r) > 1e-6 && gomath.Abs(r-level) > 1e-6 {
		t.Errorf("cruise altitude %.1f m is not on a 1000 ft flight level", cruiseAlt)
	}
	if gomath.Abs(seq.GroundDistance()-2e6) > DefaultDistanceAccuracy {
		t.Errorf("total ground distance got %.0f", seq.GroundDistance())
	}
}

func TestRangedRouteTooShort(t *testing.T) {
	// climb and descent alone cover more than this
	route, err := NewStandardFlight(mediumRangeParams(t), 100e3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := route.ComputeFrom(mediumRangeStart()); err == nil {
		t.Errorf("expected an error for an unreachably short flight distance")
	}
}

func TestRangedRouteValidation(t *testing.T) {
	route, err := NewStandardFlight(mediumRangeParams(t), 2e6, 0)
	if err != nil {
		t.Fatal(err)
	}
	route.FlightDistance = 0
	if _, err := route.ComputeFrom(mediumRangeStart()); err == nil {
		t.Errorf("expected an error for zero flight distance")
	}

	if _, err := NewStandardFlight(StandardFlightParams{}, 2e6, 0); err == nil {
		t.Errorf("expected an error for missing models")
	}
}

func TestSimpleRoutePropagatesStall(t *testing.T) {
	p := mediumRangeParams(t)
	p.ClimbThrustRate = 0.05 // cannot climb on this

	route, err := NewStandardFlight(p, 2e6, 0)
	if err != nil {
		t.Fatal(err)
	}
	_, err = route.ComputeFrom(mediumRangeStart())
	var stalled *segment.StalledError
	if !errors.As(err, &stalled) {
		t.Fatalf("expected a *segment.StalledError, got %v", err)
	}
}

func TestPhaseConcatenation(t *testing.T) {
	params := mediumRangeParams(t)
	cfg := segment.Config{
		Propulsion:    params.Propulsion,
		Polar:         params.HighSpeedPolar,
		ReferenceArea: params.ReferenceArea,
		ThrustRate:    0.93,
		EngineSetting: flight.Climb,
		TimeStep:      5,
		Phase:         "climb",
	}
	s1, err := segment.NewAltitudeChange(cfg, flight.Target{EAS: flight.Hold(), Altitude: flight.Literal(5000)})
	if err != nil {
		t.Fatal(err)
	}
	s2, err := segment.NewSpeedChange(cfg, flight.Target{EAS: flight.Literal(160)})
	if err != nil {
		t.Fatal(err)
	}

	start := flight.Point{Altitude: 3000, Mass: 65000, EAS: 140}
	start.CompleteSpeeds(flight.SpeedEAS)

	ph := Phase{Name: "climb", Segments: []segment.Segment{s1, s2}}
	seq, err := ph.ComputeFrom(start)
	if err != nil {
		t.Fatal(err)
	}

	// no duplicated boundary point between the two segments
	for i := 1; i < len(seq); i++ {
		if seq[i].Time == seq[i-1].Time && seq[i].Altitude == seq[i-1].Altitude &&
			seq[i].GroundDistance == seq[i-1].GroundDistance {
			t.Fatalf("duplicated boundary point at %d", i)
		}
	}
	if got := seq.Last().EAS; gomath.Abs(got-160) > 1e-9 {
		t.Errorf("final EAS got %g, expected 160", got)
	}
}
