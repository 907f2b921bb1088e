// mission/route.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"fmt"

	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/log"
	"github.com/skadler/missim/math"
	"github.com/skadler/missim/segment"
)

// SimpleRoute is the classic climb / cruise / descent profile with a
// fixed cruise distance.
type SimpleRoute struct {
	ClimbPhases   []Phase
	Cruise        *segment.Cruise
	DescentPhases []Phase
	Lg            *log.Logger
}

func (r *SimpleRoute) ComputeFrom(start flight.Point) (flight.Sequence, error) {
	var seq flight.Sequence
	cur := start
	for _, p := range r.ClimbPhases {
		part, err := p.ComputeFrom(cur)
		if err != nil {
			return nil, err
		}
		seq = seq.Extend(part)
		cur = seq.Last()
	}

	part, err := r.Cruise.ComputeFrom(cur)
	if err != nil {
		return nil, err
	}
	seq = seq.Extend(part)
	cur = seq.Last()

	for _, p := range r.DescentPhases {
		part, err := p.ComputeFrom(cur)
		if err != nil {
			return nil, err
		}
		seq = seq.Extend(part)
		cur = seq.Last()
	}
	return seq, nil
}

// DefaultDistanceAccuracy is how close a solved route's total ground
// distance must come to the requested one, in m.
const DefaultDistanceAccuracy = 500

const maxRouteIterations = 50

// RangedRoute adjusts the cruise distance of its SimpleRoute until the
// whole route covers FlightDistance. Climb and descent distances shift a
// little as the cruise start mass changes, so the solve iterates on the
// distance error; it normally converges in a handful of passes.
//
// Unlike the engine and polar models, a RangedRoute is not shareable:
// the solve rewrites the Cruise segment's target distance on every
// iteration, so a route must not be flown from two goroutines at once,
// and after a failed solve the cruise keeps the last trial distance.
type RangedRoute struct {
	SimpleRoute
	FlightDistance   float64 // m, total ground distance to cover
	DistanceAccuracy float64 // m, 0 selects DefaultDistanceAccuracy

	// CruiseSpeedName/Value describe the speed law the cruise is flown
	// at, e.g. ("mach", 0.78); presets fill them in for reporting.
	CruiseSpeedName  string
	CruiseSpeedValue float64
}

// CruiseSpeed reports the cruise speed law, e.g. ("mach", 0.78).
func (r *RangedRoute) CruiseSpeed() (string, float64) {
	return r.CruiseSpeedName, r.CruiseSpeedValue
}

func (r *RangedRoute) accuracy() float64 {
	if r.DistanceAccuracy > 0 {
		return r.DistanceAccuracy
	}
	return DefaultDistanceAccuracy
}

func (r *RangedRoute) ComputeFrom(start flight.Point) (flight.Sequence, error) {
	if r.FlightDistance <= 0 {
		return nil, fmt.Errorf("flight distance must be positive, got %g", r.FlightDistance)
	}

	// First guess: cruise covers 70% of the total.
	distance := 0.7 * r.FlightDistance
	residual := 0.0
	for iter := 0; iter < maxRouteIterations; iter++ {
		r.Cruise.SetDistance(distance)
		seq, err := r.SimpleRoute.ComputeFrom(start)
		if err != nil {
			return nil, err
		}

		residual = r.FlightDistance - seq.GroundDistance()
		r.Lg.Debugf("range solve iteration %d: cruise %.0f m, residual %.1f m", iter, distance, residual)
		if math.Abs(residual) <= r.accuracy() {
			return seq, nil
		}

		distance += residual
		if distance <= 0 {
			return nil, fmt.Errorf("climb and descent alone cover more than the %.0f m flight distance",
				r.FlightDistance)
		}
	}

	return nil, &math.ConvergenceError{
		What:     "route distance solve",
		Estimate: distance,
		Residual: residual,
		Iters:    maxRouteIterations,
	}
}
