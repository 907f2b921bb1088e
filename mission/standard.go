// mission/standard.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"fmt"

	"github.com/skadler/missim/aero"
	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/log"
	"github.com/skadler/missim/propulsion"
	"github.com/skadler/missim/segment"
)

// StandardFlightParams sizes the usual airline profile: full-thrust
// initial climb on the low-speed polar, climb at the climb rating to the
// cruise Mach and on up to the optimal altitude, constant-Mach cruise,
// and an idle descent. Zero rates and time steps select the defaults.
type StandardFlightParams struct {
	Propulsion        propulsion.Model
	ReferenceArea     float64 // m^2
	LowSpeedPolar     *aero.Polar
	HighSpeedPolar    *aero.Polar
	CruiseMach        float64
	ClimbThrustRate   float64 // default 0.93
	DescentThrustRate float64 // default 0.2
	TimeStep          float64 // climb/descent integration step, default 5 s
	InitialTimeStep   float64 // initial climb step, default 0.2 s
	CruiseTimeStep    float64 // default 60 s
	// CruiseAltitude picks how the top of climb is chosen; the zero value
	// selects flight.Optimal(). flight.OptimalFL() is the other useful
	// choice.
	CruiseAltitude flight.Value
	Lg             *log.Logger
}

const (
	defaultClimbRate   = 0.93
	defaultDescentRate = 0.2
)

// NewStandardFlight builds a RangedRoute flying the standard profile
// over flightDistance meters.
func NewStandardFlight(p StandardFlightParams, flightDistance, distanceAccuracy float64) (*RangedRoute, error) {
	if p.Propulsion == nil || p.LowSpeedPolar == nil || p.HighSpeedPolar == nil {
		return nil, fmt.Errorf("standard flight needs a propulsion model and both polars")
	}
	if p.CruiseMach <= 0 {
		return nil, fmt.Errorf("cruise Mach must be positive, got %g", p.CruiseMach)
	}
	if p.ClimbThrustRate == 0 {
		p.ClimbThrustRate = defaultClimbRate
	}
	if p.DescentThrustRate == 0 {
		p.DescentThrustRate = defaultDescentRate
	}
	if p.TimeStep == 0 {
		p.TimeStep = 5
	}
	if p.InitialTimeStep == 0 {
		p.InitialTimeStep = 0.2
	}
	if p.CruiseAltitude.Kind == flight.KindFree {
		p.CruiseAltitude = flight.Optimal()
	}

	initialCfg := segment.Config{
		Propulsion:    p.Propulsion,
		Polar:         p.LowSpeedPolar,
		ReferenceArea: p.ReferenceArea,
		ThrustRate:    1,
		EngineSetting: flight.Takeoff,
		TimeStep:      p.InitialTimeStep,
		Phase:         "initial_climb",
		Lg:            p.Lg,
	}
	climbCfg := segment.Config{
		Propulsion:    p.Propulsion,
		Polar:         p.HighSpeedPolar,
		ReferenceArea: p.ReferenceArea,
		ThrustRate:    p.ClimbThrustRate,
		EngineSetting: flight.Climb,
		TimeStep:      p.TimeStep,
		Phase:         "climb",
		Lg:            p.Lg,
	}
	descentCfg := climbCfg
	descentCfg.ThrustRate = p.DescentThrustRate
	descentCfg.EngineSetting = flight.Idle
	descentCfg.Phase = "descent"
	cruiseCfg := segment.Config{
		Propulsion:    p.Propulsion,
		Polar:         p.HighSpeedPolar,
		ReferenceArea: p.ReferenceArea,
		EngineSetting: flight.Cruise,
		TimeStep:      p.CruiseTimeStep,
		Phase:         "cruise",
		Lg:            p.Lg,
	}

	alt := func(cfg segment.Config, target flight.Target) (segment.Segment, error) {
		return segment.NewAltitudeChange(cfg, target)
	}
	spd := func(cfg segment.Config, target flight.Target) (segment.Segment, error) {
		return segment.NewSpeedChange(cfg, target)
	}
	type mk struct {
		build  func(segment.Config, flight.Target) (segment.Segment, error)
		cfg    segment.Config
		target flight.Target
	}

	initialClimb := []mk{
		{alt, initialCfg, flight.Target{EAS: flight.Hold(), Altitude: flight.Literal(400 * flight.Foot)}},
		{spd, initialCfg, flight.Target{EAS: flight.Literal(250 * flight.Knot)}},
		{alt, initialCfg, flight.Target{EAS: flight.Hold(), Altitude: flight.Literal(1500 * flight.Foot)}},
	}
	climb := []mk{
		{alt, climbCfg, flight.Target{EAS: flight.Hold(), Altitude: flight.Literal(10000 * flight.Foot)}},
		{spd, climbCfg, flight.Target{EAS: flight.Literal(300 * flight.Knot)}},
		{alt, climbCfg, flight.Target{EAS: flight.Hold(), Mach: flight.Literal(p.CruiseMach)}},
		{alt, climbCfg, flight.Target{Mach: flight.Hold(), Altitude: p.CruiseAltitude}},
	}
	descent := []mk{
		{alt, descentCfg, flight.Target{Mach: flight.Hold(), EAS: flight.Literal(300 * flight.Knot)}},
		{alt, descentCfg, flight.Target{EAS: flight.Hold(), Altitude: flight.Literal(10000 * flight.Foot)}},
		{spd, descentCfg, flight.Target{EAS: flight.Literal(250 * flight.Knot)}},
		{alt, descentCfg, flight.Target{EAS: flight.Hold(), Altitude: flight.Literal(1500 * flight.Foot)}},
	}

	phase := func(name string, specs []mk) (Phase, error) {
		ph := Phase{Name: name}
		for _, m := range specs {
			s, err := m.build(m.cfg, m.target)
			if err != nil {
				return Phase{}, fmt.Errorf("building %s: %w", name, err)
			}
			ph.Segments = append(ph.Segments, s)
		}
		return ph, nil
	}

	initial, err := phase("initial_climb", initialClimb)
	if err != nil {
		return nil, err
	}
	cl, err := phase("climb", climb)
	if err != nil {
		return nil, err
	}
	de, err := phase("descent", descent)
	if err != nil {
		return nil, err
	}

	// Placeholder distance; the range solve replaces it.
	cruise, err := segment.NewCruise(cruiseCfg, flight.Target{GroundDistance: flight.Literal(0.7 * flightDistance)})
	if err != nil {
		return nil, err
	}

	return &RangedRoute{
		SimpleRoute: SimpleRoute{
			ClimbPhases:   []Phase{initial, cl},
			Cruise:        cruise,
			DescentPhases: []Phase{de},
			Lg:            p.Lg,
		},
		FlightDistance:   flightDistance,
		DistanceAccuracy: distanceAccuracy,
		CruiseSpeedName:  "mach",
		CruiseSpeedValue: p.CruiseMach,
	}, nil
}
