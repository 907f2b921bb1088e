// segment/cruise.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package segment

import (
	"fmt"

	"github.com/skadler/missim/flight"
)

// Cruise flies level at constant true airspeed with thrust regulated to
// balance drag, over the target ground distance (relative to the start
// point).
type Cruise struct {
	Config
	Target flight.Target
}

func NewCruise(cfg Config, target flight.Target) (*Cruise, error) {
	if err := cfg.check("cruise"); err != nil {
		return nil, err
	}

	if !target.GroundDistance.IsLiteral() {
		return nil, &flight.TargetError{Segment: "cruise",
			Reason: "a literal ground distance is required"}
	}
	if target.GroundDistance.Value <= 0 {
		return nil, &flight.TargetError{Segment: "cruise",
			Reason: fmt.Sprintf("ground distance must be positive, got %g", target.GroundDistance.Value)}
	}
	for _, k := range flight.SpeedKinds {
		if v := target.SpeedValue(k); !v.IsFree() && !v.IsHold() {
			return nil, &flight.TargetError{Segment: "cruise",
				Reason: fmt.Sprintf("airspeed is held through cruise, got %s for %s", v.Kind, k)}
		}
	}
	switch target.Altitude.Kind {
	case flight.KindFree, flight.KindHold:
	default:
		return nil, &flight.TargetError{Segment: "cruise",
			Reason: "altitude is held through cruise"}
	}

	return &Cruise{Config: cfg, Target: target}, nil
}

// Distance returns the segment's target ground distance in m.
func (s *Cruise) Distance() float64 { return s.Target.GroundDistance.Value }

// SetDistance replaces the target ground distance; the range solver uses
// it to adjust the cruise length between iterations.
func (s *Cruise) SetDistance(d float64) { s.Target.GroundDistance = flight.Literal(d) }

func (s *Cruise) ComputeFrom(start flight.Point) (flight.Sequence, error) {
	dt0 := s.timeStep(defaultCruiseTimeStep)
	endDistance := start.GroundDistance + s.Target.GroundDistance.Value
	cur := start

	var seq flight.Sequence
	for step := 0; step < maxSteps; step++ {
		s.annotate(&cur, flight.SpeedTAS)
		sfc, rate, err := s.Propulsion.ComputeRegulated(cur.Mach, cur.Altitude, cur.Drag, s.EngineSetting)
		if err != nil {
			return nil, fmt.Errorf("%s: regulating cruise thrust: %w", s.Phase, err)
		}
		cur.Thrust, cur.SFC, cur.ThrustRate = cur.Drag, sfc, rate
		cur.Slope = 0
		seq = append(seq, cur)

		if cur.GroundDistance == endDistance {
			return seq, nil
		}

		dt := dt0
		next := cur.GroundDistance + cur.TAS*dt
		done := false
		if next >= endDistance {
			dt *= (endDistance - cur.GroundDistance) / (next - cur.GroundDistance)
			next = endDistance
			done = true
		}

		cur.Time += dt
		cur.GroundDistance = next
		cur.Mass -= sfc * cur.Drag * dt

		if done {
			s.annotate(&cur, flight.SpeedTAS)
			sfc, rate, err := s.Propulsion.ComputeRegulated(cur.Mach, cur.Altitude, cur.Drag, s.EngineSetting)
			if err != nil {
				return nil, fmt.Errorf("%s: regulating cruise thrust: %w", s.Phase, err)
			}
			cur.Thrust, cur.SFC, cur.ThrustRate = cur.Drag, sfc, rate
			seq = append(seq, cur)
			return seq, nil
		}
	}

	return nil, &StalledError{Phase: s.Phase, Reason: "step limit exceeded", Partial: seq}
}
