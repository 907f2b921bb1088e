// segment/altitude.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package segment

import (
	"fmt"
	gomath "math"

	"github.com/skadler/missim/atmos"
	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/math"
	"github.com/skadler/missim/util"
)

// AltitudeChange climbs or descends at fixed throttle, following the
// speed law set by the held airspeed field of the target. The segment
// ends on the target altitude, or on a target airspeed crossed along the
// way (for example a constant-EAS climb flown until reaching the cruise
// Mach), whichever the target specifies.
type AltitudeChange struct {
	Config
	Target flight.Target

	driver    flight.SpeedKind
	stopSpeed bool
	stopKind  flight.SpeedKind
	stopValue float64
}

func NewAltitudeChange(cfg Config, target flight.Target) (*AltitudeChange, error) {
	if err := cfg.check("altitude change"); err != nil {
		return nil, err
	}
	if cfg.ThrustRate <= 0 {
		return nil, fmt.Errorf("altitude change: thrust rate must be positive, got %g", cfg.ThrustRate)
	}

	s := &AltitudeChange{Config: cfg, Target: target}

	nHold := 0
	for _, k := range flight.SpeedKinds {
		switch v := target.SpeedValue(k); v.Kind {
		case flight.KindHold:
			nHold++
			s.driver = k
		case flight.KindLiteral:
			if s.stopSpeed {
				return nil, &flight.TargetError{Segment: "altitude change",
					Reason: "at most one airspeed may be a literal goal"}
			}
			s.stopSpeed = true
			s.stopKind = k
			s.stopValue = v.Value
		case flight.KindFree:
		default:
			return nil, &flight.TargetError{Segment: "altitude change",
				Reason: fmt.Sprintf("%s sentinel not applicable to %s", v.Kind, k)}
		}
	}
	if nHold != 1 {
		return nil, &flight.TargetError{Segment: "altitude change",
			Reason: fmt.Sprintf("exactly one airspeed must be held to define the speed law, got %d", nHold)}
	}

	altStop := false
	switch target.Altitude.Kind {
	case flight.KindLiteral, flight.KindOptimal, flight.KindOptimalFL:
		altStop = true
	case flight.KindFree:
	default:
		return nil, &flight.TargetError{Segment: "altitude change",
			Reason: "altitude cannot be held while changing altitude"}
	}
	if !target.GroundDistance.IsFree() {
		return nil, &flight.TargetError{Segment: "altitude change",
			Reason: "ground distance targets belong to cruise segments"}
	}
	if altStop == s.stopSpeed {
		return nil, &flight.TargetError{Segment: "altitude change",
			Reason: "exactly one stop criterion required: a target altitude or a target airspeed"}
	}

	return s, nil
}

func (s *AltitudeChange) optimalSteps() int {
	if s.OptimalStopSteps > 0 {
		return s.OptimalStopSteps
	}
	return defaultOptimalSteps
}

// optimalFlightLevel finds the altitude where the lift coefficient under
// the frozen speed law reaches the polar optimum and rounds it down to a
// 1000 ft flight level. The start mass is used throughout; the fuel
// burned during the climb shifts the true optimum only marginally.
func (s *AltitudeChange) optimalFlightLevel(start flight.Point) (float64, error) {
	opt := s.Polar.OptimalCL()
	cl := func(alt float64) float64 {
		p := start
		p.Altitude = alt
		cond := p.CompleteSpeeds(s.driver)
		return p.Mass * atmos.Gravity / (cond.DynamicPressure(p.TAS) * s.ReferenceArea)
	}

	lo, hi := start.Altitude, float64(atmos.StratosphereCeiling)
	var alt float64
	switch {
	case cl(lo) >= opt:
		alt = lo
	case cl(hi) <= opt:
		alt = hi
	default:
		var err error
		alt, err = math.FindRoot(func(a float64) float64 { return cl(a) - opt }, lo, hi, 0.1)
		if err != nil {
			return 0, fmt.Errorf("solving optimal flight level: %w", err)
		}
	}

	const level = 1000 * flight.Foot
	return gomath.Floor(alt/level) * level, nil
}

func (s *AltitudeChange) ComputeFrom(start flight.Point) (flight.Sequence, error) {
	altMode := s.Target.Altitude.Kind
	altTarget := s.Target.Altitude.Value
	if altMode == flight.KindOptimalFL {
		var err error
		altTarget, err = s.optimalFlightLevel(start)
		if err != nil {
			return nil, err
		}
		s.Lg.Debugf("%s: optimal flight level resolved to %.0f ft", s.Phase, altTarget/flight.Foot)
		altMode = flight.KindLiteral
	}

	dt0 := s.timeStep(defaultTimeStep)
	cur := start

	var seq flight.Sequence
	var prevLD float64
	haveLD, declines := false, 0

	for step := 0; step < maxSteps; step++ {
		s.annotate(&cur, s.driver)
		thrust, sfc := s.Propulsion.ComputeManual(cur.Mach, cur.Altitude, s.ThrustRate, s.EngineSetting)
		sinSlope := math.Clamp((thrust-cur.Drag)/(cur.Mass*atmos.Gravity), -1, 1)
		cur.Thrust, cur.SFC, cur.ThrustRate = thrust, sfc, s.ThrustRate
		cur.Slope = gomath.Asin(sinSlope)
		seq = append(seq, cur)

		if altMode == flight.KindLiteral && cur.Altitude == altTarget {
			return seq, nil
		}
		if s.stopSpeed && cur.Speed(s.stopKind) == s.stopValue {
			return seq, nil
		}

		if altMode == flight.KindOptimal {
			// The climb tops out where lift over drag stops improving;
			// require a few consecutive declines so one noisy step does
			// not end it, then drop the declining points.
			ld := cur.CL / cur.CD
			if haveLD && ld < prevLD {
				if declines++; declines >= s.optimalSteps() {
					if n := declines; len(seq) > n {
						seq = seq[:len(seq)-n]
					}
					return seq, nil
				}
			} else {
				declines = 0
			}
			prevLD, haveLD = ld, true
		}

		vz := cur.TAS * sinSlope
		dt := dt0
		nextAlt := cur.Altitude + vz*dt
		done := false
		if altMode == flight.KindLiteral {
			if crossed(cur.Altitude, nextAlt, altTarget) {
				// truncate the step to land exactly on the target
				dt *= (altTarget - cur.Altitude) / (nextAlt - cur.Altitude)
				nextAlt = altTarget
				done = true
			} else if util.Sign(vz) != util.Sign(altTarget-cur.Altitude) {
				return nil, &StalledError{
					Phase:   s.Phase,
					Reason:  fmt.Sprintf("cannot reach %.0f m at thrust rate %.2f", altTarget, s.ThrustRate),
					Partial: seq,
				}
			}
		}

		prev := cur
		cur.Time += dt
		cur.GroundDistance += cur.TAS * gomath.Cos(cur.Slope) * dt
		cur.Mass -= sfc * thrust * dt
		cur.Altitude = nextAlt
		cur.CompleteSpeeds(s.driver)

		if s.stopSpeed {
			before, after := prev.Speed(s.stopKind), cur.Speed(s.stopKind)
			if crossed(before, after, s.stopValue) {
				// Truncate the step to the crossing and pin the stop
				// speed exactly; the held speed ends up a hair off its
				// law on this one terminal point.
				dt *= (s.stopValue - before) / (after - before)
				cur = prev
				cur.Time += dt
				cur.GroundDistance += cur.TAS * gomath.Cos(cur.Slope) * dt
				cur.Mass -= sfc * thrust * dt
				cur.Altitude += vz * dt
				cur.SetSpeed(s.stopKind, s.stopValue)
				cur.CompleteSpeeds(s.stopKind)
				done = true
			} else if util.Sign(after-before) != util.Sign(s.stopValue-before) {
				// The stop speed is receding: under a fixed speed law the
				// trend is monotone, so the goal will never be reached.
				return nil, &StalledError{
					Phase:   s.Phase,
					Reason:  fmt.Sprintf("%s moving away from %.3f at thrust rate %.2f", s.stopKind, s.stopValue, s.ThrustRate),
					Partial: seq,
				}
			}
		}

		if done {
			s.annotate(&cur, s.driver)
			cur.Thrust, cur.SFC = s.Propulsion.ComputeManual(cur.Mach, cur.Altitude, s.ThrustRate, s.EngineSetting)
			cur.ThrustRate = s.ThrustRate
			seq = append(seq, cur)
			return seq, nil
		}
	}

	return nil, &StalledError{Phase: s.Phase, Reason: "step limit exceeded", Partial: seq}
}
