// segment/speed.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package segment

import (
	"fmt"

	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/util"
)

// SpeedChange accelerates or decelerates in level flight at fixed
// throttle until the target airspeed is reached.
type SpeedChange struct {
	Config
	Target flight.Target

	goalKind  flight.SpeedKind
	goalValue float64
}

func NewSpeedChange(cfg Config, target flight.Target) (*SpeedChange, error) {
	if err := cfg.check("speed change"); err != nil {
		return nil, err
	}
	if cfg.ThrustRate <= 0 {
		return nil, fmt.Errorf("speed change: thrust rate must be positive, got %g", cfg.ThrustRate)
	}

	s := &SpeedChange{Config: cfg, Target: target}

	nGoal := 0
	for _, k := range flight.SpeedKinds {
		switch v := target.SpeedValue(k); v.Kind {
		case flight.KindLiteral:
			nGoal++
			s.goalKind = k
			s.goalValue = v.Value
		case flight.KindFree:
		default:
			return nil, &flight.TargetError{Segment: "speed change",
				Reason: fmt.Sprintf("airspeed fields must be literal goals or free, got %s for %s", v.Kind, k)}
		}
	}
	if nGoal != 1 {
		return nil, &flight.TargetError{Segment: "speed change",
			Reason: fmt.Sprintf("exactly one airspeed goal required, got %d", nGoal)}
	}

	// Altitude is held by construction; a hold marker is accepted, a
	// literal is not (that is an altitude change segment's job).
	switch target.Altitude.Kind {
	case flight.KindFree, flight.KindHold:
	default:
		return nil, &flight.TargetError{Segment: "speed change",
			Reason: "altitude cannot be targeted while changing speed"}
	}
	if !target.GroundDistance.IsFree() {
		return nil, &flight.TargetError{Segment: "speed change",
			Reason: "ground distance targets belong to cruise segments"}
	}

	return s, nil
}

func (s *SpeedChange) ComputeFrom(start flight.Point) (flight.Sequence, error) {
	dt0 := s.timeStep(defaultTimeStep)
	cur := start

	var seq flight.Sequence
	for step := 0; step < maxSteps; step++ {
		s.annotate(&cur, flight.SpeedTAS)
		thrust, sfc := s.Propulsion.ComputeManual(cur.Mach, cur.Altitude, s.ThrustRate, s.EngineSetting)
		accel := (thrust - cur.Drag) / cur.Mass
		cur.Thrust, cur.SFC, cur.ThrustRate = thrust, sfc, s.ThrustRate
		cur.Slope = 0
		seq = append(seq, cur)

		prevGoal := cur.Speed(s.goalKind)
		if prevGoal == s.goalValue {
			return seq, nil
		}

		dt := dt0
		nextTAS := cur.TAS + accel*dt

		// Where the goal airspeed lands depends on the atmosphere only
		// through the fixed altitude, so a trial point maps the step.
		trial := cur
		trial.TAS = nextTAS
		trial.CompleteSpeeds(flight.SpeedTAS)
		nextGoal := trial.Speed(s.goalKind)

		done := false
		if crossed(prevGoal, nextGoal, s.goalValue) {
			dt *= (s.goalValue - prevGoal) / (nextGoal - prevGoal)
			nextTAS = cur.TAS + accel*dt
			done = true
		} else if util.Sign(nextGoal-prevGoal) != util.Sign(s.goalValue-prevGoal) {
			return nil, &StalledError{
				Phase:   s.Phase,
				Reason:  fmt.Sprintf("cannot reach %s %.2f at thrust rate %.2f", s.goalKind, s.goalValue, s.ThrustRate),
				Partial: seq,
			}
		}

		cur.Time += dt
		cur.GroundDistance += (cur.TAS + nextTAS) / 2 * dt
		cur.Mass -= sfc * thrust * dt
		cur.TAS = nextTAS
		cur.CompleteSpeeds(flight.SpeedTAS)

		if done {
			s.annotate(&cur, flight.SpeedTAS)
			cur.Thrust, cur.SFC = s.Propulsion.ComputeManual(cur.Mach, cur.Altitude, s.ThrustRate, s.EngineSetting)
			cur.ThrustRate = s.ThrustRate
			seq = append(seq, cur)
			return seq, nil
		}
	}

	return nil, &StalledError{Phase: s.Phase, Reason: "step limit exceeded", Partial: seq}
}
