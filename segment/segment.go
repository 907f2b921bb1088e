// segment/segment.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package segment implements the mission building blocks: quasi-steady
// integrations of one flight phase each, from a start point to a target.
package segment

import (
	"fmt"

	"github.com/skadler/missim/aero"
	"github.com/skadler/missim/atmos"
	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/log"
	"github.com/skadler/missim/propulsion"
)

// Segment computes the point sequence from a start state to the
// segment's target. The returned sequence begins at the start point
// (with its aerodynamic fields filled in) and ends exactly on the
// target. A *StalledError means the target is unreachable; the partial
// sequence it carries shows how far the integration got.
type Segment interface {
	ComputeFrom(start flight.Point) (flight.Sequence, error)
}

// Config collects what every segment type needs. TimeStep zero selects
// the per-type default.
type Config struct {
	Propulsion    propulsion.Model
	Polar         *aero.Polar
	ReferenceArea float64 // m^2
	ThrustRate    float64 // throttle for manually-rated segments
	EngineSetting flight.EngineSetting
	TimeStep      float64 // s
	Phase         string  // label recorded in the output points
	// OptimalStopSteps is how many consecutive lift-to-drag declines end
	// a climb toward the optimal altitude; zero selects 2. Larger values
	// reject more integration noise at coarse time steps.
	OptimalStopSteps int
	Lg               *log.Logger
}

const (
	defaultTimeStep       = 0.2
	defaultCruiseTimeStep = 60.0
	defaultOptimalSteps   = 2

	// maxSteps bounds any single segment integration.
	maxSteps = 1_000_000
)

func (c *Config) check(kind string) error {
	if c.Propulsion == nil {
		return fmt.Errorf("%s: propulsion model is required", kind)
	}
	if c.Polar == nil {
		return fmt.Errorf("%s: drag polar is required", kind)
	}
	if c.ReferenceArea <= 0 {
		return fmt.Errorf("%s: reference area must be positive, got %g", kind, c.ReferenceArea)
	}
	if c.TimeStep < 0 {
		return fmt.Errorf("%s: time step must be non-negative, got %g", kind, c.TimeStep)
	}
	return nil
}

func (c *Config) timeStep(dflt float64) float64 {
	if c.TimeStep > 0 {
		return c.TimeStep
	}
	return dflt
}

// StalledError reports an integration that cannot reach its target, for
// example a climb whose thrust cannot overcome drag. Partial holds the
// points computed up to the stall.
type StalledError struct {
	Phase   string
	Reason  string
	Partial flight.Sequence
}

func (e *StalledError) Error() string {
	at := ""
	if len(e.Partial) > 0 {
		p := e.Partial.Last()
		at = fmt.Sprintf(" at t=%.1fs, %.0fm, %.1fm/s", p.Time, p.Altitude, p.TAS)
	}
	return fmt.Sprintf("%s: stalled%s: %s", e.Phase, at, e.Reason)
}

// annotate fills in the aerodynamic state of p for level or quasi-level
// flight (lift equals weight) and returns the atmospheric conditions.
func (c *Config) annotate(p *flight.Point, driver flight.SpeedKind) atmos.Conditions {
	cond := p.CompleteSpeeds(driver)
	q := cond.DynamicPressure(p.TAS)
	p.CL = p.Mass * atmos.Gravity / (q * c.ReferenceArea)
	p.CD = c.Polar.CD(p.CL)
	p.Drag = q * c.ReferenceArea * p.CD
	p.EngineSetting = c.EngineSetting
	p.Phase = c.Phase
	return cond
}

// crossed reports whether goal lies between prev and next, moving from
// prev; landing exactly on the goal counts.
func crossed(prev, next, goal float64) bool {
	return (prev < goal && goal <= next) || (prev > goal && goal >= next)
}
