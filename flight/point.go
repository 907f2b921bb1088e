// flight/point.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package flight defines the state record shared by all of the mission
// computation: the instantaneous flight point, the target specification
// that segments fly toward, and point sequences with their serialized
// forms. All quantities are SI; angles are radians.
package flight

import (
	"fmt"

	"github.com/skadler/missim/atmos"
)

// Unit conversion factors to SI.
const (
	Knot         = 0.514444 // m/s
	Foot         = 0.3048   // m
	NauticalMile = 1852.0   // m
)

// EngineSetting selects the rating the propulsion model runs at; it
// mostly determines the turbine temperature margin.
type EngineSetting int

const (
	Takeoff EngineSetting = iota
	Climb
	Cruise
	Idle
)

func (s EngineSetting) String() string {
	switch s {
	case Takeoff:
		return "takeoff"
	case Climb:
		return "climb"
	case Cruise:
		return "cruise"
	case Idle:
		return "idle"
	}
	return fmt.Sprintf("EngineSetting(%d)", int(s))
}

func ParseEngineSetting(s string) (EngineSetting, error) {
	switch s {
	case "takeoff":
		return Takeoff, nil
	case "climb":
		return Climb, nil
	case "cruise":
		return Cruise, nil
	case "idle":
		return Idle, nil
	}
	return 0, fmt.Errorf("%q: unknown engine setting", s)
}

func (s *EngineSetting) UnmarshalText(text []byte) error {
	v, err := ParseEngineSetting(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s EngineSetting) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SpeedKind identifies which of the three linked airspeed fields a
// segment treats as authoritative; the other two are re-derived from it
// and the local atmosphere.
type SpeedKind int

const (
	SpeedTAS SpeedKind = iota
	SpeedEAS
	SpeedMach
)

func (k SpeedKind) String() string {
	switch k {
	case SpeedTAS:
		return "true_airspeed"
	case SpeedEAS:
		return "equivalent_airspeed"
	case SpeedMach:
		return "mach"
	}
	return fmt.Sprintf("SpeedKind(%d)", int(k))
}

// Point is the aircraft state at one instant of the mission. Segments
// fill in the aerodynamic and propulsive fields as they integrate; a
// caller-provided start point only needs the kinematic ones.
type Point struct {
	Time           float64 // s since mission start
	Altitude       float64 // m
	GroundDistance float64 // m since mission start
	Mass           float64 // kg
	TAS            float64 // m/s
	EAS            float64 // m/s
	Mach           float64
	EngineSetting  EngineSetting
	Thrust         float64 // N
	ThrustRate     float64 // fraction of max thrust
	SFC            float64 // kg/N/s
	Drag           float64 // N
	CL             float64
	CD             float64
	Slope          float64 // flight path angle, radians
	Phase          string  // name of the phase that produced this point
}

// Speed returns the airspeed field selected by k.
func (p *Point) Speed(k SpeedKind) float64 {
	switch k {
	case SpeedEAS:
		return p.EAS
	case SpeedMach:
		return p.Mach
	}
	return p.TAS
}

// SetSpeed assigns the airspeed field selected by k.
func (p *Point) SetSpeed(k SpeedKind, v float64) {
	switch k {
	case SpeedEAS:
		p.EAS = v
	case SpeedMach:
		p.Mach = v
	default:
		p.TAS = v
	}
}

// CompleteSpeeds makes the three airspeed fields consistent, taking the
// field selected by driver as authoritative, and returns the atmospheric
// conditions at the point's altitude.
func (p *Point) CompleteSpeeds(driver SpeedKind) atmos.Conditions {
	c := atmos.At(p.Altitude)
	switch driver {
	case SpeedEAS:
		p.TAS = c.TASFromEAS(p.EAS)
	case SpeedMach:
		p.TAS = c.TASFromMach(p.Mach)
	}
	p.EAS = c.EASFromTAS(p.TAS)
	p.Mach = c.MachFromTAS(p.TAS)
	return c
}
