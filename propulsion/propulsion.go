// propulsion/propulsion.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package propulsion provides the thrust and fuel-consumption models the
// mission segments draw on.
package propulsion

import (
	"fmt"

	"github.com/skadler/missim/flight"
)

// Model computes thrust and specific fuel consumption at a flight
// condition. Implementations must make ComputeRegulated the inverse of
// ComputeManual with respect to thrust and thrust rate.
type Model interface {
	// ComputeManual returns the thrust (N) and SFC (kg/N/s) produced at
	// the given throttle setting.
	ComputeManual(mach, altitude, thrustRate float64, setting flight.EngineSetting) (thrust, sfc float64)

	// ComputeRegulated returns the SFC and throttle setting that produce
	// the requested thrust. It fails when the requested thrust is out of
	// reach of the throttle range.
	ComputeRegulated(mach, altitude, thrust float64, setting flight.EngineSetting) (sfc, thrustRate float64, err error)

	// MaxThrust returns the thrust (N) at full throttle.
	MaxThrust(mach, altitude float64, setting flight.EngineSetting) float64

	// InstalledWeight returns the installed weight (kg) of the whole
	// installation, pylons and nacelles included.
	InstalledWeight() float64

	// Length returns the engine length in m.
	Length() float64

	// NacelleDiameter returns the nacelle diameter in m.
	NacelleDiameter() float64
}

// FuelEngineSet models count identical engines operated at the same
// rating: thrust adds up, SFC is that of one engine.
type FuelEngineSet struct {
	Engine Model
	Count  int
}

func NewFuelEngineSet(engine Model, count int) (*FuelEngineSet, error) {
	if count < 1 {
		return nil, fmt.Errorf("engine count must be at least 1, got %d", count)
	}
	return &FuelEngineSet{Engine: engine, Count: count}, nil
}

func (s *FuelEngineSet) ComputeManual(mach, altitude, thrustRate float64, setting flight.EngineSetting) (float64, float64) {
	thrust, sfc := s.Engine.ComputeManual(mach, altitude, thrustRate, setting)
	return thrust * float64(s.Count), sfc
}

func (s *FuelEngineSet) ComputeRegulated(mach, altitude, thrust float64, setting flight.EngineSetting) (float64, float64, error) {
	return s.Engine.ComputeRegulated(mach, altitude, thrust/float64(s.Count), setting)
}

func (s *FuelEngineSet) MaxThrust(mach, altitude float64, setting flight.EngineSetting) float64 {
	return s.Engine.MaxThrust(mach, altitude, setting) * float64(s.Count)
}

func (s *FuelEngineSet) InstalledWeight() float64 {
	return s.Engine.InstalledWeight() * float64(s.Count)
}

func (s *FuelEngineSet) Length() float64 { return s.Engine.Length() }

func (s *FuelEngineSet) NacelleDiameter() float64 { return s.Engine.NacelleDiameter() }
