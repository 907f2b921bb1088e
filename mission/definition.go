// mission/definition.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"bytes"
	"fmt"
	"os"

	"github.com/brunoga/deep"
	"gopkg.in/yaml.v3"

	"github.com/skadler/missim/aero"
	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/log"
	"github.com/skadler/missim/propulsion"
)

// EngineDef describes the rubber engine and its installation. All SI.
type EngineDef struct {
	BypassRatio          float64 `yaml:"bypass_ratio"`
	OverallPressureRatio float64 `yaml:"overall_pressure_ratio"`
	TurbineInletTemp     float64 `yaml:"turbine_inlet_temperature"`
	DeltaT4Climb         float64 `yaml:"delta_t4_climb"`
	DeltaT4Cruise        float64 `yaml:"delta_t4_cruise"`
	MTOThrust            float64 `yaml:"mto_thrust"`
	MaxMach              float64 `yaml:"max_mach"`
	DesignAltitude       float64 `yaml:"design_altitude"`
	Count                int     `yaml:"count"`
}

// PolarDef gives a drag polar either as explicit cl/cd arrays or as the
// parabolic form cd0 + k*cl^2 sampled up to max_cl. Arrays win when both
// are present.
type PolarDef struct {
	CL    []float64 `yaml:"cl"`
	CD    []float64 `yaml:"cd"`
	CD0   float64   `yaml:"cd0"`
	K     float64   `yaml:"k"`
	MaxCL float64   `yaml:"max_cl"`
}

func (d *PolarDef) build() (*aero.Polar, error) {
	if len(d.CL) > 0 {
		return aero.NewPolar(d.CL, d.CD)
	}
	if d.MaxCL <= 0 {
		return nil, fmt.Errorf("polar needs cl/cd arrays or cd0/k/max_cl")
	}
	if d.CD0 <= 0 || d.K < 0 {
		return nil, fmt.Errorf("parabolic polar needs cd0 > 0 and k >= 0, got cd0 %g, k %g", d.CD0, d.K)
	}
	return aero.ParabolicPolar(d.CD0, d.K, d.MaxCL), nil
}

// StartDef is the state the mission starts from.
type StartDef struct {
	Altitude       float64 `yaml:"altitude"`
	TrueAirspeed   float64 `yaml:"true_airspeed"`
	Mass           float64 `yaml:"mass"`
	GroundDistance float64 `yaml:"ground_distance"`
}

// Definition is the declarative form of a standard-profile mission, as
// read from a YAML file.
type Definition struct {
	Name              string    `yaml:"name"`
	Engine            EngineDef `yaml:"engine"`
	ReferenceArea     float64   `yaml:"reference_area"`
	LowSpeedPolar     PolarDef  `yaml:"low_speed_polar"`
	HighSpeedPolar    PolarDef  `yaml:"high_speed_polar"`
	CruiseMach        float64   `yaml:"cruise_mach"`
	ClimbThrustRate   float64   `yaml:"climb_thrust_rate"`
	DescentThrustRate float64   `yaml:"descent_thrust_rate"`
	FlightDistance    float64   `yaml:"flight_distance"`
	DistanceAccuracy  float64   `yaml:"distance_accuracy"`
	Start             StartDef  `yaml:"start"`
}

// LoadDefinition reads and parses a mission definition file. Unknown
// keys are rejected so a typo does not silently fall back to a default.
func LoadDefinition(path string) (*Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDefinition(b)
}

func ParseDefinition(b []byte) (*Definition, error) {
	var d Definition
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parsing mission definition: %w", err)
	}
	return &d, nil
}

// Clone returns an independent copy, for building per-case variations of
// a base mission without aliasing.
func (d *Definition) Clone() (*Definition, error) {
	return deep.Copy(d)
}

// Build turns the definition into a flyable route and its start point.
func (d *Definition) Build(lg *log.Logger) (*RangedRoute, flight.Point, error) {
	engine, err := propulsion.NewRubberEngine(propulsion.RubberEngineParams{
		BypassRatio:          d.Engine.BypassRatio,
		OverallPressureRatio: d.Engine.OverallPressureRatio,
		TurbineInletTemp:     d.Engine.TurbineInletTemp,
		DeltaT4Climb:         d.Engine.DeltaT4Climb,
		DeltaT4Cruise:        d.Engine.DeltaT4Cruise,
		MTOThrust:            d.Engine.MTOThrust,
		MaxMach:              d.Engine.MaxMach,
		DesignAltitude:       d.Engine.DesignAltitude,
	}, lg)
	if err != nil {
		return nil, flight.Point{}, fmt.Errorf("%s: %w", d.Name, err)
	}
	count := d.Engine.Count
	if count == 0 {
		count = 1
	}
	prop, err := propulsion.NewFuelEngineSet(engine, count)
	if err != nil {
		return nil, flight.Point{}, fmt.Errorf("%s: %w", d.Name, err)
	}

	low, err := d.LowSpeedPolar.build()
	if err != nil {
		return nil, flight.Point{}, fmt.Errorf("%s: low speed polar: %w", d.Name, err)
	}
	high, err := d.HighSpeedPolar.build()
	if err != nil {
		return nil, flight.Point{}, fmt.Errorf("%s: high speed polar: %w", d.Name, err)
	}

	route, err := NewStandardFlight(StandardFlightParams{
		Propulsion:        prop,
		ReferenceArea:     d.ReferenceArea,
		LowSpeedPolar:     low,
		HighSpeedPolar:    high,
		CruiseMach:        d.CruiseMach,
		ClimbThrustRate:   d.ClimbThrustRate,
		DescentThrustRate: d.DescentThrustRate,
		Lg:                lg,
	}, d.FlightDistance, d.DistanceAccuracy)
	if err != nil {
		return nil, flight.Point{}, fmt.Errorf("%s: %w", d.Name, err)
	}

	start := flight.Point{
		Altitude:       d.Start.Altitude,
		TAS:            d.Start.TrueAirspeed,
		Mass:           d.Start.Mass,
		GroundDistance: d.Start.GroundDistance,
	}
	start.CompleteSpeeds(flight.SpeedTAS)

	return route, start, nil
}
