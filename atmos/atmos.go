// atmos/atmos.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package atmos implements the International Standard Atmosphere up to
// 20 km geopotential altitude: the linear-lapse troposphere below 11 km
// and the isothermal lower stratosphere above it. All quantities are SI.
package atmos

import (
	gomath "math"

	"github.com/skadler/missim/math"
)

const (
	SeaLevelTemperature = 288.15  // K
	SeaLevelPressure    = 101325  // Pa
	SeaLevelDensity     = 1.225   // kg/m^3
	Gravity             = 9.80665 // m/s^2
	GasConstant         = 287.05  // J/(kg K), dry air

	TropopauseAltitude    = 11000  // m
	StratosphereCeiling   = 20000  // m, model validity limit
	tropoLapseRate        = 0.0065 // K/m
	stratoTemperature     = 216.65 // K
	gammaAir              = 1.4
	pressureLapseExponent = 5.25588
)

// Conditions bundles the static state at one altitude so that a single
// model evaluation can feed several derived quantities.
type Conditions struct {
	Altitude    float64 // m
	Temperature float64 // K
	Pressure    float64 // Pa
	Density     float64 // kg/m^3
}

// tropopausePressure is the static pressure at 11 km.
var tropopausePressure = SeaLevelPressure *
	gomath.Pow(1-tropoLapseRate*TropopauseAltitude/SeaLevelTemperature, pressureLapseExponent)

// At returns the standard-day conditions at the given geopotential
// altitude. The model is defined for altitudes up to 20 km; values
// outside that range are extrapolated with the stratosphere law above
// and the troposphere law below sea level, without diagnostics.
func At(altitude float64) Conditions {
	c := Conditions{Altitude: altitude}
	if altitude <= TropopauseAltitude {
		c.Temperature = SeaLevelTemperature - tropoLapseRate*altitude
		c.Pressure = SeaLevelPressure *
			gomath.Pow(1-tropoLapseRate*altitude/SeaLevelTemperature, pressureLapseExponent)
	} else {
		c.Temperature = stratoTemperature
		c.Pressure = tropopausePressure *
			gomath.Exp(-Gravity*(altitude-TropopauseAltitude)/(GasConstant*stratoTemperature))
	}
	c.Density = c.Pressure / (GasConstant * c.Temperature)
	return c
}

func Temperature(altitude float64) float64 { return At(altitude).Temperature }
func Pressure(altitude float64) float64    { return At(altitude).Pressure }
func Density(altitude float64) float64     { return At(altitude).Density }

// SpeedOfSound returns the local speed of sound in m/s.
func (c Conditions) SpeedOfSound() float64 {
	return gomath.Sqrt(gammaAir * GasConstant * c.Temperature)
}

// DensityRatio is sigma, the density relative to sea level.
func (c Conditions) DensityRatio() float64 {
	return c.Density / SeaLevelDensity
}

// TemperatureRatio is theta, the static temperature relative to sea level.
func (c Conditions) TemperatureRatio() float64 {
	return c.Temperature / SeaLevelTemperature
}

// DynamicViscosity returns the air viscosity in Pa s via Sutherland's law.
func (c Conditions) DynamicViscosity() float64 {
	const mu0, t0, s = 1.716e-5, 273.15, 110.4
	t := c.Temperature
	return mu0 * gomath.Pow(t/t0, 1.5) * (t0 + s) / (t + s)
}

// DynamicPressure returns q for the given true airspeed.
func (c Conditions) DynamicPressure(tas float64) float64 {
	return 0.5 * c.Density * math.Sqr(tas)
}

// EASFromTAS converts true airspeed to equivalent airspeed.
func (c Conditions) EASFromTAS(tas float64) float64 {
	return tas * gomath.Sqrt(c.DensityRatio())
}

// TASFromEAS converts equivalent airspeed to true airspeed.
func (c Conditions) TASFromEAS(eas float64) float64 {
	return eas / gomath.Sqrt(c.DensityRatio())
}

// MachFromTAS converts true airspeed to Mach number.
func (c Conditions) MachFromTAS(tas float64) float64 {
	return tas / c.SpeedOfSound()
}

// TASFromMach converts Mach number to true airspeed.
func (c Conditions) TASFromMach(mach float64) float64 {
	return mach * c.SpeedOfSound()
}
