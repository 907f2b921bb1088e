// propulsion/rubber.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package propulsion

import (
	"fmt"
	gomath "math"

	"github.com/skadler/missim/atmos"
	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/log"
	"github.com/skadler/missim/math"
)

// RubberEngineParams sizes a parametric turbofan. DeltaT4Climb and
// DeltaT4Cruise are turbine temperature offsets from the takeoff rating;
// zero values select the usual -50 K / -100 K margins.
type RubberEngineParams struct {
	BypassRatio          float64
	OverallPressureRatio float64
	TurbineInletTemp     float64 // K, takeoff rating
	DeltaT4Climb         float64 // K, <= 0
	DeltaT4Cruise        float64 // K, <= DeltaT4Climb
	MTOThrust            float64 // N, sea level static takeoff thrust of one engine
	MaxMach              float64
	DesignAltitude       float64 // m
}

// RubberEngine is a statistically calibrated turbofan deck: maximum
// thrust and SFC correlations in Mach, altitude, and throttle, scaled by
// the cycle parameters. The correlations are fitted for Mach 0..MaxMach
// and altitudes up to 20 km; use outside that envelope is reported to the
// logger and extrapolated.
type RubberEngine struct {
	RubberEngineParams
	Lg *log.Logger
}

const (
	defaultDeltaT4Climb  = -50
	defaultDeltaT4Cruise = -100
)

func NewRubberEngine(p RubberEngineParams, lg *log.Logger) (*RubberEngine, error) {
	if p.MTOThrust <= 0 {
		return nil, fmt.Errorf("MTO thrust must be positive, got %g", p.MTOThrust)
	}
	if p.BypassRatio <= 0 || p.OverallPressureRatio <= 1 || p.TurbineInletTemp <= 0 {
		return nil, fmt.Errorf("implausible cycle parameters: BPR %g, OPR %g, T4 %g",
			p.BypassRatio, p.OverallPressureRatio, p.TurbineInletTemp)
	}
	if p.DeltaT4Climb == 0 {
		p.DeltaT4Climb = defaultDeltaT4Climb
	}
	if p.DeltaT4Cruise == 0 {
		p.DeltaT4Cruise = defaultDeltaT4Cruise
	}
	return &RubberEngine{RubberEngineParams: p, Lg: lg}, nil
}

// deltaT4 maps an engine setting to its turbine temperature offset.
func (e *RubberEngine) deltaT4(setting flight.EngineSetting) float64 {
	switch setting {
	case flight.Takeoff:
		return 0
	case flight.Climb:
		return e.DeltaT4Climb
	default: // cruise and idle run at the cruise rating
		return e.DeltaT4Cruise
	}
}

func (e *RubberEngine) checkEnvelope(mach, altitude float64) {
	if mach < 0 || mach > e.MaxMach {
		e.Lg.Warnf("Mach %.3f outside the fitted range [0, %.2f]", mach, e.MaxMach)
	}
	if altitude > atmos.StratosphereCeiling {
		e.Lg.Warnf("altitude %.0f m above the fitted ceiling of %d m", altitude, atmos.StratosphereCeiling)
	}
}

// maxThrustRatio returns max thrust divided by sea level static takeoff
// thrust. The Mach polynomial coefficients and the overall level vary
// linearly between their sea level and tropopause fits; density handles
// the altitude dependence beyond the tropopause.
func (e *RubberEngine) maxThrustRatio(mach, altitude, deltaT4 float64) float64 {
	c := atmos.At(altitude)
	x := math.Clamp(altitude, 0, atmos.TropopauseAltitude) / atmos.TropopauseAltitude

	a := math.Lerp(x, 0.359, 0.511) + 2.0e-3*(e.OverallPressureRatio-30)
	b := math.Lerp(x, -0.730, -0.681) + 9.0e-3*(e.OverallPressureRatio-30)
	g := math.Lerp(x, 0.955, 1.13165) *
		(1 + 1.614e-3*(e.TurbineInletTemp-1500+deltaT4)) *
		(1 + 0.04*(e.BypassRatio-5)) *
		(1 - 5.952e-3*(e.OverallPressureRatio-30))

	return g * c.DensityRatio() * (1 + b*mach + a*math.Sqr(mach))
}

// sfcAtMaxThrust returns the SFC (kg/N/s) at full throttle. The slopes of
// the Mach and bypass-ratio terms themselves vary linearly with altitude
// up to the tropopause.
func (e *RubberEngine) sfcAtMaxThrust(mach, altitude float64) float64 {
	c := atmos.At(altitude)
	hb := math.Clamp(altitude, 0, atmos.TropopauseAltitude)

	a2 := 1.090822e-6 - 9.510618e-10*hb
	b1 := -6.58e-7 - 1.166469e-10*hb
	b2 := 1.32e-5 + 1.417805e-9*hb
	cc := -1.05e-7 + 1.136763e-12*hb

	return gomath.Sqrt(c.TemperatureRatio())*
		(mach*(6.54e-12*e.MTOThrust+a2+2.146180e-6*e.BypassRatio)+b1*e.BypassRatio+b2) +
		cc*(e.OverallPressureRatio-30)
}

// sfcRatio returns the part-throttle SFC penalty relative to full
// throttle. The fit is singular where its reference throttle reaches 1,
// at 1562.5 m below the design altitude; the infinity is returned as is
// and left to the caller.
func (e *RubberEngine) sfcRatio(altitude, thrustRate float64) float64 {
	dh := altitude - e.DesignAltitude
	fi := 0.85 - 9.6e-5*dh
	b := gomath.Min(0.998, 0.995-3.4e-5*dh)
	return (1-b)*math.Sqr((thrustRate-fi)/(1-fi)) + b
}

func (e *RubberEngine) MaxThrust(mach, altitude float64, setting flight.EngineSetting) float64 {
	return e.maxThrustRatio(mach, altitude, e.deltaT4(setting)) * e.MTOThrust
}

func (e *RubberEngine) ComputeManual(mach, altitude, thrustRate float64, setting flight.EngineSetting) (float64, float64) {
	e.checkEnvelope(mach, altitude)
	thrust := e.MaxThrust(mach, altitude, setting) * thrustRate
	sfc := e.sfcAtMaxThrust(mach, altitude) * e.sfcRatio(altitude, thrustRate)
	return thrust, sfc
}

// Throttle settings slightly above 1 are admitted during regulation so
// that roundoff near full thrust does not break the bracket.
const maxRegulatedRate = 1.05

func (e *RubberEngine) ComputeRegulated(mach, altitude, thrust float64, setting flight.EngineSetting) (float64, float64, error) {
	e.checkEnvelope(mach, altitude)

	rate, err := math.FindRoot(func(r float64) float64 {
		t, _ := e.ComputeManual(mach, altitude, r, setting)
		return t - thrust
	}, 0, maxRegulatedRate, 1e-8)
	if err != nil {
		return 0, 0, fmt.Errorf("regulating to %.0f N at Mach %.3f, %.0f m: %w",
			thrust, mach, altitude, err)
	}
	if rate > 1 {
		e.Lg.Warnf("thrust regulation exceeded full throttle: rate %.4f", rate)
	}

	_, sfc := e.ComputeManual(mach, altitude, rate, setting)
	return sfc, rate, nil
}

// InstalledWeight estimates the installed weight (kg) of one engine,
// pylon and nacelle included.
func (e *RubberEngine) InstalledWeight() float64 {
	var w float64
	if e.MTOThrust < 80000 {
		w = 22.2e-3 * e.MTOThrust
	} else {
		w = 14.1e-3*e.MTOThrust + 648
	}
	return 1.2 * w
}

// Length estimates the engine length in m.
func (e *RubberEngine) Length() float64 {
	return 0.49 * gomath.Pow(e.MTOThrust/1000, 0.4) * gomath.Pow(e.MaxMach, 0.2)
}

// NacelleDiameter estimates the nacelle diameter in m, installation
// margin included.
func (e *RubberEngine) NacelleDiameter() float64 {
	return 1.1 * 0.15 * gomath.Sqrt(e.MTOThrust/1000) * gomath.Exp(0.04*e.BypassRatio)
}
