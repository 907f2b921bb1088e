// flight/sequence.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Sequence is the time-ordered series of points produced by a segment or
// a whole mission. Points are append-only; time and ground distance never
// decrease along a well-formed sequence.
type Sequence []Point

func (s Sequence) First() Point { return s[0] }
func (s Sequence) Last() Point  { return s[len(s)-1] }

// Duration returns the elapsed time covered by the sequence in seconds.
func (s Sequence) Duration() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Last().Time - s.First().Time
}

// FuelBurned returns the mass consumed over the sequence in kg.
func (s Sequence) FuelBurned() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.First().Mass - s.Last().Mass
}

// GroundDistance returns the distance covered by the sequence in m.
func (s Sequence) GroundDistance() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Last().GroundDistance - s.First().GroundDistance
}

// Extend appends the points of next, dropping next's first point when it
// duplicates the current last point (each segment starts from its
// predecessor's final state).
func (s Sequence) Extend(next Sequence) Sequence {
	if len(s) > 0 && len(next) > 0 {
		p, q := s.Last(), next.First()
		if p.Time == q.Time && p.Altitude == q.Altitude && p.GroundDistance == q.GroundDistance {
			next = next[1:]
		}
	}
	return append(s, next...)
}

// SequenceSOA is the column-oriented form of a Sequence; one slice per
// field compresses far better than an array of structs and is what the
// serialized representation stores.
type SequenceSOA struct {
	Time           []float64 `msgpack:"time"`
	Altitude       []float64 `msgpack:"altitude"`
	GroundDistance []float64 `msgpack:"ground_distance"`
	Mass           []float64 `msgpack:"mass"`
	TAS            []float64 `msgpack:"true_airspeed"`
	EAS            []float64 `msgpack:"equivalent_airspeed"`
	Mach           []float64 `msgpack:"mach"`
	EngineSetting  []int8    `msgpack:"engine_setting"`
	Thrust         []float64 `msgpack:"thrust"`
	ThrustRate     []float64 `msgpack:"thrust_rate"`
	SFC            []float64 `msgpack:"sfc"`
	Drag           []float64 `msgpack:"drag"`
	CL             []float64 `msgpack:"cl"`
	CD             []float64 `msgpack:"cd"`
	Slope          []float64 `msgpack:"slope"`
	Phase          []string  `msgpack:"phase"`
}

// ToSOA converts the sequence to its column-oriented form.
func (s Sequence) ToSOA() SequenceSOA {
	n := len(s)
	soa := SequenceSOA{
		Time:           make([]float64, n),
		Altitude:       make([]float64, n),
		GroundDistance: make([]float64, n),
		Mass:           make([]float64, n),
		TAS:            make([]float64, n),
		EAS:            make([]float64, n),
		Mach:           make([]float64, n),
		EngineSetting:  make([]int8, n),
		Thrust:         make([]float64, n),
		ThrustRate:     make([]float64, n),
		SFC:            make([]float64, n),
		Drag:           make([]float64, n),
		CL:             make([]float64, n),
		CD:             make([]float64, n),
		Slope:          make([]float64, n),
		Phase:          make([]string, n),
	}
	for i, p := range s {
		soa.Time[i] = p.Time
		soa.Altitude[i] = p.Altitude
		soa.GroundDistance[i] = p.GroundDistance
		soa.Mass[i] = p.Mass
		soa.TAS[i] = p.TAS
		soa.EAS[i] = p.EAS
		soa.Mach[i] = p.Mach
		soa.EngineSetting[i] = int8(p.EngineSetting)
		soa.Thrust[i] = p.Thrust
		soa.ThrustRate[i] = p.ThrustRate
		soa.SFC[i] = p.SFC
		soa.Drag[i] = p.Drag
		soa.CL[i] = p.CL
		soa.CD[i] = p.CD
		soa.Slope[i] = p.Slope
		soa.Phase[i] = p.Phase
	}
	return soa
}

// ToSequence converts the column-oriented form back to a Sequence.
func (soa SequenceSOA) ToSequence() Sequence {
	s := make(Sequence, len(soa.Time))
	for i := range s {
		s[i] = Point{
			Time:           soa.Time[i],
			Altitude:       soa.Altitude[i],
			GroundDistance: soa.GroundDistance[i],
			Mass:           soa.Mass[i],
			TAS:            soa.TAS[i],
			EAS:            soa.EAS[i],
			Mach:           soa.Mach[i],
			EngineSetting:  EngineSetting(soa.EngineSetting[i]),
			Thrust:         soa.Thrust[i],
			ThrustRate:     soa.ThrustRate[i],
			SFC:            soa.SFC[i],
			Drag:           soa.Drag[i],
			CL:             soa.CL[i],
			CD:             soa.CD[i],
			Slope:          soa.Slope[i],
			Phase:          soa.Phase[i],
		}
	}
	return s
}

// Encode writes the sequence to w as zstd-compressed msgpack of its
// column-oriented form.
func (s Sequence) Encode(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(s.ToSOA()); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// DecodeSequence reads a sequence written by Encode.
func DecodeSequence(r io.Reader) (Sequence, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var soa SequenceSOA
	if err := msgpack.NewDecoder(zr).Decode(&soa); err != nil {
		return nil, fmt.Errorf("decoding sequence: %w", err)
	}
	return soa.ToSequence(), nil
}

var csvHeader = []string{"time", "altitude", "ground_distance", "mass",
	"true_airspeed", "equivalent_airspeed", "mach", "engine_setting",
	"thrust", "thrust_rate", "sfc", "drag", "cl", "cd", "slope", "phase"}

// WriteCSV writes the sequence as CSV with a header row, one row per
// point, for consumption by spreadsheet or plotting tools.
func (s Sequence) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	g := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, p := range s {
		rec := []string{g(p.Time), g(p.Altitude), g(p.GroundDistance), g(p.Mass),
			g(p.TAS), g(p.EAS), g(p.Mach), p.EngineSetting.String(),
			g(p.Thrust), g(p.ThrustRate), g(p.SFC), g(p.Drag),
			g(p.CL), g(p.CD), g(p.Slope), p.Phase}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
