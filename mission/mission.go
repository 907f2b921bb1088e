// mission/mission.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package mission composes segments into phases and whole routes, and
// solves route-level constraints such as a required total range.
package mission

import (
	"fmt"

	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/segment"
)

// Phase is a named, ordered run of segments flown back to back; each
// segment starts from its predecessor's final state. A Phase is itself a
// segment.Segment, so phases nest.
type Phase struct {
	Name     string
	Segments []segment.Segment
}

func (p Phase) ComputeFrom(start flight.Point) (flight.Sequence, error) {
	var seq flight.Sequence
	cur := start
	for i, s := range p.Segments {
		part, err := s.ComputeFrom(cur)
		if err != nil {
			return nil, fmt.Errorf("phase %s, segment %d: %w", p.Name, i, err)
		}
		seq = seq.Extend(part)
		cur = seq.Last()
	}
	return seq, nil
}
