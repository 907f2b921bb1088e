// flight/target.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flight

import "fmt"

// ValueKind tags one field of a Target.
type ValueKind int

const (
	// KindFree leaves the field unconstrained.
	KindFree ValueKind = iota
	// KindLiteral sets a numeric goal for the field.
	KindLiteral
	// KindHold keeps the field at its value in the segment's start point.
	KindHold
	// KindOptimal (altitude only) climbs until the lift-to-drag ratio
	// stops improving.
	KindOptimal
	// KindOptimalFL (altitude only) is like KindOptimal but lands on the
	// 1000 ft flight level at or below the aerodynamic optimum.
	KindOptimalFL
)

func (k ValueKind) String() string {
	switch k {
	case KindFree:
		return "free"
	case KindLiteral:
		return "literal"
	case KindHold:
		return "hold"
	case KindOptimal:
		return "optimal"
	case KindOptimalFL:
		return "optimal_flight_level"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is one tagged field of a Target. The zero Value is free.
type Value struct {
	Kind  ValueKind
	Value float64 // meaningful for KindLiteral only
}

func Literal(v float64) Value { return Value{Kind: KindLiteral, Value: v} }
func Hold() Value             { return Value{Kind: KindHold} }
func Free() Value             { return Value{} }
func Optimal() Value          { return Value{Kind: KindOptimal} }
func OptimalFL() Value        { return Value{Kind: KindOptimalFL} }

func (v Value) IsFree() bool    { return v.Kind == KindFree }
func (v Value) IsLiteral() bool { return v.Kind == KindLiteral }
func (v Value) IsHold() bool    { return v.Kind == KindHold }

// Target states what a segment flies toward. Which combinations of set
// fields are admissible depends on the segment type; segments validate
// their target at construction and reject under- or over-constrained
// ones with a *TargetError.
type Target struct {
	Altitude       Value
	TAS            Value
	EAS            Value
	Mach           Value
	GroundDistance Value // relative to the segment's start point
}

// SpeedValue returns the target field for the given airspeed kind.
func (t Target) SpeedValue(k SpeedKind) Value {
	switch k {
	case SpeedEAS:
		return t.EAS
	case SpeedMach:
		return t.Mach
	}
	return t.TAS
}

// SpeedKinds lists the airspeed fields in the order segments scan them.
var SpeedKinds = [...]SpeedKind{SpeedTAS, SpeedEAS, SpeedMach}

// TargetError reports a target that the segment cannot fly: wrong number
// of constrained fields, or a sentinel on a field that does not accept it.
type TargetError struct {
	Segment string
	Reason  string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s: invalid target: %s", e.Segment, e.Reason)
}
