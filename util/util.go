// util/util.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"golang.org/x/exp/constraints"
)

// Select returns a if sel is true and b otherwise; it is a terser
// replacement for an if/else when initializing a value.
func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// MapSlice returns a new slice with f applied to each element of s.
func MapSlice[F, T any](s []F, f func(F) T) []T {
	r := make([]T, len(s))
	for i, v := range s {
		r[i] = f(v)
	}
	return r
}

// Sign returns -1, 0, or 1 according to the sign of v.
func Sign[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}
