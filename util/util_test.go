// util/util_test.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"path/filepath"
	"testing"
)

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 {
		t.Errorf("Select(true, 1, 2) != 1")
	}
	if Select(false, 1, 2) != 2 {
		t.Errorf("Select(false, 1, 2) != 2")
	}
}

func TestMapSlice(t *testing.T) {
	got := MapSlice([]int{1, 2, 3}, func(v int) int { return 2 * v })
	want := []int{2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MapSlice: got %v, expected %v", got, want)
			break
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(-3.5) != -1 || Sign(0.0) != 0 || Sign(12.0) != 1 {
		t.Errorf("Sign: %v %v %v", Sign(-3.5), Sign(0.0), Sign(12.0))
	}
}

func TestStoreLoadObject(t *testing.T) {
	type rec struct {
		Name   string
		Values []float64
	}
	path := filepath.Join(t.TempDir(), "sub", "obj.msgpack.zst")

	in := rec{Name: "cruise", Values: []float64{1, 2.5, -3}}
	if err := StoreObject(path, in); err != nil {
		t.Fatalf("StoreObject: %v", err)
	}

	var out rec
	if err := LoadObject(path, &out); err != nil {
		t.Fatalf("LoadObject: %v", err)
	}
	if out.Name != in.Name || len(out.Values) != len(in.Values) {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
	for i := range in.Values {
		if out.Values[i] != in.Values[i] {
			t.Errorf("value %d: got %g, expected %g", i, out.Values[i], in.Values[i])
		}
	}

	if err := LoadObject(filepath.Join(t.TempDir(), "missing"), &out); err == nil {
		t.Errorf("expected error loading missing file")
	}
}
