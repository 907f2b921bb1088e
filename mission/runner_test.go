// mission/runner_test.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/util"
)

func TestRunner(t *testing.T) {
	base, err := ParseDefinition([]byte(sampleDefinition))
	if err != nil {
		t.Fatal(err)
	}
	light, err := base.Clone()
	if err != nil {
		t.Fatal(err)
	}
	light.Name = "medium_range_light"
	light.Start.Mass = 65000

	dir := t.TempDir()
	r := &Runner{Workers: 2, OutputDir: dir}
	results, err := r.Run(context.Background(), []*Definition{base, light})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	for i, seq := range results {
		if len(seq) == 0 {
			t.Fatalf("result %d is empty", i)
		}
	}

	// the lighter aircraft burns less fuel over the same distance
	if results[1].FuelBurned() >= results[0].FuelBurned() {
		t.Errorf("light mission burned %.0f kg, heavy %.0f kg",
			results[1].FuelBurned(), results[0].FuelBurned())
	}

	// stored results round trip
	for _, name := range []string{"medium_range", "medium_range_light"} {
		path := filepath.Join(dir, name+".msgpack.zst")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing stored result %s: %v", path, err)
		}
		var soa flight.SequenceSOA
		if err := util.LoadObject(path, &soa); err != nil {
			t.Fatalf("loading %s: %v", path, err)
		}
		if len(soa.Time) == 0 {
			t.Errorf("%s: empty stored sequence", name)
		}
	}
}

func TestRunnerPropagatesFailure(t *testing.T) {
	bad, err := ParseDefinition([]byte(sampleDefinition))
	if err != nil {
		t.Fatal(err)
	}
	bad.Name = "broken"
	bad.Engine.MTOThrust = 0

	r := &Runner{Workers: 1}
	if _, err := r.Run(context.Background(), []*Definition{bad}); err == nil {
		t.Errorf("expected the runner to surface the build error")
	}
}

func TestRunnerHonorsContext(t *testing.T) {
	d, err := ParseDefinition([]byte(sampleDefinition))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Workers: 1}
	if _, err := r.Run(ctx, []*Definition{d}); err == nil {
		t.Errorf("expected a cancellation error")
	}
}
