// mission/runner.go
// Copyright(c) 2024-2026 missim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mission

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/skadler/missim/flight"
	"github.com/skadler/missim/log"
	"github.com/skadler/missim/util"
)

// Runner computes a batch of mission definitions concurrently; each
// mission itself stays single threaded. When OutputDir is set, every
// computed sequence is also stored there as <name>.msgpack.zst.
type Runner struct {
	Workers   int    // 0 selects NumCPU
	OutputDir string // optional
	Lg        *log.Logger
}

// Run computes all definitions and returns their sequences in input
// order. The first failure cancels the remaining work.
func (r *Runner) Run(ctx context.Context, defs []*Definition) ([]flight.Sequence, error) {
	g, ctx := errgroup.WithContext(ctx)
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)
	r.Lg.Debugf("computing %d missions on %d workers: %v", len(defs), workers,
		util.MapSlice(defs, func(d *Definition) string { return d.Name }))

	results := make([]flight.Sequence, len(defs))
	for i, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			route, start, err := def.Build(r.Lg)
			if err != nil {
				return err
			}
			seq, err := route.ComputeFrom(start)
			if err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}
			results[i] = seq
			r.Lg.Infof("%s: %d points, %.0f kg fuel, %.2f h",
				def.Name, len(seq), seq.FuelBurned(), seq.Duration()/3600)

			if r.OutputDir != "" {
				path := filepath.Join(r.OutputDir, def.Name+".msgpack.zst")
				if err := util.StoreObject(path, seq.ToSOA()); err != nil {
					return fmt.Errorf("storing %s: %w", path, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
