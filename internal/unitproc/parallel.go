// Package unitproc provides concurrent compilation-unit processing utilities.
package unitproc

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"
	"github.com/stephengroombbc/unusedapi/pkg/project"
)

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker
// count. 2x is optimal for workloads mixing computation with indexer I/O.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each unit is processed.
type ProgressFunc func()

// MapUnits processes units in parallel and returns one result per unit, in
// unit order. fn must not fail; per-unit degradation is the callee's job.
// Uses 2x NumCPU workers by default.
func MapUnits[T any](ctx context.Context, units []project.Unit, fn func(context.Context, project.Unit) T) []T {
	return MapUnitsN(ctx, units, 0, fn, nil)
}

// MapUnitsN processes units with configurable worker count and progress
// callback. If maxWorkers is <= 0, defaults to 2x NumCPU. Results keep unit
// order regardless of completion order.
func MapUnitsN[T any](ctx context.Context, units []project.Unit, maxWorkers int, fn func(context.Context, project.Unit) T, onProgress ProgressFunc) []T {
	if len(units) == 0 {
		return nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, len(units))

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, unit := range units {
		i, unit := i, unit
		p.Go(func() {
			if ctx.Err() != nil {
				if onProgress != nil {
					onProgress()
				}
				return
			}

			results[i] = fn(ctx, unit)

			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	return results
}
