// Package analyzer implements the cross-module reachability analysis: it
// collects per-unit symbol sets in parallel, unions the references into a
// project-wide index, and resolves each unit's public declarations against it.
package analyzer

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/stephengroombbc/unusedapi/internal/collector"
	"github.com/stephengroombbc/unusedapi/internal/index"
	"github.com/stephengroombbc/unusedapi/internal/unitproc"
	"github.com/stephengroombbc/unusedapi/pkg/models"
	"github.com/stephengroombbc/unusedapi/pkg/project"
)

// Analyzer finds publicly visible declarations never used outside their own
// module.
type Analyzer struct {
	collector *collector.Collector
	workers   int
	excluded  map[string]bool

	degraded atomic.Int64
}

// New creates an analyzer backed by the given index adapter.
func New(adapter index.Adapter) *Analyzer {
	a := &Analyzer{excluded: make(map[string]bool)}
	a.collector = collector.New(adapter).WithWarnings(func(path, reason string) {
		a.degraded.Add(1)
	})
	return a
}

// WithWorkers sets the collection worker count. Zero or negative means 2x
// NumCPU.
func (a *Analyzer) WithWorkers(n int) *Analyzer {
	a.workers = n
	return a
}

// WithExcludedModules suppresses violations from the named modules.
func (a *Analyzer) WithExcludedModules(modules []string) *Analyzer {
	for _, m := range modules {
		a.excluded[m] = true
	}
	return a
}

// WithWarnings sets a callback for units that degrade to an empty result.
func (a *Analyzer) WithWarnings(fn collector.WarnFunc) *Analyzer {
	a.collector.WithWarnings(func(path, reason string) {
		a.degraded.Add(1)
		if fn != nil {
			fn(path, reason)
		}
	})
	return a
}

// AnalyzeProject runs the full analysis over the project's units.
func (a *Analyzer) AnalyzeProject(ctx context.Context, units []project.Unit) (*models.UnusedAPIAnalysis, error) {
	return a.AnalyzeProjectWithProgress(ctx, units, nil)
}

// AnalyzeProjectWithProgress runs the analysis with an optional per-unit
// progress callback.
//
// Collection is an independent map over units. The reference union is a
// barrier: no unit can be resolved until every unit has been collected,
// because a declaration in one unit may only be used from another.
func (a *Analyzer) AnalyzeProjectWithProgress(ctx context.Context, units []project.Unit, onProgress unitproc.ProgressFunc) (*models.UnusedAPIAnalysis, error) {
	a.degraded.Store(0)

	analysis := &models.UnusedAPIAnalysis{
		Violations: make([]models.Violation, 0),
		Summary:    models.NewAnalysisSummary(),
	}
	analysis.Summary.TotalUnits = len(units)

	if len(units) == 0 {
		return analysis, nil
	}

	// Sort units by path so results are deterministic regardless of input
	// order or worker scheduling.
	sorted := make([]project.Unit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	collected := unitproc.MapUnitsN(ctx, sorted, a.workers, func(ctx context.Context, unit project.Unit) models.UnitSymbols {
		return a.collector.Collect(ctx, unit)
	}, onProgress)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	refs := NewReferenceIndex(collected)

	for i, unit := range sorted {
		symbols := collected[i]
		analysis.Summary.TotalDeclared += len(symbols.Declared)
		analysis.Summary.TotalReferences += len(symbols.Referenced)

		for _, offset := range Resolve(symbols.Declared, refs, a.excluded) {
			v := models.Violation{
				Unit:   unit.Path,
				Offset: offset.Offset,
				USR:    offset.USR,
				Module: offset.Module,
			}
			analysis.Violations = append(analysis.Violations, v)
			analysis.Summary.AddViolation(v)
		}
	}

	analysis.Summary.DegradedUnits = int(a.degraded.Load())
	return analysis, nil
}

// Resolve computes a unit's violations against the global reference index,
// sorted ascending by offset.
//
// A declaration is a violation only if no other module references it and no
// other module references its enclosing protocol or class. The enclosing
// check is type-level: external use of the type conservatively marks every
// public member reachable, trading false negatives for zero call-site
// analysis.
func Resolve(declared []models.DeclaredSymbol, refs *ReferenceIndex, excluded map[string]bool) []models.DeclaredSymbol {
	var unused []models.DeclaredSymbol
	for _, decl := range declared {
		if excluded[decl.Module] {
			continue
		}
		if refs.UsedOutside(decl.USR, decl.Module) {
			continue
		}
		if decl.EnclosingUSR != "" && refs.UsedOutside(decl.EnclosingUSR, decl.Module) {
			continue
		}
		unused = append(unused, decl)
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].Offset < unused[j].Offset })
	return unused
}
