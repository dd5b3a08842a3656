// Package collector extracts the declared and referenced symbol sets from a
// single compilation unit, applying visibility and exemption rules so that
// only reportable public declarations survive.
package collector

import (
	"context"

	"github.com/stephengroombbc/unusedapi/internal/index"
	"github.com/stephengroombbc/unusedapi/pkg/models"
	"github.com/stephengroombbc/unusedapi/pkg/project"
)

// WarnFunc is called when a unit degrades to an empty result.
// Receives the unit path and the reason. If nil, degradations are silent.
type WarnFunc func(path string, reason string)

// Collector produces per-unit symbol sets from the indexing backend.
type Collector struct {
	adapter index.Adapter
	onWarn  WarnFunc
}

// New creates a collector backed by the given index adapter.
func New(adapter index.Adapter) *Collector {
	return &Collector{adapter: adapter}
}

// WithWarnings sets the degradation callback.
func (c *Collector) WithWarnings(fn WarnFunc) *Collector {
	c.onWarn = fn
	return c
}

func (c *Collector) warn(unit project.Unit, reason string) {
	if c.onWarn != nil {
		c.onWarn(unit.Path, reason)
	}
}

// Collect extracts the unit's symbol sets. It never fails: missing build
// arguments or absent index data degrade the unit to an empty result with a
// warning, so the rest of the run proceeds at reduced precision.
func (c *Collector) Collect(ctx context.Context, unit project.Unit) models.UnitSymbols {
	if len(unit.Args) == 0 {
		c.warn(unit, "no build arguments")
		return models.UnitSymbols{}
	}

	tree, err := c.adapter.IndexUnit(ctx, unit)
	if err != nil || tree == nil {
		c.warn(unit, "index data unavailable")
		return models.UnitSymbols{}
	}

	structure, err := c.adapter.Structure(ctx, unit)
	if err != nil || structure == nil {
		c.warn(unit, "structure data unavailable")
		return models.UnitSymbols{}
	}

	source, err := c.adapter.Source(ctx, unit)
	if err != nil {
		c.warn(unit, "source unavailable")
		return models.UnitSymbols{}
	}

	u := &unitState{
		ctx:       ctx,
		unit:      unit,
		adapter:   c.adapter,
		module:    unit.Module(),
		tree:      tree,
		structure: structure,
		starts:    lineStarts(source),
	}

	referenced := u.collectReferences()
	declared := u.collectDeclared()

	return models.UnitSymbols{Declared: declared, Referenced: referenced}
}

// unitState carries the per-unit trees and lookup tables through collection.
type unitState struct {
	ctx       context.Context
	unit      project.Unit
	adapter   index.Adapter
	module    string
	tree      *index.Entity
	structure *index.StructureNode
	starts    []int64
}

// lineStarts returns the byte offset of each line start in source.
func lineStarts(source []byte) []int64 {
	starts := []int64{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, int64(i)+1)
		}
	}
	return starts
}

// entityOffset translates an entity's line/column to a byte offset. Column 0
// means the indexer reported no position. Line 0 with a valid column is
// treated as an offset from file start.
func (u *unitState) entityOffset(e *index.Entity) (int64, bool) {
	if e.Column <= 0 {
		return 0, false
	}
	if e.Line <= 0 {
		return int64(e.Column - 1), true
	}
	if e.Line > len(u.starts) {
		return 0, false
	}
	return u.starts[e.Line-1] + int64(e.Column-1), true
}

// exported reports whether the declaration named at the entity's offset is
// visible outside its module.
func (u *unitState) exported(e *index.Entity) bool {
	offset, ok := u.entityOffset(e)
	if !ok {
		return false
	}
	acc, ok := u.structure.AccessibilityAt(offset)
	return ok && acc.Exported()
}

// collectReferences gathers the set of symbols the unit mentions. Repeat
// mentions of the same symbol collapse to one entry.
func (u *unitState) collectReferences() []models.ReferencedSymbol {
	var refs []models.ReferencedSymbol
	seen := make(map[string]bool)
	var walk func(e *index.Entity)
	walk = func(e *index.Entity) {
		if index.IsReferenceKind(e.Kind) && e.USR != "" && !seen[e.USR] {
			seen[e.USR] = true
			refs = append(refs, models.ReferencedSymbol{USR: e.USR, Module: u.module})
		}
		for i := range e.Children {
			walk(&e.Children[i])
		}
	}
	walk(u.tree)
	return refs
}

// collectDeclared gathers the unit's reportable public declarations.
func (u *unitState) collectDeclared() []models.DeclaredSymbol {
	enclosing := u.exportedEnclosingTypes()

	type candidate struct {
		sym models.DeclaredSymbol
		usr string
	}
	var candidates []candidate
	seen := make(map[string]bool)

	var walk func(e *index.Entity)
	walk = func(e *index.Entity) {
		if u.isCandidate(e) && !seen[e.USR] {
			offset, ok := u.entityOffset(e)
			if ok {
				acc, found := u.structure.AccessibilityAt(offset)
				if found && acc.Exported() && !u.exempt(e, offset) {
					seen[e.USR] = true
					candidates = append(candidates, candidate{
						sym: models.DeclaredSymbol{
							USR:          e.USR,
							Module:       u.module,
							Offset:       offset,
							EnclosingUSR: enclosing.lookup(e.USR),
						},
						usr: e.USR,
					})
				}
			}
		}
		for i := range e.Children {
			walk(&e.Children[i])
		}
	}
	walk(u.tree)

	if len(candidates) == 0 {
		return nil
	}

	// A candidate mentioned in another public declaration of the same unit
	// (as a property type, parameter type, conformance) is part of the
	// externally visible contract transitively and is not reportable.
	candidateUSRs := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidateUSRs[c.usr] = true
	}
	reachable := u.transitivelyVisible(candidateUSRs)

	declared := make([]models.DeclaredSymbol, 0, len(candidates))
	for _, c := range candidates {
		if reachable[c.usr] {
			continue
		}
		declared = append(declared, c.sym)
	}
	return declared
}

// isCandidate applies the kind-level filters: declaration kinds only, no
// accessors, and none of the kinds that cannot be judged unused from
// reference counting.
func (u *unitState) isCandidate(e *index.Entity) bool {
	if !index.IsDeclarationKind(e.Kind) || index.IsAccessorKind(e.Kind) {
		return false
	}
	if e.USR == "" {
		return false
	}
	return index.IsReportableKind(e.Kind)
}

// enclosingTypes maps member USRs to the USR of their exported enclosing
// protocol or class.
type enclosingTypes struct {
	byMember map[string]string
}

func (t enclosingTypes) lookup(usr string) string {
	return t.byMember[usr]
}

// exportedEnclosingTypes walks the unit's exported protocol and class
// declarations and records which members each one directly contains.
func (u *unitState) exportedEnclosingTypes() enclosingTypes {
	byMember := make(map[string]string)
	var walk func(e *index.Entity)
	walk = func(e *index.Entity) {
		if index.IsEnclosingTypeKind(e.Kind) && e.USR != "" && u.exported(e) {
			for i := range e.Children {
				child := &e.Children[i]
				if child.USR != "" {
					if _, taken := byMember[child.USR]; !taken {
						byMember[child.USR] = e.USR
					}
				}
			}
		}
		for i := range e.Children {
			walk(&e.Children[i])
		}
	}
	walk(u.tree)
	return enclosingTypes{byMember: byMember}
}

// transitivelyVisible returns the candidate USRs that some other publicly
// visible declaration in the unit references, directly among its children or
// through a nested type declaration.
func (u *unitState) transitivelyVisible(candidates map[string]bool) map[string]bool {
	reachable := make(map[string]bool)

	var collectRefs func(e *index.Entity, out map[string]bool)
	collectRefs = func(e *index.Entity, out map[string]bool) {
		for i := range e.Children {
			child := &e.Children[i]
			if index.IsTypeReferenceKind(child.Kind) && child.USR != "" {
				out[child.USR] = true
			}
			if index.IsTypeKind(child.Kind) {
				collectRefs(child, out)
			}
		}
	}

	var walk func(e *index.Entity)
	walk = func(e *index.Entity) {
		if index.IsDeclarationKind(e.Kind) && u.exported(e) {
			refs := make(map[string]bool)
			collectRefs(e, refs)
			for usr := range refs {
				if usr != e.USR && candidates[usr] {
					reachable[usr] = true
				}
			}
		}
		for i := range e.Children {
			walk(&e.Children[i])
		}
	}
	walk(u.tree)
	return reachable
}
