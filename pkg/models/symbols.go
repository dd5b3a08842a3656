package models

// DeclaredSymbol is a module-exported declaration that survived the
// collector's exemption filters and is a candidate for reporting.
type DeclaredSymbol struct {
	USR          string `json:"usr"`                     // stable symbol identifier from the indexer
	Module       string `json:"module"`                  // module that declares the symbol
	Offset       int64  `json:"offset"`                  // byte offset of the declaration name
	EnclosingUSR string `json:"enclosing_usr,omitempty"` // nearest public protocol/class, if a member
}

// ReferencedSymbol records a use-site mention of a symbol.
type ReferencedSymbol struct {
	USR    string `json:"usr"`
	Module string `json:"module"` // module the reference occurs in
}

// UnitSymbols is the per-compilation-unit collection result. It is built once
// during collection and never mutated afterwards; a degraded unit contributes
// the zero value.
type UnitSymbols struct {
	Declared   []DeclaredSymbol   `json:"declared"`
	Referenced []ReferencedSymbol `json:"referenced"`
}

// Empty reports whether the unit contributed no symbols at all.
func (u UnitSymbols) Empty() bool {
	return len(u.Declared) == 0 && len(u.Referenced) == 0
}

// Violation is a public declaration with no use outside its own module.
type Violation struct {
	Unit   string `json:"unit"`
	Offset int64  `json:"offset"`
	USR    string `json:"usr"`
	Module string `json:"module"`
}

// UnusedAPIAnalysis is the full result of one analysis run.
type UnusedAPIAnalysis struct {
	Violations []Violation     `json:"violations"`
	Summary    AnalysisSummary `json:"summary"`
}

// AnalysisSummary provides aggregate statistics for a run.
type AnalysisSummary struct {
	TotalUnits      int            `json:"total_units"`
	DegradedUnits   int            `json:"degraded_units"`
	TotalDeclared   int            `json:"total_declared"`
	TotalReferences int            `json:"total_references"`
	TotalViolations int            `json:"total_violations"`
	ByModule        map[string]int `json:"by_module"`
}

// NewAnalysisSummary creates an initialized summary.
func NewAnalysisSummary() AnalysisSummary {
	return AnalysisSummary{
		ByModule: make(map[string]int),
	}
}

// AddViolation updates the summary with one violation.
func (s *AnalysisSummary) AddViolation(v Violation) {
	s.TotalViolations++
	s.ByModule[v.Module]++
}
