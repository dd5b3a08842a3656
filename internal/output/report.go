package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/stephengroombbc/unusedapi/pkg/models"
)

// ViolationReport renders an analysis result: one row per violation plus a
// run summary. JSON output carries the full analysis struct.
type ViolationReport struct {
	Analysis *models.UnusedAPIAnalysis
	Severity models.Severity
}

// NewViolationReport wraps an analysis for rendering.
func NewViolationReport(analysis *models.UnusedAPIAnalysis, severity models.Severity) *ViolationReport {
	return &ViolationReport{Analysis: analysis, Severity: severity}
}

func (r *ViolationReport) table(colored bool) *Table {
	rows := make([][]string, 0, len(r.Analysis.Violations))
	for _, v := range r.Analysis.Violations {
		sev := string(r.Severity)
		if colored {
			sev = SeverityColor(string(r.Severity), sev)
		}
		rows = append(rows, []string{
			v.Unit,
			strconv.FormatInt(v.Offset, 10),
			v.Module,
			v.USR,
			sev,
		})
	}

	s := r.Analysis.Summary
	return &Table{
		Title:   "Unused Public API",
		Headers: []string{"Unit", "Offset", "Module", "Symbol", "Severity"},
		Rows:    rows,
		Footer: []string{
			fmt.Sprintf("%d units", s.TotalUnits),
			"",
			"",
			fmt.Sprintf("%d declared", s.TotalDeclared),
			fmt.Sprintf("%d unused", s.TotalViolations),
		},
		Data: r.Analysis,
	}
}

func (r *ViolationReport) RenderData() any {
	return r.Analysis
}

func (r *ViolationReport) RenderText(w io.Writer, colored bool) error {
	if len(r.Analysis.Violations) == 0 {
		fmt.Fprintln(w, "No unused public declarations found.")
		r.renderSummary(w)
		return nil
	}
	if err := r.table(colored).RenderText(w, colored); err != nil {
		return err
	}
	r.renderSummary(w)
	return nil
}

func (r *ViolationReport) RenderMarkdown(w io.Writer) error {
	if len(r.Analysis.Violations) == 0 {
		fmt.Fprintln(w, "No unused public declarations found.")
		fmt.Fprintln(w)
		return nil
	}
	return r.table(false).RenderMarkdown(w)
}

func (r *ViolationReport) renderSummary(w io.Writer) {
	s := r.Analysis.Summary
	if s.DegradedUnits > 0 {
		fmt.Fprintf(w, "%d of %d units degraded to empty results.\n", s.DegradedUnits, s.TotalUnits)
	}
	modules := make([]string, 0, len(s.ByModule))
	for module := range s.ByModule {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	for _, module := range modules {
		fmt.Fprintf(w, "  %s: %d unused\n", module, s.ByModule[module])
	}
}
