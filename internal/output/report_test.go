package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stephengroombbc/unusedapi/pkg/models"
)

func sampleAnalysis() *models.UnusedAPIAnalysis {
	analysis := &models.UnusedAPIAnalysis{
		Violations: []models.Violation{
			{Unit: "/src/core.code", Offset: 10, USR: "s:Core.f", Module: "Core"},
			{Unit: "/src/core.code", Offset: 200, USR: "s:Core.g", Module: "Core"},
		},
		Summary: models.NewAnalysisSummary(),
	}
	analysis.Summary.TotalUnits = 2
	analysis.Summary.TotalDeclared = 5
	for _, v := range analysis.Violations {
		analysis.Summary.AddViolation(v)
	}
	return analysis
}

func TestViolationReport_RenderText(t *testing.T) {
	var buf bytes.Buffer
	report := NewViolationReport(sampleAnalysis(), models.SeverityWarning)

	if err := report.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"/src/core.code", "s:Core.f", "s:Core.g", "Core: 2 unused"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestViolationReport_RenderTextEmpty(t *testing.T) {
	analysis := &models.UnusedAPIAnalysis{Summary: models.NewAnalysisSummary()}
	var buf bytes.Buffer

	if err := NewViolationReport(analysis, models.SeverityWarning).RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No unused public declarations") {
		t.Errorf("Output = %q", buf.String())
	}
}

func TestViolationReport_RenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	report := NewViolationReport(sampleAnalysis(), models.SeverityError)

	if err := report.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "| Unit | Offset | Module | Symbol | Severity |") {
		t.Errorf("Markdown header missing:\n%s", out)
	}
	if !strings.Contains(out, "| /src/core.code | 10 | Core | s:Core.f | error |") {
		t.Errorf("Markdown row missing:\n%s", out)
	}
}

func TestViolationReport_RenderDegraded(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.Summary.DegradedUnits = 1

	var buf bytes.Buffer
	if err := NewViolationReport(analysis, models.SeverityWarning).RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	if !strings.Contains(buf.String(), "1 of 2 units degraded") {
		t.Errorf("Output missing degradation note:\n%s", buf.String())
	}
}
