package report

import (
	"fmt"
	"strings"
)

// LineCount returns the number of editor lines in code. A single trailing
// newline does not open a new line; empty code has zero lines.
func LineCount(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(code, "\n"), "\n") + 1
}

// ClampLines forces every finding's line into [1, LineCount(code)] and
// normalizes severities. Empty code pins every line to 1.
func ClampLines(findings []Finding, code string) {
	last := LineCount(code)
	for i := range findings {
		f := &findings[i]
		switch {
		case last == 0 || f.Line < 1:
			f.Line = 1
		case f.Line > last:
			f.Line = last
		}
		f.Severity = normalizeSeverity(f.Severity)
	}
}

func normalizeSeverity(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return s
	default:
		return ""
	}
}

// Validate repairs the report against the analyzed code.
func (r *AnalysisReport) Validate(code string) {
	if r.Issues == nil {
		r.Issues = []Finding{}
	}
	ClampLines(r.Issues, code)
}

// Validate repairs the report against the analyzed code.
func (r *OptimizationReport) Validate(code string) {
	if r.Optimizations == nil {
		r.Optimizations = []Finding{}
	}
	ClampLines(r.Optimizations, code)
}

// MergeStructural prepends pre-analysis findings and prefixes the summary with
// their count. A report whose model output had no summary key gets
// StructuralOnlySummary after the prefix. It is a no-op when pre is empty.
func (r *AnalysisReport) MergeStructural(pre []Finding) {
	if len(pre) == 0 {
		return
	}
	merged := make([]Finding, 0, len(pre)+len(r.Issues))
	merged = append(merged, pre...)
	merged = append(merged, r.Issues...)
	r.Issues = merged

	summary := r.Summary
	if !r.summarySet && summary == "" {
		summary = StructuralOnlySummary
	}
	r.Summary = StructuralSummaryPrefix(len(pre)) + summary
}

// StructuralSummaryPrefix is the sentence placed before the model's summary.
func StructuralSummaryPrefix(n int) string {
	return fmt.Sprintf("Found %d structural issues. ", n)
}
