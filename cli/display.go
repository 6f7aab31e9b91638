package cli

import (
	"fmt"
	"strings"

	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/report"
)

var rule = strings.Repeat("=", 80)

func formatAnalysis(r *report.AnalysisReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n🐞 ANALYSIS RESULTS\n%s\n", rule, rule)
	if len(r.Issues) == 0 {
		b.WriteString("\n✅ No issues found\n")
	}
	for _, issue := range r.Issues {
		writeFinding(&b, issue)
		if issue.Fix != "" {
			fmt.Fprintf(&b, "     fix: %s\n", issue.Fix)
		}
	}
	fmt.Fprintf(&b, "\n📝 SUMMARY:\n   %s\n%s", r.Summary, rule)
	return b.String()
}

func formatOptimization(r *report.OptimizationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n⚡ OPTIMIZATION RESULTS\n%s\n", rule, rule)
	if len(r.Optimizations) == 0 {
		b.WriteString("\n✅ No optimizations suggested\n")
	}
	for _, opt := range r.Optimizations {
		writeFinding(&b, opt)
		if opt.Original != "" {
			fmt.Fprintf(&b, "     before: %s\n", opt.Original)
		}
		if opt.Optimized != "" {
			fmt.Fprintf(&b, "     after:  %s\n", opt.Optimized)
		}
	}
	fmt.Fprintf(&b, "\n📝 SUMMARY:\n   %s\n%s", r.Summary, rule)
	return b.String()
}

func formatProject(r *report.ProjectReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n📊 PROJECT ANALYSIS: %s\n%s\n", rule, r.ProjectSummary.Title, rule)

	fmt.Fprintf(&b, "\n🎯 DESCRIPTION:\n   %s\n", r.ProjectSummary.Description)
	fmt.Fprintf(&b, "\n🏗️  ARCHITECTURE:\n   %s\n", r.ProjectSummary.Architecture)
	if len(r.ProjectSummary.TechnologyStack) > 0 {
		fmt.Fprintf(&b, "\n🧰 STACK:\n   %s\n", strings.Join(r.ProjectSummary.TechnologyStack, ", "))
	}

	if len(r.Readme.Components) > 0 {
		b.WriteString("\n📦 COMPONENTS:\n")
		for _, c := range r.Readme.Components {
			fmt.Fprintf(&b, "   • %s: %s\n", c.Name, c.Description)
		}
	}

	if len(r.Issues) > 0 {
		b.WriteString("\n🐞 ISSUES:\n")
		for _, issue := range r.Issues {
			writeFinding(&b, issue)
		}
	}

	fmt.Fprintf(&b, "\n📝 SUMMARY:\n   %s\n%s", r.Summary, rule)
	return b.String()
}

func writeFinding(b *strings.Builder, f report.Finding) {
	location := fmt.Sprintf("line %d", f.Line)
	if f.File != "" {
		location = f.File + ":" + fmt.Sprint(f.Line)
	}
	if f.Severity != "" {
		fmt.Fprintf(b, "\n   • %s [%s] %s: %s\n", location, f.Severity, f.Type, f.Description)
		return
	}
	fmt.Fprintf(b, "\n   • %s %s: %s\n", location, f.Type, f.Description)
}
