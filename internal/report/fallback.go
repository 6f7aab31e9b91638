package report

// Placeholder texts used when the model output could not be turned into a report.
const (
	AnalysisFailedSummary     = "Analysis failed to produce properly structured results."
	OptimizationFailedSummary = "Optimization analysis failed to produce properly structured results."
	StructuralOnlySummary     = "Pre-analysis detected critical structural problems."

	unknownTitle        = "Unknown Project"
	unknownDescription  = "Analysis failed to produce a description."
	unknownArchitecture = "Analysis failed to determine architecture."
	unknownWorkflow     = "Analysis failed to determine workflow."
	readmeTitle         = "Project Documentation"
	notAvailable        = "N/A"
)

// AnalysisFallback is substituted when no analysis object could be extracted.
// raw keeps the model text for operators.
func AnalysisFallback(raw string) AnalysisReport {
	return AnalysisReport{
		Issues:      []Finding{},
		Summary:     AnalysisFailedSummary,
		RawResponse: raw,
	}
}

// OptimizationFallback is substituted when no optimization object could be extracted.
func OptimizationFallback(raw string) OptimizationReport {
	return OptimizationReport{
		Optimizations: []Finding{},
		Summary:       OptimizationFailedSummary,
		RawResponse:   raw,
	}
}

// ProjectFallback returns the project skeleton with every leaf set to a placeholder.
func ProjectFallback() ProjectReport {
	return ProjectReport{
		ProjectSummary: ProjectSummary{
			Title:           unknownTitle,
			Description:     unknownDescription,
			TechnologyStack: []string{},
			Architecture:    unknownArchitecture,
		},
		Issues: []Finding{},
		Readme: Readme{
			Title:        readmeTitle,
			Description:  unknownDescription,
			Installation: notAvailable,
			Usage:        notAvailable,
			Workflow:     unknownWorkflow,
			Components:   []Component{},
		},
		Summary: AnalysisFailedSummary,
	}
}

// Complete fills every field the model left empty with the skeleton's
// placeholder so the response never has a missing key or a null list.
func (r *ProjectReport) Complete() {
	skel := ProjectFallback()

	fill(&r.ProjectSummary.Title, skel.ProjectSummary.Title)
	fill(&r.ProjectSummary.Description, skel.ProjectSummary.Description)
	fill(&r.ProjectSummary.Architecture, skel.ProjectSummary.Architecture)
	if r.ProjectSummary.TechnologyStack == nil {
		r.ProjectSummary.TechnologyStack = []string{}
	}

	fill(&r.Readme.Title, skel.Readme.Title)
	fill(&r.Readme.Description, skel.Readme.Description)
	fill(&r.Readme.Installation, skel.Readme.Installation)
	fill(&r.Readme.Usage, skel.Readme.Usage)
	fill(&r.Readme.Workflow, skel.Readme.Workflow)
	if r.Readme.Components == nil {
		r.Readme.Components = []Component{}
	}

	if r.Issues == nil {
		r.Issues = []Finding{}
	}
	for i := range r.Issues {
		r.Issues[i].Severity = normalizeSeverity(r.Issues[i].Severity)
		if r.Issues[i].Line < 1 {
			r.Issues[i].Line = 1
		}
	}
	fill(&r.Summary, skel.Summary)
}

func fill(field *string, placeholder string) {
	if *field == "" {
		*field = placeholder
	}
}
