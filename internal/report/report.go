package report

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Severity levels accepted on a Finding. Anything else is dropped during normalization.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Finding is a single reported issue or optimization. Bug findings carry Fix,
// optimization findings carry Original and Optimized, project findings carry File.
// The reports marshal each kind with its own key set, see issueJSON.
type Finding struct {
	Type        string `json:"type"`
	Line        int    `json:"line"`
	Description string `json:"description"`
	Fix         string `json:"fix,omitempty"`
	Original    string `json:"original,omitempty"`
	Optimized   string `json:"optimized,omitempty"`
	File        string `json:"file,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// UnmarshalJSON accepts the line number as a JSON number or a numeric string.
// Models regularly emit "12" or 12.0; anything unparsable becomes 0 and is
// repaired later by ClampLines.
func (f *Finding) UnmarshalJSON(data []byte) error {
	type plain Finding
	aux := struct {
		*plain
		Line json.RawMessage `json:"line"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Line = parseLine(aux.Line)
	return nil
}

func parseLine(raw json.RawMessage) int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Wire shapes of the three finding kinds. Every key except severity is always
// emitted, empty or not.
type issueJSON struct {
	Type        string `json:"type"`
	Line        int    `json:"line"`
	Description string `json:"description"`
	Fix         string `json:"fix"`
	Severity    string `json:"severity,omitempty"`
}

type optimizationJSON struct {
	Type        string `json:"type"`
	Line        int    `json:"line"`
	Description string `json:"description"`
	Original    string `json:"original"`
	Optimized   string `json:"optimized"`
	Severity    string `json:"severity,omitempty"`
}

type projectIssueJSON struct {
	File        string `json:"file"`
	Type        string `json:"type"`
	Line        int    `json:"line"`
	Description string `json:"description"`
	Fix         string `json:"fix"`
	Severity    string `json:"severity,omitempty"`
}

func issuesJSON(findings []Finding) []issueJSON {
	out := make([]issueJSON, 0, len(findings))
	for _, f := range findings {
		out = append(out, issueJSON{f.Type, f.Line, f.Description, f.Fix, f.Severity})
	}
	return out
}

func optimizationsJSON(findings []Finding) []optimizationJSON {
	out := make([]optimizationJSON, 0, len(findings))
	for _, f := range findings {
		out = append(out, optimizationJSON{f.Type, f.Line, f.Description, f.Original, f.Optimized, f.Severity})
	}
	return out
}

func projectIssuesJSON(findings []Finding) []projectIssueJSON {
	out := make([]projectIssueJSON, 0, len(findings))
	for _, f := range findings {
		out = append(out, projectIssueJSON{f.File, f.Type, f.Line, f.Description, f.Fix, f.Severity})
	}
	return out
}

// AnalysisReport is the bug-detection result.
type AnalysisReport struct {
	Issues      []Finding `json:"issues"`
	Summary     string    `json:"summary"`
	RawResponse string    `json:"raw_response,omitempty"`

	// summarySet records whether decoded model output carried a summary key.
	summarySet bool
}

// UnmarshalJSON decodes the report and notes whether the summary key was present.
func (r *AnalysisReport) UnmarshalJSON(data []byte) error {
	type plain AnalysisReport
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, r.summarySet = keys["summary"]
	return nil
}

func (r AnalysisReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Issues      []issueJSON `json:"issues"`
		Summary     string      `json:"summary"`
		RawResponse string      `json:"raw_response,omitempty"`
	}{issuesJSON(r.Issues), r.Summary, r.RawResponse})
}

// OptimizationReport is the optimization result.
type OptimizationReport struct {
	Optimizations []Finding `json:"optimizations"`
	Summary       string    `json:"summary"`
	RawResponse   string    `json:"raw_response,omitempty"`
}

func (r OptimizationReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Optimizations []optimizationJSON `json:"optimizations"`
		Summary       string             `json:"summary"`
		RawResponse   string             `json:"raw_response,omitempty"`
	}{optimizationsJSON(r.Optimizations), r.Summary, r.RawResponse})
}

// ProjectReport is the whole-project analysis result.
type ProjectReport struct {
	ProjectSummary ProjectSummary `json:"project_summary"`
	Issues         []Finding      `json:"issues"`
	Readme         Readme         `json:"readme"`
	Summary        string         `json:"summary"`
}

func (r ProjectReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProjectSummary ProjectSummary     `json:"project_summary"`
		Issues         []projectIssueJSON `json:"issues"`
		Readme         Readme             `json:"readme"`
		Summary        string             `json:"summary"`
	}{r.ProjectSummary, projectIssuesJSON(r.Issues), r.Readme, r.Summary})
}

type ProjectSummary struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TechnologyStack []string `json:"technology_stack"`
	Architecture    string   `json:"architecture"`
}

type Readme struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Installation string      `json:"installation"`
	Usage        string      `json:"usage"`
	Workflow     string      `json:"workflow"`
	Components   []Component `json:"components"`
}

// Component describes one part of the project in the generated readme.
type Component struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UnmarshalJSON also accepts a bare string, which models emit when they list
// component names only.
func (c *Component) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = Component{Name: name}
		return nil
	}
	type plain Component
	return json.Unmarshal(data, (*plain)(c))
}
