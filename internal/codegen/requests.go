package codegen

import (
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultLanguage is assumed when a request carries no language id.
const DefaultLanguage = "python"

// ErrInvalidRequest marks input rejected before any model call.
var ErrInvalidRequest = errors.New("invalid request")

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func (e *requestError) Is(target error) bool { return target == ErrInvalidRequest }

// CompletionRequest asks for code to insert at a cursor position.
type CompletionRequest struct {
	Prompt      string `json:"prompt"`
	FileContent string `json:"file_content"`
	CursorLine  int    `json:"cursor_line"` // 0-based
	LanguageID  string `json:"language_id"`
}

// ConversionRequest asks for code translated between languages.
type ConversionRequest struct {
	Code           string `json:"code"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// AnalysisRequest asks for a bug report.
type AnalysisRequest struct {
	Code       string `json:"code"`
	LanguageID string `json:"language_id"`
}

// OptimizationRequest asks for optimization suggestions.
type OptimizationRequest struct {
	Code       string `json:"code"`
	LanguageID string `json:"language_id"`
}

// ProjectAnalysisRequest carries files keyed by path, in the order the client sent them.
type ProjectAnalysisRequest struct {
	ProjectFiles *orderedmap.OrderedMap[string, string] `json:"project_files"`
}

// CodeResult is returned by completion and conversion. Response is the raw
// extracted completion, RefinedCode the cleaned version.
type CodeResult struct {
	Response    string `json:"response"`
	RefinedCode string `json:"refined_code"`
}

func languageOrDefault(languageID string) string {
	if languageID == "" {
		return DefaultLanguage
	}
	return languageID
}
