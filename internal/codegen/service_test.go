package codegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kmitofficial/CodeGenie-G372-PS25/config"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/chunker"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/extract"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/inference"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/report"
)

// fakeGenerator echoes the prompt followed by a canned continuation.
type fakeGenerator struct {
	mu           sync.Mutex
	continuation string
	raw          string // returned verbatim when set, ignoring the echo contract
	err          error
	prompts      []string
	sampling     []inference.SamplingConfig
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, sampling inference.SamplingConfig) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.sampling = append(f.sampling, sampling)
	if f.err != nil {
		return "", f.err
	}
	if f.raw != "" {
		return f.raw, nil
	}
	return prompt + f.continuation, nil
}

func newTestService(gen *fakeGenerator) (*Service, *config.Config) {
	cfg := config.Default()
	return NewService(gen, cfg, nil), cfg
}

func TestGenerateCleansFencedCode(t *testing.T) {
	gen := &fakeGenerator{continuation: "```python\nx = 1\n```\nHere's the code"}
	svc, cfg := newTestService(gen)

	res, err := svc.Generate(context.Background(), CompletionRequest{Prompt: "set x", FileContent: "y = 2"})
	require.NoError(t, err)

	assert.Equal(t, "```python\nx = 1\n```\nHere's the code", res.Response)
	assert.Equal(t, "x = 1", res.RefinedCode)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "language: python")
	assert.Contains(t, gen.prompts[0], "The cursor is at line 1.")
	assert.Equal(t, inference.FromTask(cfg.Sampling.Generate), gen.sampling[0])
}

func TestGenerateWindowsLargeFiles(t *testing.T) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = fmt.Sprintf("line_%03d = %d", i, i)
	}
	content := strings.Join(lines, "\n")

	gen := &fakeGenerator{continuation: "pass"}
	cfg := config.Default()
	cfg.Prompt.MaxContextTokens = 60
	svc := NewService(gen, cfg, nil)

	_, err := svc.Generate(context.Background(), CompletionRequest{FileContent: content, CursorLine: 150})
	require.NoError(t, err)

	window := chunker.Window(content, 150, 60)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, window.Content)
	assert.NotContains(t, prompt, "line_000")
	assert.Contains(t, prompt, "line_150 = 150")
	assert.Contains(t, prompt, fmt.Sprintf("The cursor is at line %d.", 150-window.StartLine+2))
}

func TestGenerateClampsCursorIntoWindow(t *testing.T) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = fmt.Sprintf("line_%03d = %d", i, i)
	}
	content := strings.Join(lines, "\n")

	gen := &fakeGenerator{continuation: "pass"}
	cfg := config.Default()
	cfg.Prompt.MaxContextTokens = 60
	svc := NewService(gen, cfg, nil)

	_, err := svc.Generate(context.Background(), CompletionRequest{FileContent: content, CursorLine: 500})
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), CompletionRequest{FileContent: content, CursorLine: -7})
	require.NoError(t, err)

	past := chunker.Window(content, 500, 60)
	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[0], fmt.Sprintf("The cursor is at line %d.", past.EndLine-past.StartLine+1))
	assert.Contains(t, gen.prompts[1], "The cursor is at line 1.")
}

func TestConvertCleansForTargetLanguage(t *testing.T) {
	gen := &fakeGenerator{continuation: "```go\n// entry point\nfunc main() {}\n```"}
	svc, cfg := newTestService(gen)

	res, err := svc.Convert(context.Background(), ConversionRequest{
		Code:           "def main(): pass",
		SourceLanguage: "python",
		TargetLanguage: "go",
	})
	require.NoError(t, err)

	assert.Equal(t, "func main() {}", res.RefinedCode)
	assert.Contains(t, gen.prompts[0], "Convert the following python code to go.")
	assert.Equal(t, inference.FromTask(cfg.Sampling.Convert), gen.sampling[0])
}

func TestAnalyzeUnparsableOutputKeepsStructuralFindings(t *testing.T) {
	gen := &fakeGenerator{continuation: "I could not analyze this code, sorry."}
	svc, _ := newTestService(gen)

	res, err := svc.Analyze(context.Background(), AnalysisRequest{Code: "def f(:\n  pass"})
	require.NoError(t, err)

	require.NotEmpty(t, res.Issues)
	assert.Equal(t, report.SeverityHigh, res.Issues[0].Severity)
	assert.Equal(t, "syntax", res.Issues[0].Type)
	assert.Equal(t, 1, res.Issues[0].Line)
	assert.Equal(t, "I could not analyze this code, sorry.", res.RawResponse)
	assert.Equal(t, report.StructuralSummaryPrefix(len(res.Issues))+report.AnalysisFailedSummary, res.Summary)
}

func TestAnalyzeMergesAndClamps(t *testing.T) {
	gen := &fakeGenerator{continuation: `Sure! {"issues": [{"type": "bug", "line": 9999, "description": "d", "fix": "f"}], "summary": "One bug."} Hope that helps.`}
	svc, cfg := newTestService(gen)

	code := "x = [1, 2\ny = 3\n"
	res, err := svc.Analyze(context.Background(), AnalysisRequest{Code: code, LanguageID: "python"})
	require.NoError(t, err)

	require.Len(t, res.Issues, 2)
	assert.Equal(t, "syntax", res.Issues[0].Type)
	assert.Equal(t, 1, res.Issues[0].Line)
	assert.Equal(t, "bug", res.Issues[1].Type)
	assert.Equal(t, 2, res.Issues[1].Line)
	assert.Equal(t, "Found 1 structural issues. One bug.", res.Summary)
	assert.Empty(t, res.RawResponse)
	assert.Equal(t, inference.FromTask(cfg.Sampling.Analyze), gen.sampling[0])
}

func TestAnalyzeCleanCodeNoMerge(t *testing.T) {
	gen := &fakeGenerator{continuation: `{"issues": [], "summary": "No issues."}`}
	svc, _ := newTestService(gen)

	res, err := svc.Analyze(context.Background(), AnalysisRequest{Code: "print(1)"})
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
	assert.NotNil(t, res.Issues)
	assert.Equal(t, "No issues.", res.Summary)
}

func TestEmptyCodeIsRejectedBeforeModelCall(t *testing.T) {
	gen := &fakeGenerator{continuation: "{}"}
	svc, _ := newTestService(gen)

	_, err := svc.Analyze(context.Background(), AnalysisRequest{Code: "  \n\t"})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.EqualError(t, err, "No code provided for analysis")

	_, err = svc.Optimize(context.Background(), OptimizationRequest{})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.EqualError(t, err, "No code provided for optimization")

	assert.Empty(t, gen.prompts)
}

func TestOptimize(t *testing.T) {
	gen := &fakeGenerator{continuation: `{"optimizations": [{"type": "performance", "line": "0", "description": "d", "original": "a", "optimized": "b"}], "summary": "s"}`}
	svc, cfg := newTestService(gen)

	res, err := svc.Optimize(context.Background(), OptimizationRequest{Code: "a\nb\nc", LanguageID: "javascript"})
	require.NoError(t, err)

	require.Len(t, res.Optimizations, 1)
	assert.Equal(t, 1, res.Optimizations[0].Line)
	assert.Equal(t, "b", res.Optimizations[0].Optimized)
	assert.Equal(t, "s", res.Summary)
	assert.Contains(t, gen.prompts[0], "CODE TO OPTIMIZE (javascript):")

	want := inference.SamplingConfig{DoSample: true, MaxNewTokens: 1000, Temperature: 0.3, TopP: 0.9}
	assert.Equal(t, want, gen.sampling[0])
	assert.Equal(t, inference.FromTask(cfg.Sampling.Optimize), gen.sampling[0])
}

func TestOptimizeFallback(t *testing.T) {
	gen := &fakeGenerator{continuation: "no json here"}
	svc, _ := newTestService(gen)

	res, err := svc.Optimize(context.Background(), OptimizationRequest{Code: "x = 1"})
	require.NoError(t, err)
	if diff := cmp.Diff(report.OptimizationFallback("no json here"), *res); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestContractViolationIsFatal(t *testing.T) {
	gen := &fakeGenerator{raw: "the model forgot to echo"}
	svc, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, extract.ErrContractViolation)

	_, err = svc.Analyze(context.Background(), AnalysisRequest{Code: "x = 1"})
	assert.ErrorIs(t, err, extract.ErrContractViolation)
}

func TestGeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	gen := &fakeGenerator{err: boom}
	svc, _ := newTestService(gen)

	_, err := svc.Analyze(context.Background(), AnalysisRequest{Code: "x = 1"})
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "model generation failed")
	assert.False(t, errors.Is(err, ErrInvalidRequest))
}

func TestAnalyzeProject(t *testing.T) {
	files := orderedmap.New[string, string]()
	files.Set("b.py", "print(2)")
	files.Set("a.py", "print(1)")

	gen := &fakeGenerator{continuation: `{"project_summary": {"title": "Demo", "technology_stack": ["python"]},
		"issues": [{"file": "a.py", "type": "bug", "line": 0, "description": "d", "severity": "CRITICAL"}],
		"summary": "Small demo."}`}
	svc, _ := newTestService(gen)

	res, err := svc.AnalyzeProject(context.Background(), ProjectAnalysisRequest{ProjectFiles: files})
	require.NoError(t, err)

	assert.Contains(t, gen.prompts[0], "=== b.py ===\nprint(2)\n\n=== a.py ===\nprint(1)\n\n")
	assert.Equal(t, "Demo", res.ProjectSummary.Title)
	assert.Equal(t, []string{"python"}, res.ProjectSummary.TechnologyStack)
	assert.Equal(t, report.ProjectFallback().ProjectSummary.Architecture, res.ProjectSummary.Architecture)
	assert.Equal(t, report.ProjectFallback().Readme, res.Readme)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, 1, res.Issues[0].Line)
	assert.Equal(t, "a.py", res.Issues[0].File)
	assert.Equal(t, "Small demo.", res.Summary)
}

func TestAnalyzeProjectFallback(t *testing.T) {
	gen := &fakeGenerator{continuation: "The project looks fine."}
	svc, _ := newTestService(gen)

	res, err := svc.AnalyzeProject(context.Background(), ProjectAnalysisRequest{})
	require.NoError(t, err)
	if diff := cmp.Diff(report.ProjectFallback(), *res); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, gen.prompts[0], "PROJECT FILES:\n\nJSON RESPONSE:")
}
