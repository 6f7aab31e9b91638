// Package codegen runs each task end to end: build the prompt, call the
// model, cut the completion out of the echoed output and normalize it into
// code or a report.
package codegen

import (
	"context"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kmitofficial/CodeGenie-G372-PS25/config"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/chunker"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/cleaner"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/extract"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/inference"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/prompts"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/report"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/structural"
)

// Service holds no per-request state and is safe for concurrent use.
type Service struct {
	gen              inference.Generator
	sampling         config.SamplingConfig
	maxContextTokens int
	logger           *zap.Logger
}

func NewService(gen inference.Generator, cfg *config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gen:              gen,
		sampling:         cfg.Sampling,
		maxContextTokens: cfg.Prompt.MaxContextTokens,
		logger:           logger,
	}
}

// Generate completes code at the request's cursor.
func (s *Service) Generate(ctx context.Context, req CompletionRequest) (*CodeResult, error) {
	language := languageOrDefault(req.LanguageID)

	window := chunker.Window(req.FileContent, req.CursorLine, s.maxContextTokens)
	if window.StartLine > 1 {
		s.logger.Debug("Windowed completion context",
			zap.Int("start_line", window.StartLine),
			zap.Int("end_line", window.EndLine),
			zap.Int("tokens", window.Tokens))
	}

	prompt := prompts.Completion(req.Prompt, window.Content, window.Cursor, language)
	response, err := s.complete(ctx, prompt, s.sampling.Generate)
	if err != nil {
		return nil, err
	}

	return &CodeResult{
		Response:    response,
		RefinedCode: cleaner.Clean(response, language),
	}, nil
}

// Convert translates code; the result is cleaned for the target language.
func (s *Service) Convert(ctx context.Context, req ConversionRequest) (*CodeResult, error) {
	prompt := prompts.Conversion(req.Code, req.SourceLanguage, req.TargetLanguage)
	response, err := s.complete(ctx, prompt, s.sampling.Convert)
	if err != nil {
		return nil, err
	}

	return &CodeResult{
		Response:    response,
		RefinedCode: cleaner.Clean(response, req.TargetLanguage),
	}, nil
}

// Analyze reports bugs. Structural pre-analysis runs alongside the model call
// and its findings lead the merged report.
func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) (*report.AnalysisReport, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, &requestError{msg: "No code provided for analysis"}
	}
	language := languageOrDefault(req.LanguageID)
	prompt := prompts.BugDetection(req.Code, language)

	var (
		pre      []report.Finding
		response string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pre = structural.Analyze(req.Code, language)
		return nil
	})
	g.Go(func() error {
		var err error
		response, err = s.complete(gctx, prompt, s.sampling.Analyze)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("Raw LLM response", zap.String("task", "analyze"), zap.String("response", response))

	result, ok := extract.Decode[report.AnalysisReport](response, "issues", "summary")
	if !ok {
		s.logger.Warn("Model returned no usable analysis JSON", zap.Int("response_bytes", len(response)))
		result = report.AnalysisFallback(response)
	}

	if len(pre) > 0 {
		s.logger.Info("Structural pre-analysis found issues", zap.Int("count", len(pre)))
	}
	result.MergeStructural(pre)
	result.Validate(req.Code)

	return &result, nil
}

// Optimize suggests optimizations for code.
func (s *Service) Optimize(ctx context.Context, req OptimizationRequest) (*report.OptimizationReport, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, &requestError{msg: "No code provided for optimization"}
	}
	language := languageOrDefault(req.LanguageID)
	prompt := prompts.Optimization(req.Code, language)

	response, err := s.complete(ctx, prompt, s.sampling.Optimize)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Raw LLM response", zap.String("task", "optimize"), zap.String("response", response))

	result, ok := extract.Decode[report.OptimizationReport](response, "optimizations", "summary")
	if !ok {
		s.logger.Warn("Model returned no usable optimization JSON", zap.Int("response_bytes", len(response)))
		result = report.OptimizationFallback(response)
	}
	result.Validate(req.Code)

	return &result, nil
}

// AnalyzeProject documents and reviews a set of files as one project.
func (s *Service) AnalyzeProject(ctx context.Context, req ProjectAnalysisRequest) (*report.ProjectReport, error) {
	files := req.ProjectFiles
	if files == nil {
		files = orderedmap.New[string, string]()
	}
	prompt := prompts.ProjectAnalysis(prompts.ProjectFiles(files))

	s.logger.Info("Analyzing project", zap.Int("files", files.Len()), zap.Int("prompt_bytes", len(prompt)))

	response, err := s.complete(ctx, prompt, s.sampling.AnalyzeProject)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Raw LLM response", zap.String("task", "analyze-project"), zap.String("response", response))

	result, ok := extract.Decode[report.ProjectReport](response, "project_summary", "readme", "issues", "summary")
	if !ok {
		s.logger.Warn("Model returned no usable project JSON", zap.Int("response_bytes", len(response)))
		result = report.ProjectFallback()
	}
	result.Complete()

	return &result, nil
}

// complete calls the model and returns the text after the echoed prompt.
func (s *Service) complete(ctx context.Context, prompt string, task config.TaskSampling) (string, error) {
	full, err := s.gen.Generate(ctx, prompt, inference.FromTask(task))
	if err != nil {
		return "", fmt.Errorf("model generation failed: %w", err)
	}
	return extract.Completion(full, prompt)
}
