// Package inference talks to the language model. Every adapter honours the
// same contract: the returned text is the prompt followed by the model's
// continuation.
package inference

import (
	"context"
	"fmt"

	"github.com/kmitofficial/CodeGenie-G372-PS25/config"
)

// Generator produces prompt + continuation for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, sampling SamplingConfig) (string, error)
}

// SamplingConfig is handed to the model as-is. Field layout matches
// config.TaskSampling so the two convert directly.
type SamplingConfig struct {
	DoSample          bool
	MaxNewTokens      int
	Temperature       float32
	TopP              float32
	RepetitionPenalty float32
}

// FromTask converts a configured task sampling block.
func FromTask(task config.TaskSampling) SamplingConfig {
	return SamplingConfig(task)
}

// New builds the configured provider, wrapped with the outbound rate limiter
// and request timeout.
func New(cfg *config.Config) (Generator, error) {
	var gen Generator
	switch cfg.Inference.Provider {
	case config.ProviderOpenAI:
		gen = NewOpenAIGenerator(cfg.Inference.APIKey, cfg.Inference.BaseURL, cfg.Inference.Model)
	case config.ProviderOllama:
		ollama, err := NewOllamaGenerator(cfg.Inference.BaseURL, cfg.Inference.Model)
		if err != nil {
			return nil, err
		}
		gen = ollama
	default:
		return nil, fmt.Errorf("unknown inference provider %q", cfg.Inference.Provider)
	}

	limiter := NewRateLimiter(cfg.RateLimiting.RequestsPerMinute, cfg.RateLimiting.RequestsPerDay)
	return NewLimited(gen, limiter, cfg.RequestTimeout()), nil
}
