package inference

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator calls the legacy completions endpoint of any
// OpenAI-compatible server with echo enabled.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator. An empty baseURL uses api.openai.com.
func NewOpenAIGenerator(apiKey, baseURL, model string) *OpenAIGenerator {
	client := openai.NewClient(apiKey)
	if baseURL != "" {
		config := openai.DefaultConfig(apiKey)
		config.BaseURL = baseURL
		client = openai.NewClientWithConfig(config)
	}

	return &OpenAIGenerator{
		client: client,
		model:  model,
	}
}

// Generate returns the echoed prompt plus completion verbatim.
// Zero temperature and top_p are left to the server default; the request
// schema has no repetition penalty.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, sampling SamplingConfig) (string, error) {
	req := openai.CompletionRequest{
		Model:     g.model,
		Prompt:    prompt,
		MaxTokens: sampling.MaxNewTokens,
		Echo:      true,
	}
	if sampling.DoSample {
		req.Temperature = sampling.Temperature
		req.TopP = sampling.TopP
	}

	resp, err := g.client.CreateCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned by model %s", g.model)
	}

	return resp.Choices[0].Text, nil
}
