package inference

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaGenerator runs raw, non-streaming generations against an Ollama server.
type OllamaGenerator struct {
	client *api.Client
	model  string
}

// NewOllamaGenerator connects to baseURL, or to OLLAMA_HOST when baseURL is empty.
func NewOllamaGenerator(baseURL, model string) (*OllamaGenerator, error) {
	if baseURL == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return &OllamaGenerator{client: client, model: model}, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url %q: %w", baseURL, err)
	}
	return &OllamaGenerator{client: api.NewClient(u, http.DefaultClient), model: model}, nil
}

// Generate prepends the prompt to the generated text, since Ollama never echoes it.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string, sampling SamplingConfig) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:   g.model,
		Prompt:  prompt,
		Raw:     true,
		Stream:  &stream,
		Options: ollamaOptions(sampling),
	}

	var out strings.Builder
	out.WriteString(prompt)
	err := g.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}

	return out.String(), nil
}

func ollamaOptions(sampling SamplingConfig) map[string]any {
	opts := map[string]any{}
	if sampling.MaxNewTokens > 0 {
		opts["num_predict"] = sampling.MaxNewTokens
	}
	if !sampling.DoSample {
		opts["temperature"] = 0
	} else {
		if sampling.Temperature > 0 {
			opts["temperature"] = sampling.Temperature
		}
		if sampling.TopP > 0 {
			opts["top_p"] = sampling.TopP
		}
	}
	if sampling.RepetitionPenalty > 0 {
		opts["repeat_penalty"] = sampling.RepetitionPenalty
	}
	return opts
}
