package storyboard

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator implements Generator against an OpenAI-compatible chat completions API.
type OpenAIGenerator struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ Generator = (*OpenAIGenerator)(nil)

// NewOpenAIGenerator creates a generator for ModelOpenAI. An empty baseURL uses the public OpenAI endpoint.
func NewOpenAIGenerator(baseURL string) *OpenAIGenerator {
	return &OpenAIGenerator{
		model:   ModelOpenAI,
		baseURL: baseURL,
	}
}

// SetHTTPClient sets the HTTP client used for requests.
func (g *OpenAIGenerator) SetHTTPClient(client *http.Client) {
	g.httpClient = client
}

// Model returns the OpenAI model identifier.
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate sends prompt as a single user message and returns the first choice.
func (g *OpenAIGenerator) Generate(ctx context.Context, credential, prompt string) (string, error) {
	cfg := openai.DefaultConfig(credential)
	if g.baseURL != "" {
		cfg.BaseURL = g.baseURL
	}
	if g.httpClient != nil {
		cfg.HTTPClient = g.httpClient
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to create chat completion")
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return text, nil
}
