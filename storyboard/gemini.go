package storyboard

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator implements Generator using the Google Gemini API.
type GeminiGenerator struct {
	model      string
	clientOpts []option.ClientOption
}

var _ Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a Gemini generator for ModelGemini. Extra client
// options are applied after the per-request API key.
func NewGeminiGenerator(opts ...option.ClientOption) *GeminiGenerator {
	return &GeminiGenerator{
		model:      ModelGemini,
		clientOpts: opts,
	}
}

// Model returns the Gemini model identifier.
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate creates a client for credential, sends prompt and closes the client.
func (g *GeminiGenerator) Generate(ctx context.Context, credential, prompt string) (string, error) {
	opts := make([]option.ClientOption, 0, len(g.clientOpts)+1)
	opts = append(opts, option.WithAPIKey(credential))
	opts = append(opts, g.clientOpts...)

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", errors.Wrap(err, "failed to create gemini client")
	}
	defer client.Close()

	resp, err := client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate content")
	}

	text := responseText(resp)
	if text == "" {
		return "", errors.New("gemini response contained no text")
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
