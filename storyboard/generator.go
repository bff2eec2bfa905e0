package storyboard

import (
	"context"

	"github.com/cockroachdb/errors"
)

const (
	// ModelGemini is the Gemini model used for every request. It is well suited
	// to structured text generation and inexpensive to call.
	ModelGemini = "gemini-2.5-flash"

	// ModelOpenAI is the model used when the OpenAI-compatible provider is selected.
	ModelOpenAI = "gpt-4o-mini"
)

// Generator issues a single text-generation request on behalf of the caller.
// Implementations build a client scoped to the supplied credential for each
// call and release it before returning.
type Generator interface {
	// Generate sends prompt as the sole content and returns the response text.
	Generate(ctx context.Context, credential, prompt string) (string, error)

	// Model returns the fixed model identifier requests are sent to.
	Model() string
}

// Provider names a hosted generation service.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// IsValid checks if the provider is supported.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderGemini, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// GeneratorOptions holds provider-specific settings.
type GeneratorOptions struct {
	// OpenAIBaseURL overrides the API base URL for OpenAI-compatible endpoints.
	OpenAIBaseURL string
}

// NewGenerator returns the generator for the given provider.
func NewGenerator(provider Provider, opts GeneratorOptions) (Generator, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiGenerator(), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(opts.OpenAIBaseURL), nil
	default:
		return nil, errors.Wrapf(ErrUnknownProvider, "provider %q", provider)
	}
}
