package storyboard

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrMissingCredential is returned when an invocation is triggered without an API key.
	ErrMissingCredential = errors.WithHint(
		errors.New("missing credential"),
		"Please enter your API key before generating image prompts.",
	)

	// ErrMissingScript is returned when an invocation is triggered without a script.
	ErrMissingScript = errors.WithHint(
		errors.New("missing script"),
		"Please paste a script before generating image prompts.",
	)

	// ErrUnknownProvider is returned when a generator is requested for an unsupported provider.
	ErrUnknownProvider = errors.New("unknown generation provider")
)

// GenerationError wraps any failure reported by the generation service:
// transport errors, rejected credentials, exhausted quota or an unusable response.
// All of them are treated the same way and none are retried.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation with %s failed: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Detail returns the underlying error message reported by the service.
func (e *GenerationError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// State represents a stage of a single invocation.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// IsTerminal reports whether no further transition can happen from the state.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Outcome is the terminal result of an invocation.
type Outcome struct {
	State State
	Model string
	// Text is the markdown returned by the model, unmodified. Empty unless State is StateSucceeded.
	Text string
	Err  error
}

// Succeeded reports whether the invocation produced text.
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}

// Message returns the string a presentation layer should display for the outcome.
func (o Outcome) Message() string {
	if o.State == StateSucceeded {
		return o.Text
	}
	if o.Err == nil {
		return ""
	}

	var genErr *GenerationError
	if errors.As(o.Err, &genErr) {
		return "An error occurred. Check your API key or script content: " + genErr.Detail()
	}

	if hint := errors.FlattenHints(o.Err); hint != "" {
		return hint
	}
	return o.Err.Error()
}
