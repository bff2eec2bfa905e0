package storyboard

import (
	"context"

	"github.com/hairizuan-noorazman/script-storyboard/logger"
)

// Controller validates user input and runs one generation per invocation.
// It holds no per-invocation state and is safe for concurrent use.
type Controller struct {
	generator Generator
	logger    logger.Logger
}

// NewController creates a controller that sends composed prompts to generator.
func NewController(generator Generator, log logger.Logger) *Controller {
	return &Controller{
		generator: generator,
		logger:    log,
	}
}

// Model returns the model identifier of the underlying generator.
func (c *Controller) Model() string {
	return c.generator.Model()
}

// Invoke runs a single invocation: validate the inputs, compose the prompt and
// call the generator once. Validation failures never reach the network.
func (c *Controller) Invoke(ctx context.Context, credential, script string) Outcome {
	model := c.generator.Model()
	c.logger.Debug(ctx, "invocation transition", map[string]interface{}{
		"from": StateIdle,
		"to":   StateValidating,
	})

	if err := validate(credential, script); err != nil {
		return c.finish(ctx, Outcome{State: StateFailed, Model: model, Err: err})
	}

	prompt := Compose(script)
	c.logger.Debug(ctx, "sending prompt", map[string]interface{}{
		"model":         model,
		"script_length": len(script),
		"prompt_length": len(prompt),
	})

	text, err := c.generator.Generate(ctx, credential, prompt)
	if err != nil {
		return c.finish(ctx, Outcome{
			State: StateFailed,
			Model: model,
			Err:   &GenerationError{Model: model, Err: err},
		})
	}

	return c.finish(ctx, Outcome{State: StateSucceeded, Model: model, Text: text})
}

// Start runs Invoke in the background and delivers its outcome on the returned
// channel, which receives exactly one value.
func (c *Controller) Start(ctx context.Context, credential, script string) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		done <- c.Invoke(ctx, credential, script)
	}()
	return done
}

func (c *Controller) finish(ctx context.Context, out Outcome) Outcome {
	fields := map[string]interface{}{
		"from":  StateValidating,
		"to":    out.State,
		"model": out.Model,
	}
	if out.Err != nil {
		fields["error"] = out.Err.Error()
	}
	c.logger.Debug(ctx, "invocation transition", fields)
	return out
}

func validate(credential, script string) error {
	if credential == "" {
		return ErrMissingCredential
	}
	if script == "" {
		return ErrMissingScript
	}
	return nil
}
