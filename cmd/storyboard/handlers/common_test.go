package handlers

import (
	"context"
	"sync"

	"github.com/hairizuan-noorazman/script-storyboard/logger"
	"github.com/hairizuan-noorazman/script-storyboard/storyboard"
)

const caveResponse = "* **The hero enters the cave.** -> A dim cavern entrance, torchlight, ultra-realistic."

// stubGenerator stands in for the generation service.
type stubGenerator struct {
	mu      sync.Mutex
	prompts []string
	creds   []string
	text    string
	err     error
}

func (g *stubGenerator) Generate(ctx context.Context, credential, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.creds = append(g.creds, credential)
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *stubGenerator) Model() string {
	return storyboard.ModelGemini
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func newTestController(gen *stubGenerator) (*storyboard.Controller, *logger.TestLogger) {
	log := logger.NewTestLogger()
	return storyboard.NewController(gen, log), log
}
