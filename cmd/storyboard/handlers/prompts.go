package handlers

import (
	"errors"
	"net/http"

	"github.com/hairizuan-noorazman/script-storyboard/logger"
	"github.com/hairizuan-noorazman/script-storyboard/storyboard"
)

// APIKeyHeader may carry the credential instead of the JSON body.
const APIKeyHeader = "X-API-Key"

// PromptHandler serves the JSON image prompt API.
type PromptHandler struct {
	invoker Invoker
	logger  logger.Logger
}

// NewPromptHandler creates a new prompt handler.
func NewPromptHandler(invoker Invoker, log logger.Logger) *PromptHandler {
	return &PromptHandler{
		invoker: invoker,
		logger:  log,
	}
}

// GenerateRequest represents an image prompt generation request.
type GenerateRequest struct {
	APIKey string `json:"api_key"`
	Script string `json:"script"`
}

// GenerateResponse carries the model's markdown, unmodified.
type GenerateResponse struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// Generate handles a single generation request. The body's api_key takes
// precedence over the X-API-Key header.
func (h *PromptHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	credential := req.APIKey
	if credential == "" {
		credential = r.Header.Get(APIKeyHeader)
	}

	out := h.invoker.Invoke(ctx, credential, req.Script)
	if out.Succeeded() {
		respondJSON(w, http.StatusOK, GenerateResponse{Text: out.Text, Model: out.Model})
		return
	}

	respondError(w, statusForOutcome(out), out.Message())
}

// statusForOutcome maps a failed outcome to an HTTP status code.
func statusForOutcome(out storyboard.Outcome) int {
	var genErr *storyboard.GenerationError
	switch {
	case errors.Is(out.Err, storyboard.ErrMissingCredential),
		errors.Is(out.Err, storyboard.ErrMissingScript):
		return http.StatusBadRequest
	case errors.As(out.Err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
