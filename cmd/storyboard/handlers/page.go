package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/hairizuan-noorazman/script-storyboard/logger"
	"github.com/hairizuan-noorazman/script-storyboard/storyboard"
	"github.com/yuin/goldmark"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const scriptPlaceholder = "SCENE 1: A lone explorer stands on a Martian ridge. Dust swirls around his boots. He raises a hand to shield his eyes from the twin moons."

// PageData is rendered into the form page.
type PageData struct {
	Model       string
	Placeholder string
	Script      string
	Result      template.HTML
	Alert       string
	// AlertLevel is "warning" for a missing script and "error" otherwise.
	AlertLevel string
}

// PageHandler serves the HTML form.
type PageHandler struct {
	invoker  Invoker
	markdown goldmark.Markdown
	logger   logger.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(invoker Invoker, log logger.Logger) *PageHandler {
	return &PageHandler{
		invoker:  invoker,
		markdown: goldmark.New(),
		logger:   log,
	}
}

// Show renders the empty form.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.pageData(""))
}

// Submit runs the form's invocation and renders the result below the form.
// The API key is never written back into the page.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		data := h.pageData("")
		data.Alert = "Could not read the submitted form."
		data.AlertLevel = "error"
		h.render(w, r, http.StatusBadRequest, data)
		return
	}

	script := r.PostFormValue("script")
	data := h.pageData(script)

	out := h.invoker.Invoke(r.Context(), r.PostFormValue("api_key"), script)
	if !out.Succeeded() {
		data.Alert = out.Message()
		data.AlertLevel = "error"
		if errors.Is(out.Err, storyboard.ErrMissingScript) {
			data.AlertLevel = "warning"
		}
		h.render(w, r, statusForOutcome(out), data)
		return
	}

	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(out.Text), &buf); err != nil {
		h.logger.Error(r.Context(), "failed to render markdown", map[string]interface{}{
			"error": err.Error(),
		})
		data.Alert = "The response could not be rendered."
		data.AlertLevel = "error"
		h.render(w, r, http.StatusInternalServerError, data)
		return
	}
	// goldmark omits raw HTML from the model output unless WithUnsafe is set.
	data.Result = template.HTML(buf.String())

	h.render(w, r, http.StatusOK, data)
}

func (h *PageHandler) pageData(script string) PageData {
	return PageData{
		Model:       h.invoker.Model(),
		Placeholder: scriptPlaceholder,
		Script:      script,
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, data PageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error(r.Context(), "failed to render page", map[string]interface{}{
			"error": err.Error(),
		})
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
