package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postForm(h *PageHandler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Submit(w, req)
	return w
}

func TestPageHandler_Show(t *testing.T) {
	controller, log := newTestController(&stubGenerator{})
	h := NewPageHandler(controller, log)

	w := httptest.NewRecorder()
	h.Show(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Script to Image Prompt Generator</title>")
	assert.Contains(t, body, `type="password"`)
	assert.Contains(t, body, "A lone explorer stands on a Martian ridge")
	assert.Contains(t, body, "Powered by gemini-2.5-flash")
	assert.NotContains(t, body, `role="alert"`)
}

func TestPageHandler_Submit(t *testing.T) {
	tests := []struct {
		name         string
		apiKey       string
		script       string
		genText      string
		genErr       error
		wantStatus   int
		wantCalls    int
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:       "renders markdown result",
			apiKey:     "abc123",
			script:     "The hero enters the cave.",
			genText:    caveResponse,
			wantStatus: http.StatusOK,
			wantCalls:  1,
			wantContains: []string{
				"Generated Image Prompts",
				"<strong>The hero enters the cave.</strong> -&gt; A dim cavern entrance, torchlight, ultra-realistic.",
				">The hero enters the cave.</textarea>",
			},
			wantAbsent: []string{"abc123"},
		},
		{
			name:         "missing credential shows error",
			apiKey:       "",
			script:       "The hero enters the cave.",
			wantStatus:   http.StatusBadRequest,
			wantCalls:    0,
			wantContains: []string{`class="alert error"`, "Please enter your API key"},
		},
		{
			name:         "missing script shows warning",
			apiKey:       "abc123",
			script:       "",
			wantStatus:   http.StatusBadRequest,
			wantCalls:    0,
			wantContains: []string{`class="alert warning"`, "Please paste a script"},
			wantAbsent:   []string{"abc123"},
		},
		{
			name:         "generation failure shows detail",
			apiKey:       "abc123",
			script:       "The hero enters the cave.",
			genErr:       errors.New("API key not valid"),
			wantStatus:   http.StatusBadGateway,
			wantCalls:    1,
			wantContains: []string{`class="alert error"`, "Check your API key or script content: API key not valid"},
			wantAbsent:   []string{"Generated Image Prompts"},
		},
		{
			name:         "raw html from the model is not rendered",
			apiKey:       "abc123",
			script:       "A line.",
			genText:      "<script>alert(1)</script>\n\n* **A line.** -> prompt",
			wantStatus:   http.StatusOK,
			wantCalls:    1,
			wantContains: []string{"<strong>A line.</strong>"},
			wantAbsent:   []string{"<script>alert(1)</script>"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{text: tc.genText, err: tc.genErr}
			controller, log := newTestController(gen)
			h := NewPageHandler(controller, log)

			w := postForm(h, url.Values{"api_key": {tc.apiKey}, "script": {tc.script}})

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantCalls, gen.callCount())
			body := w.Body.String()
			for _, s := range tc.wantContains {
				assert.Contains(t, body, s)
			}
			for _, s := range tc.wantAbsent {
				assert.NotContains(t, body, s)
			}
		})
	}
}
