package storyboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{
			name: "nil response",
			resp: nil,
			want: "",
		},
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
			want: "",
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			want: "",
		},
		{
			name: "text parts are concatenated in order",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{
						genai.Text("* **The hero enters the cave.** -> "),
						genai.Text("A dim cavern entrance, torchlight, ultra-realistic."),
					}},
				}},
			},
			want: "* **The hero enters the cave.** -> A dim cavern entrance, torchlight, ultra-realistic.",
		},
		{
			name: "non-text parts are skipped",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{
						genai.Blob{MIMEType: "image/png", Data: []byte{0x89}},
						genai.Text("only text"),
					}},
				}},
			},
			want: "only text",
		},
		{
			name: "only the first candidate is read",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []genai.Part{genai.Text("first")}}},
					{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
				},
			},
			want: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, responseText(tt.resp))
		})
	}
}

func TestGeminiGenerator_Model(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", NewGeminiGenerator().Model())
}

func TestGeminiGenerator_Generate(t *testing.T) {
	prompt := Compose("The hero enters the cave.")

	tests := []struct {
		name        string
		status      int
		body        string
		want        string
		errContains string
	}{
		{
			name:   "returns candidate text",
			status: http.StatusOK,
			body:   `{"candidates":[{"content":{"role":"model","parts":[{"text":"* **The hero enters the cave.** -> "},{"text":"A dim cavern entrance, torchlight, ultra-realistic."}]},"finishReason":"STOP"}]}`,
			want:   "* **The hero enters the cave.** -> A dim cavern entrance, torchlight, ultra-realistic.",
		},
		{
			name:        "empty candidates is an error",
			status:      http.StatusOK,
			body:        `{"candidates":[]}`,
			errContains: "contained no text",
		},
		{
			name:        "rejected credential surfaces service message",
			status:      http.StatusBadRequest,
			body:        `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			errContains: "API key not valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)

				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)

				var req struct {
					Contents []struct {
						Parts []struct {
							Text string `json:"text"`
						} `json:"parts"`
					} `json:"contents"`
				}
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				if assert.Len(t, req.Contents, 1) && assert.Len(t, req.Contents[0].Parts, 1) {
					assert.Equal(t, prompt, req.Contents[0].Parts[0].Text)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			gen := NewGeminiGenerator(option.WithEndpoint(srv.URL), option.WithHTTPClient(srv.Client()))
			text, err := gen.Generate(context.Background(), "abc123", prompt)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one request, no retries")

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}
