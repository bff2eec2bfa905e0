package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hairizuan-noorazman/script-storyboard/cmd/storyboard/handlers"
	"github.com/hairizuan-noorazman/script-storyboard/storyboard"
)

// APIError represents an error response from a storyboard server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Client calls the JSON API of a running storyboard server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL. A nil httpClient uses
// http.DefaultClient, leaving timeouts to the transport.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GeneratePrompts posts the script to the server and returns its response.
func (c *Client) GeneratePrompts(ctx context.Context, credential, script string) (*handlers.GenerateResponse, error) {
	data, err := json.Marshal(handlers.GenerateRequest{APIKey: credential, Script: script})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/prompts", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp handlers.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var out handlers.GenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// Start runs GeneratePrompts in the background and delivers the result as an
// outcome on a channel that receives exactly one value.
func (c *Client) Start(ctx context.Context, credential, script string) <-chan storyboard.Outcome {
	done := make(chan storyboard.Outcome, 1)
	go func() {
		resp, err := c.GeneratePrompts(ctx, credential, script)
		if err != nil {
			done <- storyboard.Outcome{State: storyboard.StateFailed, Err: err}
			return
		}
		done <- storyboard.Outcome{State: storyboard.StateSucceeded, Model: resp.Model, Text: resp.Text}
	}()
	return done
}
