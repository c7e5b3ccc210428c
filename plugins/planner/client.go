// Package planner provides AI-generated itinerary and attraction tools
// backed by the Hugging Face Inference API.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arundhs/travelagent/log"
)

const (
	// DefaultModel generates itineraries and attraction lists.
	DefaultModel = "meta-llama/Meta-Llama-3-8B"

	BaseURL = "https://api-inference.huggingface.co/models"
)

// Client calls the Hugging Face text-generation endpoint.
type Client struct {
	Token      string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an inference client. An empty token is allowed: tools
// using the client return a structured error result instead of calling out.
func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		Model:      DefaultModel,
		BaseURL:    BaseURL,
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Configured reports whether an API token is present.
func (c *Client) Configured() bool {
	return c.Token != ""
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

type apiError struct {
	Error string `json:"error"`
}

// TextGeneration sends a prompt to the configured model and returns the
// trimmed completion.
func (c *Client) TextGeneration(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("HUGGINGFACE_API_TOKEN not set")
	}

	body, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens:   maxNewTokens,
			Temperature:    0.7,
			DoSample:       true,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.BaseURL, "/"), c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	log.Debugf(ctx, "planner: calling %s", endpoint)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("inference API returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("inference API returned %d", resp.StatusCode)
	}

	var results []generateResponse
	if err := json.Unmarshal(data, &results); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("empty response from inference API")
	}

	return strings.TrimSpace(results[0].GeneratedText), nil
}
