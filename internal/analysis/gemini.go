package analysis

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Temperature used for every generation request.
const Temperature float32 = 0.7

// GeminiClient asks a Gemini model for an assessment.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient returns a client for model at endpoint. The endpoint is
// the API root including its version, e.g.
// https://generativelanguage.googleapis.com/v1beta. An empty endpoint uses
// the SDK default.
func NewGeminiClient(ctx context.Context, endpoint, model, apiKey string, timeout time.Duration) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if endpoint = strings.TrimRight(endpoint, "/"); endpoint != "" {
		base, version := path.Split(endpoint)
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base, APIVersion: version}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Analyze sends prompt and returns the text of the first candidate. A
// response without text yields "".
func (c *GeminiClient) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
