package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// Generator produces text from a prompt via a language-model API.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// --- Gemini Provider ---

// GeminiGenerator calls the Gemini generateContent REST API.
type GeminiGenerator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiGenerator creates a generator backed by the Gemini API.
func NewGeminiGenerator(baseURL, apiKey, model string) *GeminiGenerator {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGenerator{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error %d: %s", resp.StatusCode, string(b))
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}
	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

func (g *GeminiGenerator) Model() string { return g.model }

// --- Cohere Provider ---

// CohereGenerator calls the Cohere chat API through the official SDK.
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator creates a generator backed by Cohere chat.
func NewCohereGenerator(apiKey, model string) *CohereGenerator {
	if model == "" || !strings.HasPrefix(model, "command") {
		model = "command-r-08-2024"
	}
	return &CohereGenerator{
		client: cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		model:  model,
	}
}

func (g *CohereGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &g.model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", fmt.Errorf("cohere chat returned empty response")
	}
	return strings.TrimSpace(resp.Text), nil
}

func (g *CohereGenerator) Model() string { return g.model }

// --- Factory ---

// NewFromEnv creates a generator from environment variables, preferring
// Gemini (GEMINI_API_KEY) and falling back to Cohere (COHERE_API_KEY).
// Returns nil when neither key is set.
func NewFromEnv(model string) Generator {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return NewGeminiGenerator("", key, model)
	}
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		return NewCohereGenerator(key, model)
	}
	return nil // summarization disabled
}
