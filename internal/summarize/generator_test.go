package summarize

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"candidates": [{"content": {"parts": [{"text": "  generated text \n"}]}}]}`)
	}))
	t.Cleanup(srv.Close)

	g := NewGeminiGenerator(srv.URL, "secret", "")
	got, err := g.Generate(context.Background(), "a prompt")
	require.NoError(t, err)
	assert.Equal(t, "generated text", got)
}

func TestGeminiGenerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	g := NewGeminiGenerator(srv.URL, "secret", "")
	_, err := g.Generate(context.Background(), "a prompt")
	assert.ErrorContains(t, err, "429")
}

func TestGeminiGenerateNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	t.Cleanup(srv.Close)

	g := NewGeminiGenerator(srv.URL, "secret", "")
	_, err := g.Generate(context.Background(), "a prompt")
	assert.ErrorContains(t, err, "no candidates")
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("COHERE_API_KEY", "")
	assert.Nil(t, NewFromEnv(""), "no keys means summarization disabled")

	t.Setenv("GEMINI_API_KEY", "g-key")
	gen := NewFromEnv("gemini-2.5-pro")
	require.NotNil(t, gen)
	assert.IsType(t, &GeminiGenerator{}, gen)
	assert.Equal(t, "gemini-2.5-pro", gen.Model())

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("COHERE_API_KEY", "c-key")
	gen = NewFromEnv("gemini-2.5-pro")
	require.NotNil(t, gen)
	assert.IsType(t, &CohereGenerator{}, gen)
	// A non-Cohere model name falls back to the Cohere default.
	assert.Equal(t, "command-r-08-2024", gen.Model())
}
