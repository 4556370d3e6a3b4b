package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayagamaleldin/graduationproject/config"
)

func TestGeminiGenerator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.RawQuery)

		var req geminiRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Contents, 1) {
			assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
			assert.InDelta(t, 0.2, req.GenerationConfig.Temperature, 1e-9)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" hi "},{"text":"there"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	gen := NewGeminiGenerator("secret", "test-model", server.URL+"/", 0.2)
	got, err := gen.Generate(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hi there", got)
}

func TestGeminiGeneratorErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusInternalServerError, `{"error":{"code":500,"message":"boom"}}`},
		{"api error", http.StatusOK, `{"error":{"code":429,"message":"quota"}}`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"bad json", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewGeminiGenerator("k", "", server.URL, 0).Generate(context.Background(), "hello")
			assert.Error(t, err)
		})
	}
}

func TestGeminiGeneratorErrorOmitsAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := NewGeminiGenerator("SECRET-KEY-123", "", baseURL, 0).Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
}

func TestGeminiGeneratorHonorsContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewGeminiGenerator("k", "m", server.URL, 0).Generate(ctx, "hello")
	assert.Error(t, err)
}

func TestOpenAIGenerator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			assert.Equal(t, "test-model", body["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "test-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  art,50,technology,30,business,20 "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	gen := NewOpenAIGenerator("sk-test", "test-model", server.URL+"/v1/", 0.3)
	got, err := gen.Generate(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "art,50,technology,30,business,20", got)
}

func TestStaticGenerator(t *testing.T) {
	gen := NewStaticGenerator([]StaticReply{
		{Marker: "alpha", Reply: "first"},
		{Marker: "beta", Reply: "second"},
	})

	got, err := gen.Generate(context.Background(), "prompt with beta and alpha")
	require.NoError(t, err)
	assert.Equal(t, "first", got, "first matching rule wins")

	_, err = gen.Generate(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrModelUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.Generate(ctx, "alpha")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGenerator(t *testing.T) {
	newCfg := func(provider, key, baseURL string) *config.Config {
		cfg := &config.Config{}
		cfg.LLM.Provider = provider
		cfg.LLM.APIKey = key
		cfg.LLM.BaseURL = baseURL
		return cfg
	}

	gen, err := NewGenerator(newCfg("gemini", "k", ""))
	require.NoError(t, err)
	assert.IsType(t, &GeminiGenerator{}, gen)

	gen, err = NewGenerator(newCfg("OpenRouter", "k", "https://openrouter.ai/api/v1"))
	require.NoError(t, err)
	assert.IsType(t, &OpenAIGenerator{}, gen)

	gen, err = NewGenerator(newCfg("static", "", ""))
	require.NoError(t, err)
	assert.IsType(t, &StaticGenerator{}, gen)

	_, err = NewGenerator(newCfg("gemini", "", ""))
	assert.Error(t, err)

	_, err = NewGenerator(newCfg("openai", "", ""))
	assert.Error(t, err)

	_, err = NewGenerator(newCfg("llama", "k", ""))
	assert.Error(t, err)
}

func TestCallTimeout(t *testing.T) {
	assert.Equal(t, defaultCallTimeout, CallTimeout(nil))

	cfg := &config.Config{}
	assert.Equal(t, defaultCallTimeout, CallTimeout(cfg))

	cfg.LLM.CallTimeoutSec = 5
	assert.Equal(t, 5*time.Second, CallTimeout(cfg))
}
