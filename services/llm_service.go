package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"

	"github.com/mayagamaleldin/graduationproject/config"
	"github.com/mayagamaleldin/graduationproject/logger"
	"github.com/mayagamaleldin/graduationproject/utils"
)

const (
	defaultGeminiModel   = "gemini-1.5-flash"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultCallTimeout   = 60 * time.Second
)

// ErrModelUnavailable is returned when no model answers a prompt.
var ErrModelUnavailable = errors.New("model unavailable")

// NewGenerator builds the TextGenerator selected by llm.provider.
func NewGenerator(cfg *config.Config) (TextGenerator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	switch provider {
	case "", "gemini", "google":
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("gemini provider: api key is empty (set GEMINI_API_KEY or llm.api_key)")
		}
		return NewGeminiGenerator(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, cfg.LLM.Temperature), nil
	case "openai", "siliconflow", "openrouter":
		if cfg.LLM.APIKey == "" && cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("%s provider: api key is empty (set LLM_API_KEY or llm.api_key)", provider)
		}
		return NewOpenAIGenerator(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, cfg.LLM.Temperature), nil
	case "static", "none", "offline":
		return NewStaticGenerator(nil), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// CallTimeout returns the per-call model timeout configured in cfg.
func CallTimeout(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.LLM.CallTimeoutSec <= 0 {
		return defaultCallTimeout
	}
	return time.Duration(cfg.LLM.CallTimeoutSec) * time.Second
}

// GeminiGenerator calls the Google Generative Language REST API.
type GeminiGenerator struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	client      *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGeminiGenerator returns a generator for the given model; empty model and
// base URL select the defaults.
func NewGeminiGenerator(apiKey, model, baseURL string, temperature float64) *GeminiGenerator {
	if model == "" {
		model = defaultGeminiModel
	}
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiGenerator{
		apiKey:      apiKey,
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temperature,
		client:      &http.Client{},
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: prompt}},
			Role:  "user",
		}},
		GenerationConfig: &geminiGenConfig{Temperature: g.temperature},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	startTime := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	logger.Debug("LLM response received",
		"provider", "gemini",
		"model", g.model,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(startTime).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, utils.Preview(string(body), 500))
	}

	var gResp geminiResponse
	if err := json.Unmarshal(body, &gResp); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if gResp.Error != nil {
		return "", fmt.Errorf("gemini API error: %s (code %d)", gResp.Error.Message, gResp.Error.Code)
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini API")
	}

	var text strings.Builder
	for _, part := range gResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return strings.TrimSpace(text.String()), nil
}

// OpenAIGenerator talks to any OpenAI-compatible chat completion endpoint.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float64
}

// NewOpenAIGenerator returns a chat completion generator. baseURL may point at
// SiliconFlow, OpenRouter or a local server; empty uses api.openai.com.
func NewOpenAIGenerator(apiKey, model, baseURL string, temperature float64) *OpenAIGenerator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	client := openai.NewClient(opts...)
	return &OpenAIGenerator{client: &client, model: model, temperature: temperature}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       g.model,
		Temperature: param.NewOpt(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	logger.Debug("LLM response received",
		"provider", "openai",
		"model", g.model,
		"tokens_total", completion.Usage.TotalTokens,
		"finish_reason", completion.Choices[0].FinishReason,
		"duration_ms", time.Since(startTime).Milliseconds())

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// StaticGenerator answers from a fixed table without touching the network.
// A prompt matches the first rule whose marker it contains; unmatched prompts
// fail with ErrModelUnavailable so every field takes its fallback path.
type StaticGenerator struct {
	rules []StaticReply
}

// StaticReply pairs a prompt marker with the reply it produces.
type StaticReply struct {
	Marker string
	Reply  string
}

func NewStaticGenerator(rules []StaticReply) *StaticGenerator {
	return &StaticGenerator{rules: append([]StaticReply(nil), rules...)}
}

func (g *StaticGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, r := range g.rules {
		if strings.Contains(prompt, r.Marker) {
			return r.Reply, nil
		}
	}
	return "", ErrModelUnavailable
}
