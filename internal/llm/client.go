package llm

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

	"go.uber.org/zap"
)

// Prompt es un pedido de una sola vuelta: instruccion de sistema + texto del
// usuario.
type Prompt struct {
	System string
	User   string
}

// GenerationConfig replica los campos de generationConfig de la API.
type GenerationConfig struct {
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	TopP             float32 `json:"topP"`
	TopK             int     `json:"topK"`
	ResponseMimeType string  `json:"responseMimeType"`
}

// DefaultGenerationConfig son los valores con los que se usa el asistente.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:      0.7,
		MaxOutputTokens:  8192,
		TopP:             0.95,
		TopK:             40,
		ResponseMimeType: "text/plain",
	}
}

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// APIError es un error devuelto por el proveedor con status distinto de 200.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api error: status=%d: %s", e.StatusCode, e.Message)
}

var (
	ErrNotConfigured = errors.New("llm client not configured")
	ErrEmptyResponse = errors.New("llm empty response")
)

// HTTPClient implementa LLMClient contra la API generateContent de Google
// Generative Language.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	config  GenerationConfig
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente apuntando a {baseURL}/models/{model}:generateContent.
func NewHTTPClient(baseURL, apiKey, model string, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		config:  DefaultGenerationConfig(),
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

func (c *HTTPClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt.User}}},
		},
		GenerationConfig: c.config,
	}
	if prompt.System != "" {
		reqBody.SystemInstruction = &content{Role: "user", Parts: []part{{Text: prompt.System}}}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("llm error response",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		var apiErr errorResponse
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var gr generateResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  GenerationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
