package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// fallbackResponse is printed in place of an empty completion.
const fallbackResponse = "I'm not sure how to answer that."

// stopSeparators mark the end of useful model output; anything after the
// first one found is dropped.
var stopSeparators = []string{"</s>", "<|endoftext|>", "<|im_end|>"}

// generateRequest is the request body for the Ollama /api/generate endpoint.
type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// generateResponse is the non-streaming response from /api/generate.
type generateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// OllamaClient generates completions through a locally running Ollama
// server. It implements Generator.
type OllamaClient struct {
	baseURL    string
	model      string
	device     string
	opts       Options
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	histogram  metric.Float64Histogram
}

// NewOllamaClient creates a client for the Ollama server at baseURL.
func NewOllamaClient(baseURL, modelName, device string, opts Options, tracer trace.Tracer, meter metric.Meter, logger *slog.Logger) (*OllamaClient, error) {
	histogram, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &OllamaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      modelName,
		device:     device,
		opts:       opts,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
		tracer:     tracer,
		histogram:  histogram,
	}, nil
}

// Info reports the configured model name and compute device.
func (c *OllamaClient) Info() Info {
	return Info{Model: c.model, Device: c.device}
}

// Generate sends the prompt to Ollama and returns the cleaned completion.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "ollama_generate")
	defer span.End()

	start := time.Now()

	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": c.opts.Temperature,
			"num_predict": c.opts.MaxTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request (is Ollama running?): %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	var apiResp generateResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	duration := time.Since(start)
	c.histogram.Record(ctx, float64(duration.Milliseconds()))
	c.logger.Debug("generation complete", "model", c.model, "duration_ms", duration.Milliseconds())

	return cleanResponse(apiResp.Response), nil
}

// cleanResponse trims the completion and cuts it at the first stop
// separator. An empty result becomes a stock fallback sentence.
func cleanResponse(response string) string {
	response = strings.TrimSpace(response)
	for _, sep := range stopSeparators {
		if idx := strings.Index(response, sep); idx >= 0 {
			response = strings.TrimSpace(response[:idx])
		}
	}
	if response == "" {
		return fallbackResponse
	}
	return response
}
