package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Label é uma classificação de sentimento
type Label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Inference é um modelo de texto remoto
type Inference interface {
	Sentiment(ctx context.Context, texts []string) ([]Label, error)
	Generate(ctx context.Context, prompt string, maxLength int) (string, error)
}

// HTTPInference chama um endpoint JSON de inferência com /sentiment e /generate
type HTTPInference struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPInference cria um cliente para o endpoint em baseURL
func NewHTTPInference(baseURL, token string) *HTTPInference {
	return &HTTPInference{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type sentimentRequest struct {
	Inputs []string `json:"inputs"`
}

type generateRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]int `json:"parameters"`
}

type generated struct {
	GeneratedText string `json:"generated_text"`
}

func (h *HTTPInference) Sentiment(ctx context.Context, texts []string) ([]Label, error) {
	var labels []Label
	if err := h.post(ctx, "/sentiment", sentimentRequest{Inputs: texts}, &labels); err != nil {
		return nil, err
	}
	if len(labels) != len(texts) {
		return nil, fmt.Errorf("sentiment: got %d labels for %d texts", len(labels), len(texts))
	}
	return labels, nil
}

func (h *HTTPInference) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	var out []generated
	req := generateRequest{Inputs: prompt, Parameters: map[string]int{"max_length": maxLength}}
	if err := h.post(ctx, "/generate", req, &out); err != nil {
		return "", err
	}
	if len(out) == 0 || strings.TrimSpace(out[0].GeneratedText) == "" {
		return "", fmt.Errorf("generate: empty response")
	}
	return out[0].GeneratedText, nil
}

func (h *HTTPInference) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s: status code %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
