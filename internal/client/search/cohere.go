package search

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
)

const (
	DefaultCohereURL   = "https://api.cohere.ai/v1/embed"
	DefaultCohereModel = "embed-english-v3.0"
)

var ErrNoAPIKey = errors.New("cohere api key is not configured")

// CohereEmbedder calls the Cohere embed endpoint.
type CohereEmbedder struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

// NewCohereEmbedder builds an embedder. An empty url selects the public endpoint.
func NewCohereEmbedder(apiKey, url string, timeout time.Duration) *CohereEmbedder {
	if url == "" {
		url = DefaultCohereURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CohereEmbedder{
		apiKey:     apiKey,
		url:        url,
		model:      DefaultCohereModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Texts     []string  `json:"texts"`
	Model     string    `json:"model"`
	InputType InputType `json:"input_type"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
	Message    string      `json:"message"`
}

func (c *CohereEmbedder) Embed(ctx context.Context, texts []string, inputType InputType) ([][]float64, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, errors.New("cannot embed empty text")
		}
	}

	payload, err := json.Marshal(embedRequest{Texts: texts, Model: c.model, InputType: inputType})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cohere embed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("cohere embed: read body: %w", err)
	}

	var out embedResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(out.Message)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("cohere embed: status %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("cohere embed: decode: %w", decodeErr)
	}
	if len(out.Embeddings) != len(texts) {
		return nil, fmt.Errorf("cohere embed: got %d embeddings for %d texts", len(out.Embeddings), len(texts))
	}
	return out.Embeddings, nil
}
