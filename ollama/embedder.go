// Package ollama provides a qalink.Embedder implementation backed by a
// local Ollama server's embeddings API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/qalink"
)

// Defaults for a locally running Ollama server.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "nomic-embed-text"
	DefaultTimeout = 30 * time.Second
)

// Ensure Embedder implements qalink.Embedder at compile time.
var _ qalink.Embedder = (*Embedder)(nil)

// Embedder computes embeddings via the Ollama /api/embeddings endpoint.
type Embedder struct {
	client  *http.Client
	baseURL string
	model   string
	timeout time.Duration
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithBaseURL sets the server address. Defaults to DefaultBaseURL.
func WithBaseURL(url string) Option {
	return func(e *Embedder) {
		e.baseURL = url
	}
}

// WithModel sets the embedding model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(e *Embedder) {
		e.model = model
	}
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Embedder) {
		e.timeout = d
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.client = &http.Client{Timeout: e.timeout}
	return e
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed returns the embedding vector for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, qalink.Errorf(qalink.EINVALID, "text required")
	}

	body, err := json.Marshal(embeddingRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, qalink.Errorf(qalink.EUNAVAILABLE, "ollama request failed: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, qalink.Errorf(qalink.EUNAVAILABLE, "ollama returned status %d: %s", resp.StatusCode, detail)
	}

	var out embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, qalink.Errorf(qalink.EINTERNAL, "ollama returned an empty embedding")
	}
	return out.Embedding, nil
}

// Ping reports whether the server is reachable. Used at startup to decide
// whether the embedding fallback can be enabled.
func (e *Embedder) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return qalink.Errorf(qalink.EUNAVAILABLE, "ollama not reachable: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return qalink.Errorf(qalink.EUNAVAILABLE, "ollama returned status %d", resp.StatusCode)
	}
	return nil
}
