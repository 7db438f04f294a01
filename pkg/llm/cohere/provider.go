// Package cohere implements a Cohere rerank provider.
package cohere

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Anurag02012004/ai-resume-project/pkg/llm"
	"github.com/Anurag02012004/ai-resume-project/pkg/utils/httpclient"
	"github.com/Anurag02012004/ai-resume-project/pkg/utils/json"
)

// ProviderName identifies the Cohere provider in the registry.
const ProviderName = "cohere"

func init() {
	llm.RegisterRerankProvider(ProviderName, NewRerankProvider)
}

// Config holds Cohere provider settings.
type Config struct {
	// BaseURL is the API base address.
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// APIKey is the API key.
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// RerankModel is the model used for reranking.
	RerankModel string `json:"rerank_model" mapstructure:"rerank_model"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries is the HTTP-level retry count.
	MaxRetries int `json:"max_retries" mapstructure:"max_retries"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://api.cohere.com/v2",
		RerankModel: "rerank-english-v3.0",
		Timeout:     30 * time.Second,
		MaxRetries:  2,
	}
}

// Provider is the Cohere rerank provider implementation.
type Provider struct {
	config *Config
	client *httpclient.Client
}

// NewRerankProvider creates a Cohere rerank provider from a config map.
func NewRerankProvider(configMap map[string]any) (llm.RerankProvider, error) {
	cfg := DefaultConfig()

	if v, ok := configMap["base_url"].(string); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := configMap["api_key"].(string); ok && v != "" {
		cfg.APIKey = v
	}
	if v, ok := configMap["rerank_model"].(string); ok && v != "" {
		cfg.RerankModel = v
	}
	if v, ok := configMap["timeout"].(time.Duration); ok && v > 0 {
		cfg.Timeout = v
	}
	if v, ok := configMap["max_retries"].(int); ok && v > 0 {
		cfg.MaxRetries = v
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("cohere: api_key is required")
	}

	return NewProviderWithConfig(cfg), nil
}

// NewProviderWithConfig creates a Cohere provider from a structured config.
func NewProviderWithConfig(cfg *Config) *Provider {
	return &Provider{
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout, cfg.MaxRetries),
	}
}

// Name returns the vendor name.
func (p *Provider) Name() string {
	return ProviderName
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n,omitempty"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Rerank scores documents against the query and returns at most topN results
// ordered by descending relevance.
func (p *Provider) Rerank(ctx context.Context, query string, documents []string, topN int) ([]llm.RerankResult, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	reqBody := rerankRequest{
		Model:     p.config.RerankModel,
		Query:     query,
		Documents: documents,
		TopN:      topN,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	var rerankResp rerankResponse
	if err := p.client.DoJSON(req, &rerankResp); err != nil {
		return nil, err
	}

	results := make([]llm.RerankResult, 0, len(rerankResp.Results))
	for _, r := range rerankResp.Results {
		if r.Index < 0 || r.Index >= len(documents) {
			continue
		}
		results = append(results, llm.RerankResult{
			Index: r.Index,
			Score: r.RelevanceScore,
		})
	}

	return results, nil
}
