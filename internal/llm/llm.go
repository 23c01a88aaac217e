// Package llm provides the generative-backend client and the send capability
// built on it.
package llm

import (
	"github.com/sashabaranov/go-openai"

	"github.com/lumachat/luma/internal/config"
)

// NewClient creates a client for any OpenAI-compatible backend.
func NewClient(cfg config.LLMConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}
