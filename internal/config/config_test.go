package config

import (
	"os"
	"testing"
)

const sampleConfig = `
llm:
  provider: openai
  base_url: https://api.example.com
  api_key: dummy
  model: gemini-2.0-flash
  system_prompt: You are a terse assistant.
server:
  host: 0.0.0.0
  port: "9090"
history:
  path: /tmp/luma-history.db
log:
  level: debug
`

// TestLoad verifies that Load honors CONFIG_PATH and unmarshals every section.
func TestLoad(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(sampleConfig); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.BaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base_url: %s", cfg.LLM.BaseURL)
	}
	if cfg.LLM.SystemPrompt != "You are a terse assistant." {
		t.Fatalf("unexpected system_prompt: %s", cfg.LLM.SystemPrompt)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("unexpected port: %s", cfg.Server.Port)
	}
	if cfg.History.Path != "/tmp/luma-history.db" {
		t.Fatalf("unexpected history path: %s", cfg.History.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
}

const minimalConfig = `
llm:
  api_key: dummy
`

// TestLoad_Defaults verifies defaults applied for omitted sections.
func TestLoad_Defaults(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(minimalConfig); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Server.Port)
	}
	if cfg.LLM.SystemPrompt != "You are a helpful assistant." {
		t.Fatalf("expected default system prompt, got %q", cfg.LLM.SystemPrompt)
	}
	if cfg.History.Path != "history.db" {
		t.Fatalf("expected default history path, got %s", cfg.History.Path)
	}
}
