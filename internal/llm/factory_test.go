package llm

import "testing"

func TestNewProvider(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		p, err := NewProvider(Config{})
		if err != nil || p != nil {
			t.Errorf("empty provider should disable the fallback, got %v, %v", p, err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := NewProvider(Config{Provider: "skynet"}); err == nil {
			t.Error("expected error for unknown provider")
		}
	})

	t.Run("openai requires key", func(t *testing.T) {
		if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
			t.Error("expected error without API key")
		}
	})

	t.Run("anthropic requires key", func(t *testing.T) {
		if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
			t.Error("expected error without API key")
		}
	})

	t.Run("claude alias", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: "claude", APIKey: "test-key"})
		if err != nil {
			t.Fatalf("claude alias: %v", err)
		}
		if p.Name() != "anthropic" {
			t.Errorf("name = %q", p.Name())
		}
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: "ollama", Model: "llama3.1:8b"})
		if err != nil {
			t.Fatalf("ollama: %v", err)
		}
		if p.Name() != "ollama" {
			t.Errorf("name = %q", p.Name())
		}
	})
}

func TestNewContactExtractor_Disabled(t *testing.T) {
	e, err := NewContactExtractor(Config{})
	if err != nil {
		t.Fatalf("disabled extractor: %v", err)
	}
	if e != nil {
		t.Error("expected nil extractor when no provider is configured")
	}
}
