package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"schoolscout/internal/model"
)

// maxPageText bounds how much page text is sent to the provider.
const maxPageText = 6000

// Contact is the structured result the provider is asked to produce.
type Contact struct {
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// ContactExtractor asks an LLM to pull contact fields out of a detail page's
// visible text.
type ContactExtractor struct {
	provider Provider
}

// NewContactExtractor builds an extractor from configuration. Returns nil
// without error when no provider is configured.
func NewContactExtractor(cfg Config) (*ContactExtractor, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &ContactExtractor{provider: provider}, nil
}

// Extract returns record fields found in pageText. Fields the model reports
// as empty are omitted from the result.
func (e *ContactExtractor) Extract(ctx context.Context, pageText string) (map[string]string, error) {
	pageText = strings.TrimSpace(pageText)
	if pageText == "" {
		return nil, fmt.Errorf("empty page text")
	}
	if len(pageText) > maxPageText {
		pageText = pageText[:maxPageText]
	}

	raw, err := e.provider.Complete(ctx, "Page text:\n\n"+pageText)
	if err != nil {
		return nil, fmt.Errorf("%s completion: %w", e.provider.Name(), err)
	}

	contact, err := parseContact(raw)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	if v := strings.TrimSpace(contact.Phone); v != "" {
		fields[model.FieldPhone] = v
	}
	if v := strings.TrimSpace(contact.Website); v != "" {
		fields[model.FieldWebsite] = v
	}
	return fields, nil
}

// parseContact tolerates code fences and leading prose around the JSON
// object.
func parseContact(raw string) (Contact, error) {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var contact Contact
	if err := json.Unmarshal([]byte(raw), &contact); err != nil {
		return Contact{}, fmt.Errorf("parse contact response: %w", err)
	}
	return contact, nil
}
