// Package llm is the optional extraction collaborator: it turns facility
// free text into raw capability claims through an OpenAI-compatible API.
// The validation, scoring, and aggregation core never imports this package;
// extraction can equally come from any other source that produces the same
// RawClaim records.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/caregap/internal/model"
)

// Provider defines the interface for extraction backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Extract produces raw capability claims from facility text
	Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// ExtractionRequest contains the input for capability extraction
type ExtractionRequest struct {
	FacilityName string
	FacilityType string

	// Text is the cleaned facility description to extract from
	Text string

	// Model overrides the configured model when set
	Model string

	MaxTokens int
}

// ExtractionResponse contains the extractor's output
type ExtractionResponse struct {
	Claims     []model.RawClaim
	Model      string
	TokensUsed int
}

// Config holds extraction provider configuration
type Config struct {
	// Provider name: "openai" covers any OpenAI-compatible endpoint
	// (OpenAI, Groq, Ollama) via BaseURL; "" disables extraction
	Provider string

	Model   string
	APIKey  string
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	MaxTokens int
}

// ConfigFromModel adapts the application config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.TimeoutSeconds,
		MaxTokens: cfg.MaxTokens,
	}
}

// NewProvider creates the configured provider
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai", "groq", "ollama":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, fmt.Errorf("no extraction provider configured")
	default:
		return nil, fmt.Errorf("unknown extraction provider %q", cfg.Provider)
	}
}

// BuildPrompt constructs the extraction prompt. The model must answer with
// strict JSON; anything else fails parsing and surfaces as an error rather
// than being guessed at.
func BuildPrompt(req ExtractionRequest) string {
	var b strings.Builder

	b.WriteString("You are a medical facility capability extraction expert. ")
	b.WriteString("Extract ALL medical capabilities from the facility information below.\n\n")
	fmt.Fprintf(&b, "Facility: %s", req.FacilityName)
	if req.FacilityType != "" {
		fmt.Fprintf(&b, " (%s)", req.FacilityType)
	}
	b.WriteString("\n\nFacility information:\n")
	b.WriteString(req.Text)
	b.WriteString("\n\nRules:\n")
	b.WriteString("1. Only extract capabilities the text actually mentions. Never invent.\n")
	b.WriteString("2. Quote the exact supporting text in \"evidence\".\n")
	b.WriteString("3. Confidence: 1.0 explicit statement, 0.7 implied, 0.4 uncertain.\n")
	b.WriteString("4. Availability must be one of: available, limited, unavailable, unknown, permanent, intermittent, visiting, planned.\n")
	b.WriteString("5. List prerequisite services the text mentions for a capability in \"dependencies\".\n\n")
	b.WriteString("Respond with JSON only, in this shape:\n")
	b.WriteString(`{"capabilities": [{"capability": "emergency care", "evidence": ["24-hour emergency department"], "confidence": 1.0, "availability": "permanent", "dependencies": []}]}`)
	b.WriteString("\n")

	return b.String()
}
