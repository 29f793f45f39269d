package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/caregap/internal/model"
)

// OpenAIProvider implements Provider for any OpenAI-compatible chat API.
// Groq and Ollama expose the same surface, so a BaseURL is all it takes to
// point extraction at either.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI-compatible provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" && config.BaseURL == "" {
		return nil, fmt.Errorf("extraction API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	if p.config.Provider != "" {
		return p.config.Provider
	}
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// extractionPayload is the strict JSON shape the model must return
type extractionPayload struct {
	Capabilities []struct {
		Capability   string   `json:"capability"`
		Evidence     []string `json:"evidence"`
		Confidence   float64  `json:"confidence"`
		Availability string   `json:"availability"`
		Dependencies []string `json:"dependencies"`
	} `json:"capabilities"`
}

// Extract produces raw claims from facility text
func (p *OpenAIProvider) Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResponse, error) {
	chatModel := req.Model
	if chatModel == "" {
		chatModel = p.config.Model
	}
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 2000
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You extract medical facility capabilities into strict JSON. You never invent capabilities that are not in the provided text.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1, // Low for consistent extraction
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("extraction API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from extraction provider")
	}

	claims, err := ParseExtraction(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &ExtractionResponse{
		Claims:     claims,
		Model:      chatModel,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// ParseExtraction decodes the model's JSON answer into raw claims.
// Fenced code blocks around the JSON are tolerated.
func ParseExtraction(content string) ([]model.RawClaim, error) {
	content = strings.TrimSpace(content)
	if strings.Contains(content, "```") {
		if after, found := strings.CutPrefix(content, "```json"); found {
			content = after
		} else {
			content = strings.TrimPrefix(content, "```")
		}
		if i := strings.Index(content, "```"); i >= 0 {
			content = content[:i]
		}
		content = strings.TrimSpace(content)
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	claims := make([]model.RawClaim, 0, len(payload.Capabilities))
	for _, c := range payload.Capabilities {
		availability := model.Availability(strings.ToLower(strings.TrimSpace(c.Availability)))
		if availability == "" {
			availability = model.AvailabilityUnknown
		}
		claims = append(claims, model.RawClaim{
			Capability:   c.Capability,
			Evidence:     c.Evidence,
			Confidence:   c.Confidence,
			Availability: availability,
			Dependencies: c.Dependencies,
		})
	}

	return claims, nil
}
