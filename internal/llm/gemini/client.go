package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"contract-backend/internal/llm"
	"contract-backend/internal/shared/telemetry"
)

const defaultModel = "gemini-2.5-flash"

// Client implements llm.Client using the Gemini API with a JSON response
// MIME type, so the model is constrained to emit a bare JSON object.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: genaiClient, model: model}, nil
}

// AnalyzeContract makes a single generation call with the contract text as
// the user content and the analysis prompt as system instruction.
func (c *Client) AnalyzeContract(ctx context.Context, input llm.AnalyzeInput) (json.RawMessage, error) {
	system, known := llm.SystemPrompt(input.PromptVersion)
	if !known {
		telemetry.Warn("llm.prompt.unknown_version", map[string]any{
			"version": input.PromptVersion,
			"model":   c.model,
		})
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(input.ContractText), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	content := strings.TrimSpace(result.Text())
	if content == "" {
		return nil, fmt.Errorf("gemini response empty content")
	}

	logUsage(c.model, input.PromptVersion, result)
	return json.RawMessage(content), nil
}

func logUsage(model, promptVersion string, result *genai.GenerateContentResponse) {
	fields := map[string]any{
		"provider":       "gemini",
		"model":          model,
		"prompt_version": promptVersion,
	}
	if meta := result.UsageMetadata; meta != nil {
		fields["prompt_tokens"] = meta.PromptTokenCount
		fields["completion_tokens"] = meta.CandidatesTokenCount
		fields["total_tokens"] = meta.TotalTokenCount
	}
	telemetry.Info("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
