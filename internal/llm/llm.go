package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts generation providers for contract analysis. A client makes
// exactly one generation attempt per call; parsing and schema validation of
// the returned payload belong to the caller.
type Client interface {
	AnalyzeContract(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

// AnalyzeInput captures the inputs needed for a contract analysis.
type AnalyzeInput struct {
	ContractText  string
	PromptVersion string
}

// ErrNotConfigured is returned when no provider credential is available.
var ErrNotConfigured = errors.New("generation provider not configured")

// PlaceholderClient stands in when no provider could be constructed; every
// call fails with ErrNotConfigured.
type PlaceholderClient struct{}

// AnalyzeContract returns ErrNotConfigured.
func (PlaceholderClient) AnalyzeContract(ctx context.Context, input AnalyzeInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
