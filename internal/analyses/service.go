package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"contract-backend/internal/extract"
	"contract-backend/internal/llm"
	"contract-backend/internal/shared/telemetry"
)

const defaultGenerationTimeout = 60 * time.Second

// Service enforces the analysis contract: it checks the provider credential,
// invokes generation exactly once with the fixed prompt, and validates the
// structured result.
type Service struct {
	Generator llm.Client
	Extractor extract.TextExtractor

	// Credential is the active provider's API key. Checked non-empty before
	// every generation call; absence is a configuration error, not a
	// request error.
	Credential string

	PromptVersion   string
	AnalysisVersion string
	Timeout         time.Duration
}

// Analyze runs the contract text through the generation capability and
// returns the validated result. Exactly one generation attempt is made; the
// caller resubmits on failure.
func (s *Service) Analyze(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(s.Credential) == "" {
		return Result{}, ErrNotConfigured
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.Generator.AnalyzeContract(genCtx, llm.AnalyzeInput{
		ContractText:  text,
		PromptVersion: s.PromptVersion,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return Result{}, ErrNotConfigured
		}
		return Result{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	result, err := parseResult(raw)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return result, nil
}

// parseResult decodes the generation output and normalizes it: nil arrays
// become empty, and the risk level is uppercased. An unrecognized risk level
// passes through as-is rather than hiding a usable result.
func parseResult(raw json.RawMessage) (Result, error) {
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, err
	}

	result.RiskLevel = RiskLevel(strings.ToUpper(strings.TrimSpace(string(result.RiskLevel))))
	if !result.RiskLevel.Known() {
		telemetry.Warn("analysis.risk_level.unknown", map[string]any{
			"risk_level": string(result.RiskLevel),
		})
	}
	if result.RedFlags == nil {
		result.RedFlags = []RedFlag{}
	}
	if result.GoodPoints == nil {
		result.GoodPoints = []string{}
	}
	return result, nil
}
