package main

// Manual smoke tool for the analysis prompt against a live provider:
//   go run ./cmd/prompttest -contract ./contrato.pdf
//   go run ./cmd/prompttest -text "Cláusula 1: ..."

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"contract-backend/internal/analyses"
	"contract-backend/internal/extract"
	"contract-backend/internal/llm"
	"contract-backend/internal/llm/gemini"
	"contract-backend/internal/llm/openai"
	"contract-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	contractPath := flag.String("contract", "", "Path to contract PDF")
	inlineText := flag.String("text", "", "Inline contract text (alternative to -contract)")
	promptVersion := flag.String("prompt-version", "contract_v1", "Prompt version")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider (gemini|openai)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	outPath := flag.String("out", "", "Path to write the parsed result JSON (optional)")
	flag.Parse()

	text := strings.TrimSpace(*inlineText)
	if text == "" {
		if strings.TrimSpace(*contractPath) == "" {
			exitErr("either -contract or -text is required")
		}
		data, err := os.ReadFile(*contractPath)
		if err != nil {
			exitErr(fmt.Sprintf("read contract: %v", err))
		}
		text, err = extract.PDFExtractor{}.ExtractText(context.Background(), data, extract.MimePDF)
		if err != nil {
			exitErr(fmt.Sprintf("extract contract text: %v", err))
		}
	}

	client, credential, err := buildClient(cfg, *provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	svc := &analyses.Service{
		Generator:     client,
		Extractor:     extract.PDFExtractor{},
		Credential:    credential,
		PromptVersion: *promptVersion,
	}

	result, err := svc.Analyze(context.Background(), text)
	if err != nil {
		exitErr(fmt.Sprintf("analyze: %v", err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("marshal result: %v", err))
	}
	fmt.Println(string(pretty))

	if strings.TrimSpace(*outPath) != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
}

func buildClient(cfg config.Config, provider, model string) (llm.Client, string, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, model)
		if err != nil {
			return nil, "", err
		}
		return client, cfg.OpenAIAPIKey, nil
	default:
		client, err := gemini.NewClient(cfg.GoogleAPIKey, model)
		if err != nil {
			return nil, "", err
		}
		return client, cfg.GoogleAPIKey, nil
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
