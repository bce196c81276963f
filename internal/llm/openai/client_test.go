package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contract-backend/internal/llm"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("  ", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestNewClientDefaultsModel(t *testing.T) {
	c, err := NewClient("sk-test", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.model != defaultModel {
		t.Fatalf("expected default model %s, got %s", defaultModel, c.model)
	}
}

func TestAnalyzeContractSendsJSONObjectFormat(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"riskLevel\":\"LOW\",\"summary\":\"ok\",\"redFlags\":[],\"goodPoints\":[]}"}}]}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_BASE_URL", srv.URL)
	c, err := NewClient("sk-test", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	raw, err := c.AnalyzeContract(context.Background(), llm.AnalyzeInput{
		ContractText:  "Cláusula 1: multa de 50%.",
		PromptVersion: "contract_v1",
	})
	if err != nil {
		t.Fatalf("AnalyzeContract: %v", err)
	}
	if !json.Valid(raw) {
		t.Fatalf("expected valid JSON, got %q", raw)
	}

	if captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected response_format json_object, got %q", captured.ResponseFormat.Type)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" {
		t.Fatalf("expected system message first, got %q", captured.Messages[0].Role)
	}
	if !strings.Contains(captured.Messages[1].Content, "Cláusula 1") {
		t.Fatalf("expected contract text in user message, got %q", captured.Messages[1].Content)
	}
}

func TestAnalyzeContractSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_BASE_URL", srv.URL)
	c, err := NewClient("sk-test", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.AnalyzeContract(context.Background(), llm.AnalyzeInput{ContractText: "texto"})
	if err == nil {
		t.Fatal("expected provider error")
	}
	if !strings.Contains(err.Error(), "insufficient_quota") {
		t.Fatalf("expected provider error type in message, got %v", err)
	}
}
