package analysis

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type textPart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role"`
	Parts []textPart `json:"parts"`
}

type wireRequest struct {
	SystemInstruction wireContent   `json:"systemInstruction"`
	Contents          []wireContent `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

func newTestGemini(t *testing.T, endpoint string) *GeminiClient {
	t.Helper()
	c, err := NewGeminiClient(context.Background(), endpoint, "test-model", "secret", time.Second)
	if err != nil {
		t.Fatalf("NewGeminiClient: %v", err)
	}
	return c
}

func TestGeminiClientAnalyze(t *testing.T) {
	var got wireRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1beta/models/test-model:generateContent" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "secret" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Two fast "},{"text":"movers. "}]}}]}`))
	}))
	defer srv.Close()

	c := newTestGemini(t, srv.URL+"/v1beta/")
	text, err := c.Analyze(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if text != "Two fast movers." {
		t.Fatalf("text = %q", text)
	}
	if math.Abs(got.GenerationConfig.Temperature-0.7) > 1e-6 {
		t.Errorf("temperature = %v", got.GenerationConfig.Temperature)
	}
	if len(got.SystemInstruction.Parts) != 1 || got.SystemInstruction.Parts[0].Text != SystemInstruction {
		t.Errorf("unexpected system instruction %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 1 || got.Contents[0].Parts[0].Text != "prompt" {
		t.Errorf("unexpected contents %+v", got.Contents)
	}
}

func TestGeminiClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()
	if _, err := newTestGemini(t, srv.URL+"/v1beta").Analyze(context.Background(), "p"); err == nil {
		t.Fatalf("expected error for non-200 status")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer empty.Close()
	text, err := newTestGemini(t, empty.URL+"/v1beta").Analyze(context.Background(), "p")
	if err != nil || text != "" {
		t.Fatalf("empty candidates: %q, %v", text, err)
	}
}
