package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateTextSendsPromptsAndOptions(t *testing.T) {
	var gotReq oaiChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  hello  "}},
			},
		})
	}))
	defer srv.Close()

	g := NewOpenAICompatGenerator(srv.URL+"/v1", "test-key", "test-model")
	text, err := g.GenerateText(context.Background(), "system text", "user text", Options{Temperature: 0.7, JSONResponse: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "hello" {
		t.Fatalf("unexpected text: %q", text)
	}
	if gotReq.Model != "test-model" {
		t.Fatalf("unexpected model: %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "user text" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0.7 {
		t.Fatalf("temperature not forwarded")
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Fatalf("response_format not forwarded")
	}
}

func TestGenerateTextSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited", "type": "rate_limit"},
		})
	}))
	defer srv.Close()

	g := NewOpenAICompatGenerator(srv.URL, "", "test-model")
	if _, err := g.GenerateText(context.Background(), "", "question", Options{}); err == nil {
		t.Fatalf("expected api error")
	}
}

func TestGenerateTextHonorsContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	g := NewOpenAICompatGenerator(srv.URL, "", "test-model")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.GenerateText(ctx, "", "question", Options{}); err == nil {
		t.Fatalf("expected context cancellation error")
	}
}
