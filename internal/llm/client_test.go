package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionResponse(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestGenerateStructured(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionResponse(`{"position": "A"}`)))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithModel("test-model"))

	raw, err := client.GenerateStructured(context.Background(), "prompt", 500)
	if err != nil {
		t.Fatalf("GenerateStructured() error = %v", err)
	}

	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("output not unmarshalable: %v", err)
	}
	if out["position"] != "A" {
		t.Errorf("output = %v", out)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || gotReq.MaxTokens != 500 {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Error("request should ask for a JSON object response")
	}
}

func TestGenerateStructuredStripsCodeFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("```json\n{\"decision\": \"B\"}\n```")))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	raw, err := client.GenerateStructured(context.Background(), "prompt", 100)
	if err != nil {
		t.Fatalf("GenerateStructured() error = %v", err)
	}
	if string(raw) != `{"decision": "B"}` {
		t.Errorf("raw = %s", raw)
	}
}

func TestGenerateStructuredRejectsNonObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain text", "the answer is A"},
		{"json array", `["A"]`},
		{"truncated object", `{"position": "A`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(completionResponse(tt.content)))
			}))
			defer server.Close()

			client := NewClient("k", WithBaseURL(server.URL))

			_, err := client.GenerateStructured(context.Background(), "prompt", 100)
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected GenerationError, got %v", err)
			}
		})
	}
}

func TestGenerateStructuredAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	_, err := client.GenerateStructured(context.Background(), "prompt", 100)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want 429", genErr.Status)
	}
}

func TestGenerateStructuredEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	if _, err := client.GenerateStructured(context.Background(), "prompt", 100); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
