package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(server *httptest.Server) *Client {
	client := NewClient("test-key", "")
	client.baseURL = server.URL
	return client
}

func TestGenerateReturnsTrimmedReply(t *testing.T) {
	var captured string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		captured = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Here is a joke.  "}}]}`))
	}))
	defer server.Close()

	reply, err := newTestClient(server).Generate(context.Background(), "Tell me a joke.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Here is a joke." {
		t.Fatalf("expected trimmed reply, got %q", reply)
	}
	if !strings.Contains(captured, `"max_tokens":150`) {
		t.Fatalf("expected the assistant token budget in request, got %s", captured)
	}
}

func TestCoachUsesLongerBudget(t *testing.T) {
	var captured string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured = string(body)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Focus on one task."}}]}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server).Coach(context.Background(), "How do I focus?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(captured, `"max_tokens":300`) {
		t.Fatalf("expected the coach token budget in request, got %s", captured)
	}
	if !strings.Contains(captured, "productivity coach") {
		t.Fatalf("expected the coach persona in request, got %s", captured)
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad prompt","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).Generate(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "bad prompt") {
		t.Fatalf("expected the upstream message surfaced, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected a single request for a client error, got %d", requests)
	}
}

func TestServerErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, retryable, err := newTestClient(server).doRequest(context.Background(), []byte(`{}`))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !retryable {
		t.Fatal("expected a 5xx response classified as retryable")
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient("", "")
	if _, err := client.Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected an error without an API key")
	}
}
