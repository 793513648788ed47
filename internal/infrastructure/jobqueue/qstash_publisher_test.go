package jobqueue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pickemhq/pickem-api/internal/platform/logging"
	"github.com/pickemhq/pickem-api/internal/platform/resilience"
)

func TestQStashPublisher_Enqueue(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotDedup, gotDelay, gotForward string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		gotDelay = r.Header.Get("Upstash-Delay")
		gotForward = r.Header.Get("Upstash-Forward-X-Internal-Job-Token")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://pickem-api.fly.dev",
		Retries:          2,
		InternalJobToken: "internal-token",
		CircuitBreaker:   resilience.DefaultCircuitBreakerConfig(),
	}, logging.NewNop())

	err := publisher.Enqueue(context.Background(), "/internal/jobs/sync-results", map[string]any{"dispatch_id": "d-1"}, 30*time.Second, "sync-results-d-1")
	if err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/v2/publish/") {
		t.Fatalf("unexpected publish path: %s", gotPath)
	}
	if !strings.HasSuffix(gotPath, "/internal/jobs/sync-results") {
		t.Fatalf("expected target path in publish URL, got %s", gotPath)
	}
	if gotAuth != "Bearer qstash-token" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if gotDedup != "sync-results-d-1" {
		t.Fatalf("unexpected dedup id: %s", gotDedup)
	}
	if gotDelay != "30s" {
		t.Fatalf("unexpected delay header: %s", gotDelay)
	}
	if gotForward != "internal-token" {
		t.Fatalf("expected internal job token forwarded, got %q", gotForward)
	}
}

func TestQStashPublisher_Enqueue_RequiresPath(t *testing.T) {
	t.Parallel()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "https://qstash.upstash.io",
		Token:         "t",
		TargetBaseURL: "https://pickem-api.fly.dev",
	}, logging.NewNop())

	if err := publisher.Enqueue(context.Background(), "  ", nil, 0, ""); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestQStashPublisher_Enqueue_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:        server.URL,
		Token:          "bad-token",
		TargetBaseURL:  "https://pickem-api.fly.dev",
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
	}, logging.NewNop())

	err := publisher.Enqueue(context.Background(), "/internal/jobs/sync-results", nil, 0, "")
	if err == nil {
		t.Fatalf("expected error for 401 response")
	}
	if isQStashCircuitFailure(err) {
		t.Fatalf("401 must not trip the circuit breaker: %v", err)
	}
}
