package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestRoundTripAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
	}))
	defer server.Close()

	transport := New(nil)
	transport.SetToken("T1")
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer T1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("expected generated request id")
	}
}

func TestRoundTripWithoutTokenLeavesRequestUnmodified(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	transport := New(nil)
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestClearTokenStopsAttaching(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	transport := New(nil)
	transport.SetToken("T1")
	transport.ClearToken()
	client := &http.Client{Transport: transport}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestRoundTripDoesNotMutateCallerRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	transport := New(nil)
	transport.SetToken("T1")

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if req.Header.Get("Authorization") != "" || req.Header.Get("X-Request-ID") != "" {
		t.Fatal("caller request was mutated")
	}
}

func TestUnauthorizedHandlerFiresOncePerMarkedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var teardowns atomic.Int32
	transport := New(nil)
	transport.SetToken("T1")
	transport.SetUnauthorizedHandler(func() { teardowns.Add(1) })

	ctx := WithRetryMark(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 propagated, got %d", resp.StatusCode)
		}
	}

	if got := teardowns.Load(); got != 1 {
		t.Fatalf("expected 1 teardown, got %d", got)
	}
}

func TestUnauthorizedHandlerFiresPerLogicalRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var teardowns atomic.Int32
	transport := New(nil)
	transport.SetUnauthorizedHandler(func() { teardowns.Add(1) })

	for i := 0; i < 2; i++ {
		ctx := WithRetryMark(context.Background())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
		if err != nil {
			t.Fatalf("NewRequest failed: %v", err)
		}
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip failed: %v", err)
		}
		resp.Body.Close()
	}

	if got := teardowns.Load(); got != 2 {
		t.Fatalf("expected a teardown per logical request, got %d", got)
	}
}

func TestWithRetryMarkIdempotent(t *testing.T) {
	ctx := WithRetryMark(context.Background())
	if again := WithRetryMark(ctx); again != ctx {
		t.Fatal("expected re-marking to return the same context")
	}
}

func TestRoundTripKeepsCallerRequestID(t *testing.T) {
	var gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
	}))
	defer server.Close()

	transport := New(nil)
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("X-Request-ID", "caller-id")

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if gotRequestID != "caller-id" {
		t.Fatalf("expected caller request id preserved, got %q", gotRequestID)
	}
}
