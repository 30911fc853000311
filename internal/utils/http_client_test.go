package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}
	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	// The provider adapter and the console must not share connection state.
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	if client1.Client == client2.Client {
		t.Fatal("expected each HTTPClient to carry its own *resty.Client")
	}
}

func TestHTTPClient_PerformsRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	client := NewHTTPClient()
	resp, err := client.R().Get(srv.URL)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, resp.StatusCode())
	}
	if string(resp.Body()) != "pong" {
		t.Errorf("expected body 'pong', got '%s'", resp.Body())
	}
}
