package cloudflare

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetZoneID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "example.com" {
			t.Errorf("unexpected domain: %s", r.URL.Query().Get("name"))
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(apiResponse{
			Success: true,
			Result:  json.RawMessage(`[{"id":"zone-123"}]`),
		})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	id, err := c.GetZoneID(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "zone-123" {
		t.Errorf("expected zone-123, got %s", id)
	}
}

func TestGetZoneID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{
			Success: true,
			Result:  json.RawMessage(`[]`),
		})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	_, err := c.GetZoneID(context.Background(), "notfound.com")
	if err == nil {
		t.Fatal("expected error for missing zone")
	}
}

func TestDo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(apiResponse{
			Success: false,
			Errors:  []apiError{{Code: 10000, Message: "Authentication error"}},
		})
	}))
	defer srv.Close()

	c := NewClient("bad-token", WithBaseURL(srv.URL))

	_, err := c.GetZoneID(context.Background(), "example.com")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Authentication error") {
		t.Errorf("error should carry the API message, got: %v", err)
	}
}

func TestDo_SuccessFalseWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{
			Success: false,
			Errors:  []apiError{{Code: 1001, Message: "invalid input"}},
		})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	_, err := c.GetZoneID(context.Background(), "example.com")
	if err == nil {
		t.Fatal("expected error when success flag is false")
	}
}
