package cloudflare

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnsureDNSRecord_Create(t *testing.T) {
	var created Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(apiResponse{
				Success: true,
				Result:  json.RawMessage(`[]`),
			})
		case http.MethodPost:
			json.NewDecoder(r.Body).Decode(&created)
			created.ID = "rec-1"
			result, _ := json.Marshal(created)
			json.NewEncoder(w).Encode(apiResponse{Success: true, Result: result})
		}
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	got, err := c.EnsureDNSRecord(context.Background(), "zone-123", Record{
		Type:    "CNAME",
		Name:    "app.example.com",
		Content: "tun-1.cfargotunnel.com",
		Proxied: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "rec-1" {
		t.Errorf("expected rec-1, got %s", got.ID)
	}
	if !created.Proxied {
		t.Error("record should be created proxied")
	}
}

func TestEnsureDNSRecord_NoopWhenMatching(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s call for a matching record", r.Method)
		}
		json.NewEncoder(w).Encode(apiResponse{
			Success: true,
			Result:  json.RawMessage(`[{"id":"rec-1","type":"CNAME","name":"app.example.com","content":"tun-1.cfargotunnel.com","proxied":true}]`),
		})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	got, err := c.EnsureDNSRecord(context.Background(), "zone-123", Record{
		Type:    "CNAME",
		Name:    "app.example.com",
		Content: "tun-1.cfargotunnel.com",
		Proxied: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "rec-1" {
		t.Errorf("expected existing record back, got %s", got.ID)
	}
}

func TestEnsureDNSRecord_UpdatesOnDrift(t *testing.T) {
	var updatedID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(apiResponse{
				Success: true,
				Result:  json.RawMessage(`[{"id":"rec-1","type":"CNAME","name":"app.example.com","content":"stale.cfargotunnel.com","proxied":true}]`),
			})
		case http.MethodPut:
			parts := pathParts(r.URL.Path)
			updatedID = parts[len(parts)-1]
			var body Record
			json.NewDecoder(r.Body).Decode(&body)
			result, _ := json.Marshal(body)
			json.NewEncoder(w).Encode(apiResponse{Success: true, Result: result})
		}
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	got, err := c.EnsureDNSRecord(context.Background(), "zone-123", Record{
		Type:    "CNAME",
		Name:    "app.example.com",
		Content: "tun-1.cfargotunnel.com",
		Proxied: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updatedID != "rec-1" {
		t.Errorf("expected update of rec-1, got %q", updatedID)
	}
	if got.Content != "tun-1.cfargotunnel.com" {
		t.Errorf("expected new content, got %s", got.Content)
	}
}

func TestListDNSRecords_Pagination(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var result json.RawMessage
		if r.URL.Query().Get("page") == "1" {
			result = json.RawMessage(`[{"id":"r1","type":"CNAME","name":"a.example.com"}]`)
		} else {
			result = json.RawMessage(`[{"id":"r2","type":"CNAME","name":"b.example.com"}]`)
		}
		json.NewEncoder(w).Encode(apiResponse{
			Success:    true,
			Result:     result,
			ResultInfo: resultInfo{Page: calls, TotalPages: 2},
		})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	records, err := c.ListDNSRecords(context.Background(), "zone-123", "CNAME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
	if calls != 2 {
		t.Errorf("expected 2 page fetches, got %d", calls)
	}
}

func TestDeleteDNSRecord(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		parts := pathParts(r.URL.Path)
		deleted = parts[len(parts)-1]
		json.NewEncoder(w).Encode(apiResponse{Success: true, Result: json.RawMessage(`{}`)})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	if err := c.DeleteDNSRecord(context.Background(), "zone-123", "rec-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "rec-9" {
		t.Errorf("expected rec-9 deleted, got %q", deleted)
	}
}

func pathParts(path string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	return parts
}
