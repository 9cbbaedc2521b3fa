package cloudflare

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEnsureTunnel_ReturnsExisting(t *testing.T) {
	created := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(apiResponse{
				Success: true,
				Result:  json.RawMessage(`[{"id":"tun-1","name":"web-tunnel"}]`),
			})
		case http.MethodPost:
			created++
			t.Error("should not create when a tunnel already exists")
		}
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	tunnel, err := c.EnsureTunnel(context.Background(), "acc-1", "web-tunnel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tunnel.ID != "tun-1" {
		t.Errorf("expected tun-1, got %s", tunnel.ID)
	}
	if created != 0 {
		t.Errorf("expected no create calls, got %d", created)
	}
}

func TestEnsureTunnel_CreatesWhenMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(apiResponse{
				Success: true,
				Result:  json.RawMessage(`[]`),
			})
		case http.MethodPost:
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["config_src"] != "cloudflare" {
				t.Errorf("expected remotely managed tunnel, got config_src=%s", body["config_src"])
			}
			json.NewEncoder(w).Encode(apiResponse{
				Success: true,
				Result:  json.RawMessage(`{"id":"tun-new","name":"web-tunnel"}`),
			})
		}
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	tunnel, err := c.EnsureTunnel(context.Background(), "acc-1", "web-tunnel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tunnel.ID != "tun-new" {
		t.Errorf("expected tun-new, got %s", tunnel.ID)
	}
}

func TestGetTunnelByName_IgnoresPartialMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{
			Success: true,
			Result:  json.RawMessage(`[{"id":"tun-2","name":"web-tunnel-old"}]`),
		})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	tunnel, err := c.GetTunnelByName(context.Background(), "acc-1", "web-tunnel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tunnel != nil {
		t.Errorf("expected nil for name mismatch, got %s", tunnel.Name)
	}
}

func TestGetTunnelToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/cfd_tunnel/tun-1/token") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(apiResponse{
			Success: true,
			Result:  json.RawMessage(`"eyJhIjoiYiJ9"`),
		})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	token, err := c.GetTunnelToken(context.Background(), "acc-1", "tun-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "eyJhIjoiYiJ9" {
		t.Errorf("unexpected token value")
	}
}

func TestGetTunnelToken_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{
			Success: true,
			Result:  json.RawMessage(`""`),
		})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	_, err := c.GetTunnelToken(context.Background(), "acc-1", "tun-1")
	if err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestUpdateTunnelConfiguration_AppendsCatchAll(t *testing.T) {
	var sent struct {
		Config TunnelConfig `json:"config"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method: %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&sent)
		json.NewEncoder(w).Encode(apiResponse{Success: true, Result: json.RawMessage(`{}`)})
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))

	cfg := TunnelConfig{Ingress: []IngressRule{
		{Hostname: "app.example.com", Service: "http://localhost:8080"},
	}}
	if err := c.UpdateTunnelConfiguration(context.Background(), "acc-1", "tun-1", cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules := sent.Config.Ingress
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	last := rules[len(rules)-1]
	if last.Hostname != "" || last.Service != CatchAllService {
		t.Errorf("last rule must be the 404 catch-all, got %+v", last)
	}
}

func TestNormalizeIngress(t *testing.T) {
	rules := []IngressRule{
		{Service: "http://localhost:9999"},
		{Hostname: "app.example.com", Service: "http://localhost:8080"},
		{Service: CatchAllService},
	}

	out := NormalizeIngress(rules)
	if len(out) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(out))
	}
	if out[0].Hostname != "app.example.com" {
		t.Errorf("hostname rule should survive normalization")
	}
	if out[1].Service != CatchAllService {
		t.Errorf("catch-all must terminate the list, got %+v", out[1])
	}
}

func TestIngressEqual(t *testing.T) {
	a := []IngressRule{{Hostname: "app.example.com", Service: "http://localhost:8080"}}
	b := []IngressRule{
		{Hostname: "app.example.com", Service: "http://localhost:8080"},
		{Service: CatchAllService},
	}
	if !IngressEqual(a, b) {
		t.Error("rule lists differing only in catch-all should be equal")
	}

	c := []IngressRule{{Hostname: "app.example.com", Service: "http://localhost:9090"}}
	if IngressEqual(a, c) {
		t.Error("differing service targets should not be equal")
	}
}

func TestTunnelCNAME(t *testing.T) {
	if got := TunnelCNAME("tun-1"); got != "tun-1.cfargotunnel.com" {
		t.Errorf("unexpected CNAME target: %s", got)
	}
}
