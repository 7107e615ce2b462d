package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var payload struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
	if payload.Status != "OK" {
		t.Errorf("status = %q, want OK", payload.Status)
	}
}

func TestVersionEndpoint(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatalf("get version: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Version   string `json:"version"`
		BuildTime string `json:"buildTime"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Version != "test" {
		t.Errorf("version = %q, want test", payload.Version)
	}
}
