package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

type projectJSON struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Image        string   `json:"image"`
	GithubURL    string   `json:"githubUrl"`
	LiveURL      string   `json:"liveUrl"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order"`
}

func decodeProject(t *testing.T, env testEnvelope) projectJSON {
	t.Helper()
	var p projectJSON
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("unmarshal project %s: %v", env.Data, err)
	}
	return p
}

func TestProjectsRequireAuthForWrites(t *testing.T) {
	srv, _ := setupServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/projects", "", map[string]string{
		"title": "x", "description": "y",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if env.Message != "Not authorized, no token provided" {
		t.Errorf("message = %q", env.Message)
	}

	for _, m := range []string{http.MethodPut, http.MethodDelete} {
		resp, _ := doJSON(t, m, srv.URL+"/api/projects/1", "", map[string]string{"title": "x"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", m, resp.StatusCode)
		}
	}
}

func TestProjectCreateWithImage(t *testing.T) {
	srv, _ := setupServer(t)
	tok := registerAdmin(t, srv)

	resp, env := doMultipart(t, http.MethodPost, srv.URL+"/api/projects", tok, map[string]string{
		"title":        "Chat App",
		"description":  "Realtime chat",
		"technologies": "React, Node.js , ,MongoDB",
		"githubUrl":    "https://github.com/x/chat",
		"featured":     "true",
		"order":        "2",
	}, "shot.png", []byte("pngdata"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d (%s)", resp.StatusCode, env.Message)
	}

	p := decodeProject(t, env)
	if p.Title != "Chat App" || !p.Featured || p.Order != 2 {
		t.Errorf("unexpected project: %+v", p)
	}

	// comma-split, trimmed, empties dropped
	want := []string{"React", "Node.js", "MongoDB"}
	if len(p.Technologies) != len(want) {
		t.Fatalf("technologies = %v, want %v", p.Technologies, want)
	}
	for i := range want {
		if p.Technologies[i] != want[i] {
			t.Errorf("technologies[%d] = %q, want %q", i, p.Technologies[i], want[i])
		}
	}

	// the stored reference must resolve over HTTP
	if p.Image == "" {
		t.Fatal("image reference empty")
	}
	imgResp, err := http.Get(srv.URL + p.Image)
	if err != nil {
		t.Fatalf("fetch image: %v", err)
	}
	imgResp.Body.Close()
	if imgResp.StatusCode != http.StatusOK {
		t.Errorf("image fetch status = %d, want 200", imgResp.StatusCode)
	}
}

func TestProjectCreateValidation(t *testing.T) {
	srv, _ := setupServer(t)
	tok := registerAdmin(t, srv)

	t.Run("missing title", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/projects", tok, map[string]string{
			"description": "y",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		if env.Message != "Title and description are required" {
			t.Errorf("message = %q", env.Message)
		}
	})

	t.Run("unsupported image type", func(t *testing.T) {
		resp, env := doMultipart(t, http.MethodPost, srv.URL+"/api/projects", tok, map[string]string{
			"title": "x", "description": "y",
		}, "malware.exe", []byte("mz"))
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		if env.Message != "Unsupported image type" {
			t.Errorf("message = %q", env.Message)
		}
	})

	t.Run("non-numeric order", func(t *testing.T) {
		resp, _ := doMultipart(t, http.MethodPost, srv.URL+"/api/projects", tok, map[string]string{
			"title": "x", "description": "y", "order": "first",
		}, "", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestProjectListOrdering(t *testing.T) {
	srv, _ := setupServer(t)
	tok := registerAdmin(t, srv)

	create := func(title string, order int) {
		t.Helper()
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/projects", tok, map[string]any{
			"title": title, "description": "d", "order": order,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %s: status %d (%s)", title, resp.StatusCode, env.Message)
		}
	}

	create("Last", 5)
	create("First", 0)
	create("Middle", 3)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/projects", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc == "" {
		t.Error("list response missing Cache-Control header")
	}

	var list []projectJSON
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []string{"First", "Middle", "Last"} {
		if list[i].Title != want {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Title, want)
		}
	}
}

func TestProjectPartialUpdate(t *testing.T) {
	srv, _ := setupServer(t)
	tok := registerAdmin(t, srv)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/projects", tok, map[string]any{
		"title":        "Original",
		"description":  "d",
		"technologies": []string{"Go", "SQLite"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d (%s)", resp.StatusCode, env.Message)
	}
	created := decodeProject(t, env)

	// update only the title; technologies must survive
	resp, env = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/projects/%d", srv.URL, created.ID), tok, map[string]string{
		"title": "Renamed",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d (%s)", resp.StatusCode, env.Message)
	}
	updated := decodeProject(t, env)
	if updated.Title != "Renamed" {
		t.Errorf("title = %q", updated.Title)
	}
	if len(updated.Technologies) != 2 || updated.Technologies[0] != "Go" {
		t.Errorf("technologies = %v, want kept", updated.Technologies)
	}
	if updated.Description != "d" {
		t.Errorf("description = %q, want kept", updated.Description)
	}
}

func TestProjectImageSwap(t *testing.T) {
	srv, _ := setupServer(t)
	tok := registerAdmin(t, srv)

	resp, env := doMultipart(t, http.MethodPost, srv.URL+"/api/projects", tok, map[string]string{
		"title": "p", "description": "d",
	}, "old.png", []byte("old"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d (%s)", resp.StatusCode, env.Message)
	}
	created := decodeProject(t, env)
	oldImage := created.Image

	resp, env = doMultipart(t, http.MethodPut, fmt.Sprintf("%s/api/projects/%d", srv.URL, created.ID), tok,
		map[string]string{}, "new.png", []byte("new"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d (%s)", resp.StatusCode, env.Message)
	}
	updated := decodeProject(t, env)
	if updated.Image == "" || updated.Image == oldImage {
		t.Fatalf("image not swapped: old %q new %q", oldImage, updated.Image)
	}

	newResp, err := http.Get(srv.URL + updated.Image)
	if err != nil {
		t.Fatalf("fetch new image: %v", err)
	}
	newResp.Body.Close()
	if newResp.StatusCode != http.StatusOK {
		t.Errorf("new image status = %d, want 200", newResp.StatusCode)
	}

	oldResp, err := http.Get(srv.URL + oldImage)
	if err != nil {
		t.Fatalf("fetch old image: %v", err)
	}
	oldResp.Body.Close()
	if oldResp.StatusCode != http.StatusNotFound {
		t.Errorf("old image status = %d, want 404", oldResp.StatusCode)
	}
}

func TestProjectDelete(t *testing.T) {
	srv, _ := setupServer(t)
	tok := registerAdmin(t, srv)

	resp, env := doMultipart(t, http.MethodPost, srv.URL+"/api/projects", tok, map[string]string{
		"title": "p", "description": "d",
	}, "img.jpg", []byte("jpg"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d (%s)", resp.StatusCode, env.Message)
	}
	created := decodeProject(t, env)

	resp, env = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/projects/%d", srv.URL, created.ID), tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d (%s)", resp.StatusCode, env.Message)
	}
	if env.Message != "Project deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}

	// record gone
	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/projects/%d", srv.URL, created.ID), "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", resp.StatusCode)
	}

	// file gone too
	imgResp, err := http.Get(srv.URL + created.Image)
	if err != nil {
		t.Fatalf("fetch image: %v", err)
	}
	imgResp.Body.Close()
	if imgResp.StatusCode != http.StatusNotFound {
		t.Errorf("image after delete: status = %d, want 404", imgResp.StatusCode)
	}
}

func TestProjectUnknownIDs(t *testing.T) {
	srv, _ := setupServer(t)
	tok := registerAdmin(t, srv)

	for _, id := range []string{"999", "0", "-4", "abc"} {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/projects/"+id, "", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("get %q: status = %d, want 404 (message %q)", id, resp.StatusCode, env.Message)
		}

		resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/projects/"+id, tok, map[string]string{"title": "x"})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("put %q: status = %d, want 404", id, resp.StatusCode)
		}
	}
}
