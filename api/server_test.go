package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/anujv/portfolio/api"
	dbfs "github.com/anujv/portfolio/db"
	"github.com/anujv/portfolio/internal/assets"
	"github.com/anujv/portfolio/internal/config"
	"github.com/anujv/portfolio/internal/db"
)

const testSecret = "testsecret"

// setupServer boots the full router against a fresh on-disk sqlite database
// and an empty upload directory.
func setupServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}

	// migrations only; seed data would pollute list assertions
	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("migrate: %v", err)
	}

	uploadDir := t.TempDir()
	store, err := assets.NewStore(uploadDir, nil)
	if err != nil {
		d.Close()
		t.Fatalf("assets.NewStore: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:      testSecret,
		TokenDuration:  time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
	}

	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "unknown", d, store))
	t.Cleanup(func() { srv.Close(); d.Close() })

	return srv, uploadDir
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, testEnvelope) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var env testEnvelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal envelope %q: %v", raw, err)
		}
	}

	return resp, env
}

func jsonHasMessage(body []byte, want string) bool {
	var env testEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return false
	}
	return env.Message == want
}

// registerAdmin bootstraps the admin account and returns a bearer token.
func registerAdmin(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "pw",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d (%s)", resp.StatusCode, env.Message)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal register data: %v", err)
	}
	if data.Token == "" {
		t.Fatal("register returned empty token")
	}

	return data.Token
}

// multipartBody builds a multipart form with the given fields and an
// optional file part named "image".
func multipartBody(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileContent); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	return buf, mw.FormDataContentType()
}

func doMultipart(t *testing.T, method, url, token string, fields map[string]string, fileName string, fileContent []byte) (*http.Response, testEnvelope) {
	t.Helper()

	buf, contentType := multipartBody(t, fields, fileName, fileContent)
	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var env testEnvelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal envelope %q: %v", raw, err)
		}
	}

	return resp, env
}
