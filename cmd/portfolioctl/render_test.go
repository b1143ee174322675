package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rediet/portfolio/internal/config"
	"github.com/rediet/portfolio/internal/domain/page"
	"github.com/rediet/portfolio/pkg/logger"
)

const testProfile = `{
  "name": "Rediet",
  "title": "Engineer",
  "email": "me@example.com",
  "summary": "Builds services.",
  "links": {"github": "https://github.com/rediet"}
}`

func testConfig(apiBase string) config.Config {
	var cfg config.Config
	cfg.GitHub.APIBase = apiBase
	cfg.GitHub.Host = "github.com"
	cfg.Mail.Subject = "Hello Rediet"
	return cfg
}

func writeProfile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(path, []byte(testProfile), 0o644))
	return path
}

func TestRenderPage(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/rediet/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"folio","stargazers_count":3,"html_url":"https://github.com/rediet/folio","updated_at":"2024-06-03T00:00:00Z"}]`))
	}))
	defer api.Close()

	var buf bytes.Buffer
	outcome, err := renderPage(context.Background(), testConfig(api.URL),
		renderOptions{ProfilePath: writeProfile(t), Theme: "light"}, api.Client(), logger.NewNopLogger(), &buf)
	require.NoError(t, err)

	assert.Equal(t, page.OutcomeComplete, outcome)
	out := buf.String()
	assert.Contains(t, out, `data-theme="light"`)
	assert.Contains(t, out, ">Rediet<")
	assert.Contains(t, out, "folio")
}

func TestRenderPageRemoteDown(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer api.Close()

	var buf bytes.Buffer
	outcome, err := renderPage(context.Background(), testConfig(api.URL),
		renderOptions{ProfilePath: writeProfile(t)}, api.Client(), logger.NewNopLogger(), &buf)
	require.NoError(t, err)

	assert.Equal(t, page.OutcomeRemoteUnavailable, outcome)
	assert.Contains(t, buf.String(), `data-theme="dark"`)
	assert.Contains(t, buf.String(), "View GitHub")
}

func TestRenderPageMissingProfile(t *testing.T) {
	var buf bytes.Buffer
	outcome, err := renderPage(context.Background(), testConfig("http://127.0.0.1:0"),
		renderOptions{ProfilePath: filepath.Join(t.TempDir(), "missing.json")}, http.DefaultClient, logger.NewNopLogger(), &buf)
	require.NoError(t, err)
	assert.Equal(t, page.OutcomeDataUnavailable, outcome)
}
