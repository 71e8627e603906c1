package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altlens/internal/analysis"
	"altlens/internal/config"
	"altlens/internal/model"
	"altlens/internal/roblox"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"altlens"}, args...))
	return out.String(), err
}

func TestInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "altlens.yaml")
	out, err := run(t, "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config written to:")

	t.Setenv("ROBLOX_API_KEY", "")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestAnalyzeWithoutInputFails(t *testing.T) {
	t.Setenv("ROBLOX_API_KEY", "")
	_, err := run(t, "analyze", "--config", filepath.Join(t.TempDir(), "none.yaml"), "--json")
	require.ErrorIs(t, err, analysis.ErrMissingInput)
}

// fakePlatform answers just enough for a minimal analysis: one user with no
// badges and an empty inventory.
func fakePlatform() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("POST /v1/usernames/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": []any{map[string]any{"id": 9, "name": "builder"}}})
	})
	mux.HandleFunc("GET /v1/users/9", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 9, "name": "builder", "displayName": "Builder", "created": time.Now().Add(-48 * time.Hour).Format(time.RFC3339)})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/count"):
			writeJSON(w, map[string]any{"count": 0})
		case strings.HasSuffix(r.URL.Path, "/inventory-items"):
			writeJSON(w, map[string]any{"inventoryItems": []any{}})
		default:
			writeJSON(w, map[string]any{"data": []any{}})
		}
	})
	return mux
}

func writeConfig(t *testing.T, base string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Endpoints = roblox.SameHost(base)
	cfg.Client.PageDelay = 0
	cfg.Client.RPS = 1000
	path := filepath.Join(t.TempDir(), "altlens.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestAnalyzePrintsJSONReport(t *testing.T) {
	ts := httptest.NewServer(fakePlatform())
	defer ts.Close()

	out, err := run(t, "analyze", "--config", writeConfig(t, ts.URL), "--api-key", "k", "--json", "builder")
	require.NoError(t, err)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "builder", report.Username)
	assert.Equal(t, model.VerdictInsufficientBadges, report.Verdict.Category)
	assert.Equal(t, 150, report.Verdict.Score)
}

func TestAnalyzePrintsColoredProgress(t *testing.T) {
	ts := httptest.NewServer(fakePlatform())
	defer ts.Close()

	out, err := run(t, "analyze", "-c", writeConfig(t, ts.URL), "--api-key", "k", "-u", "builder")
	require.NoError(t, err)
	assert.Contains(t, out, "ALTLENS")
	assert.Contains(t, out, "Starting analysis for: builder")
	assert.Contains(t, out, "Auto-Fail: <210 real badges")
}

func TestMain(m *testing.M) {
	os.Unsetenv("ALTLENS_CONFIG")
	os.Exit(m.Run())
}
