package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altlens/internal/roblox"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("ROBLOX_API_KEY", "from-env")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	want := Default()
	want.Credentials.APIKey = "from-env"
	assert.Equal(t, want, cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("ROBLOX_API_KEY", "")
	path := filepath.Join(t.TempDir(), "nested", "altlens.yaml")
	cfg := Default()
	cfg.Credentials.APIKey = "secret"
	cfg.Client.PageDelay = 120 * time.Millisecond
	cfg.Client.RequestTimeout = 15 * time.Second
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("ROBLOX_API_KEY", "")
	path := filepath.Join(t.TempDir(), "altlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  pageDelay: 250ms\nserver:\n  addr: \":9000\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.PageDelay)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 1, cfg.Client.MaxAttempts)
	assert.Equal(t, roblox.DefaultEndpoints(), cfg.Endpoints)
}

func TestFileCredentialWinsOverEnv(t *testing.T) {
	t.Setenv("ROBLOX_API_KEY", "from-env")
	path := filepath.Join(t.TempDir(), "altlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("credentials:\n  apiKey: from-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Credentials.APIKey)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "altlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveEmptyPath(t *testing.T) {
	assert.Error(t, Save("", Default()))
}

func TestClientOptions(t *testing.T) {
	cfg := Default()
	cfg.Client.RequestTimeout = time.Second
	opts := cfg.ClientOptions()
	assert.Equal(t, cfg.Endpoints, opts.Endpoints)
	assert.Equal(t, 50*time.Millisecond, opts.PageDelay)
	assert.Equal(t, time.Second, opts.Timeout)
	assert.Equal(t, 1, opts.MaxAttempts)
}
