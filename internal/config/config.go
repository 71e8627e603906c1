package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"altlens/internal/roblox"
)

// DefaultPath is where init writes and analyze looks by default.
const DefaultPath = "altlens.yaml"

// Config is the application's configuration model.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	Endpoints   roblox.Endpoints  `yaml:"endpoints"`
	Client      ClientConfig      `yaml:"client"`
	Server      ServerConfig      `yaml:"server"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Log         LogConfig         `yaml:"log"`
}

type CredentialsConfig struct {
	// Open Cloud API key used for inventory reads. If empty, read from env ROBLOX_API_KEY
	APIKey string `yaml:"apiKey"`
}

type ClientConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`

	// Attempts per request; 1 means a failed page ends its listing at once
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`

	// Delay between consecutive page requests of one listing
	PageDelay time.Duration `yaml:"pageDelay"`

	// Per-request timeout, 0 disables it
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type MetricsConfig struct {
	// Empty disables the standalone metrics listener
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Env string `yaml:"env"` // "production" or "development"
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Endpoints: roblox.DefaultEndpoints(),
		Client: ClientConfig{
			RPS:         10,
			Burst:       10,
			MaxAttempts: 1,
			BaseBackoff: 500 * time.Millisecond,
			PageDelay:   50 * time.Millisecond,
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Env: "development"},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Credentials.APIKey == "" {
		c.Credentials.APIKey = os.Getenv("ROBLOX_API_KEY")
	}
	if v := os.Getenv("ALTLENS_LOG_ENV"); v != "" {
		c.Log.Env = v
	}
}

// ClientOptions maps the client section onto roblox.Options.
func (c Config) ClientOptions() roblox.Options {
	return roblox.Options{
		Endpoints:   c.Endpoints,
		RPS:         c.Client.RPS,
		Burst:       c.Client.Burst,
		MaxAttempts: c.Client.MaxAttempts,
		BaseBackoff: c.Client.BaseBackoff,
		PageDelay:   c.Client.PageDelay,
		Timeout:     c.Client.RequestTimeout,
	}
}

// Load reads YAML config from path over the defaults. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
