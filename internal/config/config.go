package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is the backend the desktop client talks to unless configured otherwise.
const DefaultAPIURL = "https://employee-management-system-thw5.onrender.com/api"

const (
	TokenStoreFile   = "file"
	TokenStoreSQLite = "sqlite"
)

const (
	defaultDataDirName   = ".employee-desk"
	defaultRedirectDelay = 2 * time.Second
)

type Config struct {
	Environment string `toml:"-"`
	APIURL      string `toml:"api_url"`
	DataDir     string `toml:"data_dir"`
	TokenStore  string `toml:"token_store"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	LogFormat   string `toml:"log_format"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// timings, as Go duration strings
	RedirectDelay duration `toml:"redirect_delay"`
	HTTPTimeout   duration `toml:"http_timeout"`
}

// duration lets TOML files carry values such as "2s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load builds the configuration for env. The TOML file at path is optional; values from
// a .env file and the process environment override it, and defaults fill the rest.
func Load(env, path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		fileCfg, err := loadToml(env, path)
		if err != nil {
			return nil, err
		}
		if fileCfg != nil {
			cfg = fileCfg
		}
	}
	cfg.Environment = env

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadToml(env, path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.APIURL = getEnv("EMS_API_URL", cfg.APIURL)
	cfg.DataDir = getEnv("EMS_DATA_DIR", cfg.DataDir)
	cfg.TokenStore = getEnv("EMS_TOKEN_STORE", cfg.TokenStore)
	cfg.LogLevel = getEnv("EMS_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("EMS_LOG_FILE", cfg.LogFile)
	cfg.LogFormat = getEnv("EMS_LOG_FORMAT", cfg.LogFormat)

	if raw := os.Getenv("EMS_LOG_TO_STDOUT"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid EMS_LOG_TO_STDOUT %q: %w", raw, err)
		}
		cfg.LogToStdout = v
	}
	if raw := os.Getenv("EMS_REDIRECT_DELAY"); raw != "" {
		if err := cfg.RedirectDelay.UnmarshalText([]byte(raw)); err != nil {
			return fmt.Errorf("invalid EMS_REDIRECT_DELAY %q: %w", raw, err)
		}
	}
	if raw := os.Getenv("EMS_HTTP_TIMEOUT"); raw != "" {
		if err := cfg.HTTPTimeout.UnmarshalText([]byte(raw)); err != nil {
			return fmt.Errorf("invalid EMS_HTTP_TIMEOUT %q: %w", raw, err)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) error {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(homeDir, defaultDataDirName)
	}
	if cfg.TokenStore == "" {
		cfg.TokenStore = TokenStoreFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.RedirectDelay.Duration == 0 {
		cfg.RedirectDelay.Duration = defaultRedirectDelay
	}
	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api url %q: scheme must be http or https", c.APIURL)
	}
	switch c.TokenStore {
	case TokenStoreFile, TokenStoreSQLite:
	default:
		return fmt.Errorf("unknown token store: %s", c.TokenStore)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.LogFormat)
	}
	if c.RedirectDelay.Duration < 0 || c.HTTPTimeout.Duration < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

// Redirect returns the delay between a successful login and the role redirect.
func (c *Config) Redirect() time.Duration {
	return c.RedirectDelay.Duration
}

// Timeout returns the HTTP client timeout; zero means none.
func (c *Config) Timeout() time.Duration {
	return c.HTTPTimeout.Duration
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
