package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lherron/joplin2fnx/internal/feather"
	"github.com/lherron/joplin2fnx/internal/joplin"
)

// Record sources.
const (
	SourceAPI = "api"
	SourceDB  = "db"
)

// Config represents the application configuration
type Config struct {
	URL       string   `json:"url" yaml:"url"`
	Token     string   `json:"token" yaml:"token"`
	DBPath    string   `json:"db_path" yaml:"db_path"`
	Source    string   `json:"source" yaml:"source"`
	LogLevel  string   `json:"log_level" yaml:"log_level"`
	LogFormat string   `json:"log_format" yaml:"log_format"`
	Output    string   `json:"output" yaml:"output"`
	Jobs      int      `json:"jobs" yaml:"jobs"`
	TxtFont   string   `json:"txt_font" yaml:"txt_font"`
	NodeFont  string   `json:"node_font" yaml:"node_font"`
	Exclude   []string `json:"exclude" yaml:"exclude"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/joplin2fnx/config.yaml (YAML), or $JOPLIN2FNX_CONFIG
func Load() (*Config, error) {
	cfg := &Config{
		URL:       joplin.DefaultURL,
		Source:    SourceAPI,
		LogLevel:  "info",
		LogFormat: "text",
		Output:    "table",
		Jobs:      4,
		TxtFont:   feather.DefaultTxtFont,
		NodeFont:  feather.DefaultNodeFont,
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	if err := loadYAMLConfig(cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Override with environment variables
	if url := os.Getenv("JOPLIN2FNX_URL"); url != "" {
		cfg.URL = url
	}
	if token := getEnvOrFile("JOPLIN_TOKEN", "JOPLIN_TOKEN_FILE"); token != "" {
		cfg.Token = token
	}
	if dbPath := getEnvOrFile("JOPLIN2FNX_DB_PATH", "JOPLIN2FNX_DB_PATH_FILE"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if source := os.Getenv("JOPLIN2FNX_SOURCE"); source != "" {
		cfg.Source = source
	}
	if logLevel := os.Getenv("JOPLIN2FNX_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat := os.Getenv("JOPLIN2FNX_LOG_FORMAT"); logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if output := os.Getenv("JOPLIN2FNX_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if jobs := os.Getenv("JOPLIN2FNX_JOBS"); jobs != "" {
		n, err := strconv.Atoi(jobs)
		if err != nil {
			return nil, fmt.Errorf("invalid JOPLIN2FNX_JOBS %q: %w", jobs, err)
		}
		cfg.Jobs = n
	}

	if cfg.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(homeDir, ".config", "joplin-desktop", "database.sqlite")
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceAPI, SourceDB:
	default:
		return fmt.Errorf("invalid source %q: want %s or %s", c.Source, SourceAPI, SourceDB)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("invalid jobs %d: must be at least 1", c.Jobs)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", c.LogFormat)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.Token != "" {
		out.Token = "****"
	}
	return out
}

// loadYAMLConfig loads configuration from the user config file
func loadYAMLConfig(cfg *Config) error {
	configPath := os.Getenv("JOPLIN2FNX_CONFIG")
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(homeDir, ".config", "joplin2fnx", "config.yaml")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// getEnvOrFile gets an environment variable value, or reads it from a file
// if the _FILE variant is set
func getEnvOrFile(envVar, fileVar string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}

	if filePath := os.Getenv(fileVar); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	return ""
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)

	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		if dir == homeDir {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
