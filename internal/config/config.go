package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/waypoint/internal/llm"
	"gopkg.in/yaml.v3"
)

// QnaStore selects where question/answer history is kept.
type QnaStore string

const (
	StoreSQLite QnaStore = "sqlite"
	StoreJSON   QnaStore = "json"
	StoreMemory QnaStore = "memory"
)

// Config is the resolved runtime configuration: defaults, then the YAML
// file, then WAYPOINT_* environment variables.
type Config struct {
	DBPath   string
	QnaStore QnaStore
	QnaFile  string
	LLM      llm.LLMConfig
}

// fileConfig mirrors the YAML layout. Pointers distinguish "unset" from a
// zero value so the file only overrides what it names.
type fileConfig struct {
	DB  string `yaml:"db"`
	Qna struct {
		Store string `yaml:"store"`
		File  string `yaml:"file"`
	} `yaml:"qna"`
	LogCalls *bool `yaml:"log_calls"`
	LLM      struct {
		Enabled        *bool  `yaml:"enabled"`
		Provider       string `yaml:"provider"`
		Endpoint       string `yaml:"endpoint"`
		Model          string `yaml:"model"`
		APIKey         string `yaml:"api_key"`
		TimeoutMs      int    `yaml:"timeout_ms"`
		MaxRetries     *int   `yaml:"max_retries"`
		RetryBackoffMs int    `yaml:"retry_backoff_ms"`
		Qna            struct {
			Temperature *float64 `yaml:"temperature"`
			MaxTokens   int      `yaml:"max_tokens"`
			TimeoutMs   int      `yaml:"timeout_ms"`
		} `yaml:"qna"`
	} `yaml:"llm"`
}

// Default returns the configuration used when nothing is set. Paths live
// under ~/.waypoint.
func Default() (*Config, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DBPath:   filepath.Join(dir, "waypoint.db"),
		QnaStore: StoreSQLite,
		QnaFile:  filepath.Join(dir, "qna.json"),
		LLM:      llm.DefaultConfig(),
	}, nil
}

// Load resolves configuration. path names the YAML file; when empty,
// WAYPOINT_CONFIG or ~/.waypoint/config.yaml is used. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = os.Getenv("WAYPOINT_CONFIG")
	}
	if path == "" {
		dir, err := dataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := loadFromFile(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	loadFromEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.DBPath = firstNonEmpty(fc.DB, cfg.DBPath)
	cfg.QnaStore = firstNonEmpty(QnaStore(fc.Qna.Store), cfg.QnaStore)
	cfg.QnaFile = firstNonEmpty(fc.Qna.File, cfg.QnaFile)

	l := &cfg.LLM
	l.LogCalls = valueOr(fc.LogCalls, l.LogCalls)
	l.Enabled = valueOr(fc.LLM.Enabled, l.Enabled)
	l.Provider = firstNonEmpty(llm.Provider(fc.LLM.Provider), l.Provider)
	l.Endpoint = firstNonEmpty(fc.LLM.Endpoint, l.Endpoint)
	l.Model = firstNonEmpty(fc.LLM.Model, l.Model)
	l.APIKey = firstNonEmpty(fc.LLM.APIKey, l.APIKey)
	l.TimeoutMs = firstPositive(fc.LLM.TimeoutMs, l.TimeoutMs)
	if fc.LLM.MaxRetries != nil && *fc.LLM.MaxRetries >= 0 {
		l.MaxRetries = *fc.LLM.MaxRetries
	}
	l.RetryBackoffMs = firstPositive(fc.LLM.RetryBackoffMs, l.RetryBackoffMs)

	tc := l.Tasks[llm.TaskQna]
	tc.Temperature = valueOr(fc.LLM.Qna.Temperature, tc.Temperature)
	tc.MaxTokens = firstPositive(fc.LLM.Qna.MaxTokens, tc.MaxTokens)
	tc.TimeoutMs = firstPositive(fc.LLM.Qna.TimeoutMs, tc.TimeoutMs)
	l.Tasks[llm.TaskQna] = tc

	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("WAYPOINT_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WAYPOINT_QNA_STORE"); v != "" {
		cfg.QnaStore = QnaStore(v)
	}
	if v := os.Getenv("WAYPOINT_QNA_FILE"); v != "" {
		cfg.QnaFile = v
	}
	llm.ApplyEnv(&cfg.LLM)
}

func (c *Config) validate() error {
	switch c.QnaStore {
	case StoreSQLite, StoreJSON, StoreMemory:
	default:
		return fmt.Errorf("unknown qna store %q (want sqlite, json, or memory)", c.QnaStore)
	}
	if c.QnaStore == StoreJSON && c.QnaFile == "" {
		return fmt.Errorf("qna store %q requires a history file", StoreJSON)
	}
	return nil
}

func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".waypoint"), nil
}
