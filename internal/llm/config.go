package llm

import (
	"fmt"
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskQna TaskType = "qna"
)

// Provider names the backend that serves generation requests.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

const (
	defaultOllamaModel = "llama3.2"
	defaultGeminiModel = "gemini-2.0-flash"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string // empty selects the provider default
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig

	// RetryBackoffMs is the delay before the first retry; later retries
	// double it.
	RetryBackoffMs int
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:        false,
		LogCalls:       false,
		Provider:       ProviderOllama,
		Endpoint:       "http://localhost:11434",
		TimeoutMs:      10000,
		MaxRetries:     1,
		RetryBackoffMs: 250,
		Tasks: map[TaskType]TaskConfig{
			TaskQna: {Temperature: 0.3, MaxTokens: 1024, TimeoutMs: 20000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overrides cfg with any WAYPOINT_LLM_* variables that are set.
// Malformed numeric values are ignored.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("WAYPOINT_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WAYPOINT_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WAYPOINT_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(v)
	}
	if v := os.Getenv("WAYPOINT_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("WAYPOINT_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("WAYPOINT_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("WAYPOINT_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("WAYPOINT_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	if v := os.Getenv("WAYPOINT_LLM_RETRY_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetryBackoffMs = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskQna, "WAYPOINT_LLM_QNA_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// EffectiveModel returns the configured model or the provider's default.
func (c LLMConfig) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderGemini {
		return defaultGeminiModel
	}
	return defaultOllamaModel
}

// Validate reports configuration that would make every call fail.
func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		if c.Endpoint == "" {
			return fmt.Errorf("%w: ollama endpoint is empty", ErrProviderConfig)
		}
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("%w: gemini requires WAYPOINT_LLM_API_KEY", ErrProviderConfig)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrProviderConfig, c.Provider)
	}
	return nil
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
