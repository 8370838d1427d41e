package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/waypoint/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.QnaStore)
	assert.Equal(t, "waypoint.db", filepath.Base(cfg.DBPath))
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
db: /tmp/plans.db
qna:
  store: json
  file: /tmp/qna.json
log_calls: true
llm:
  enabled: true
  provider: gemini
  api_key: from-file
  max_retries: 0
  retry_backoff_ms: 500
  qna:
    temperature: 0.7
    timeout_ms: 30000
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/plans.db", cfg.DBPath)
	assert.Equal(t, StoreJSON, cfg.QnaStore)
	assert.Equal(t, "/tmp/qna.json", cfg.QnaFile)
	assert.True(t, cfg.LLM.LogCalls)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "from-file", cfg.LLM.APIKey)
	assert.Equal(t, 0, cfg.LLM.MaxRetries)
	assert.Equal(t, 500, cfg.LLM.RetryBackoffMs)
	assert.InDelta(t, 0.7, cfg.LLM.Tasks[llm.TaskQna].Temperature, 1e-9)
	assert.Equal(t, 1024, cfg.LLM.Tasks[llm.TaskQna].MaxTokens)
	assert.Equal(t, 30000, cfg.LLM.TaskTimeout(llm.TaskQna))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "db: /tmp/from-file.db\nqna:\n  store: json\n")
	t.Setenv("WAYPOINT_DB", "/tmp/from-env.db")
	t.Setenv("WAYPOINT_QNA_STORE", "memory")
	t.Setenv("WAYPOINT_LLM_MODEL", "mistral")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, StoreMemory, cfg.QnaStore)
	assert.Equal(t, "mistral", cfg.LLM.EffectiveModel())
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WAYPOINT_CONFIG", writeConfig(t, "db: /tmp/env-config.db\n"))

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-config.db", cfg.DBPath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(writeConfig(t, "db: [unclosed\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WAYPOINT_QNA_STORE", "redis")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown qna store")
}

func TestCoalesceHelpers(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty[string]())
	assert.Equal(t, StoreJSON, firstNonEmpty(QnaStore(""), StoreJSON))

	assert.Equal(t, 7, firstPositive(0, -1, 7))
	assert.Equal(t, 0, firstPositive(0))

	on := true
	assert.True(t, valueOr(&on, false))
	assert.False(t, valueOr[bool](nil, false))
}
