package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()

	assert.Equal(t, "gemini", c.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", c.LLM.Model)
	assert.Equal(t, "serper", c.Search.Provider)
	assert.Equal(t, 5, c.Search.ResultLimit)
	assert.Equal(t, 3, c.Search.EnrichLimit)
	assert.Equal(t, "© 2025 Monitor Finder", c.Report.Footer)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 1, c.Concurrency.QPS)
	assert.Equal(t, 15, c.Concurrency.RPM)
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name       string
		provider   string
		env        map[string]string
		wantLLMKey string
		wantSerper string
	}{
		{"empty env keeps file values", "", map[string]string{}, "file-llm", "file-serper"},
		{"gemini key for default provider", "", map[string]string{EnvGeminiAPIKey: "g", EnvSerperAPIKey: "s"}, "g", "s"},
		{"gemini key ignored for openai", "openai", map[string]string{EnvGeminiAPIKey: "g"}, "file-llm", "file-serper"},
		{"generic key wins", "openai", map[string]string{EnvGeminiAPIKey: "g", EnvLLMAPIKey: "o"}, "o", "file-serper"},
		{"blank values ignored", "", map[string]string{EnvSerperAPIKey: ""}, "file-llm", "file-serper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{}
			c.LLM.Provider = tt.provider
			c.LLM.APIKey = "file-llm"
			c.Search.Serper.APIKey = "file-serper"

			c.ApplyEnv(lookupFrom(tt.env))
			assert.Equal(t, tt.wantLLMKey, c.LLM.APIKey)
			assert.Equal(t, tt.wantSerper, c.Search.Serper.APIKey)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvTavilyAPIKey, "tvly-env")
	path := filepath.Join(t.TempDir(), "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  provider: tavily
  result_limit: 8
  tavily:
    timeout: 10
report:
  footer: "Magazin test"
`), 0o600))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tavily", c.Search.Provider)
	assert.Equal(t, 8, c.Search.ResultLimit)
	assert.Equal(t, "tvly-env", c.Search.Tavily.APIKey)
	assert.Equal(t, 10, c.Search.Tavily.Timeout)
	assert.Equal(t, "Magazin test", c.Report.Footer)
	assert.Equal(t, "gemini", c.LLM.Provider)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
