package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lk2023060901/search-api/internal/websearch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_TOKEN", "s3cret")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", config.Auth.Token)
	assert.Equal(t, "token", config.Auth.Header)
	assert.Equal(t, "0.0.0.0:56808", config.Server.Addr())
	assert.Equal(t, "/api/v1", config.Server.APIPrefix)
	assert.Equal(t, 5*time.Second, config.Server.ShutdownTimeout)
	assert.False(t, config.App.Debug)

	assert.Equal(t, "https://api.search.brave.com", config.Search.Brave.APIHost)
	assert.Empty(t, config.Search.Brave.APIKey)
	assert.Equal(t, []string{"zh", "en"}, config.Search.Wikipedia.Languages)
	assert.Equal(t, 10, config.Search.Tavily.Timeout)
}

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("API_TOKEN", "")
	t.Setenv("AUTH_TOKEN", "")

	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "API_TOKEN")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("API_TOKEN", "s3cret")
	t.Setenv("DEBUG", "true")
	t.Setenv("PORT", "9000")
	t.Setenv("BRAVE_API_KEY", "brave-key")
	t.Setenv("TAVILY_API_KEY", "tavily-key")
	t.Setenv("SERPER_API_KEY", "serper-key")
	t.Setenv("SEARCH_WIKIPEDIA_TIMEOUT", "3")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.True(t, config.App.Debug)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "brave-key", config.Search.Brave.APIKey)
	assert.Equal(t, "tavily-key", config.Search.Tavily.APIKey)
	assert.Equal(t, "serper-key", config.Search.Serper.APIKey)
	assert.Equal(t, 3, config.Search.Wikipedia.Timeout)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("API_TOKEN", "")
	t.Setenv("AUTH_TOKEN", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth:
  token: from-file
server:
  port: 8080
log:
  level: debug
search:
  serper:
    api_key: file-key
  wikipedia:
    languages: [en, de]
`), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.Auth.Token)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "file-key", config.Search.Serper.APIKey)
	assert.Equal(t, []string{"en", "de"}, config.Search.Wikipedia.Languages)
	// unset keys keep their defaults
	assert.Equal(t, "https://google.serper.dev", config.Search.Serper.APIHost)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("API_TOKEN", "s3cret")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 56808, APIPrefix: "/api/v1"},
			Auth:   AuthConfig{Token: "s3cret", Header: "token"},
			Search: SearchConfig{
				Brave:      types.DefaultProviderConfig(types.ProviderBrave),
				Tavily:     types.DefaultProviderConfig(types.ProviderTavily),
				Serper:     types.DefaultProviderConfig(types.ProviderSerper),
				DuckDuckGo: types.DefaultProviderConfig(types.ProviderDuckDuckGo),
				Wikipedia:  types.DefaultProviderConfig(types.ProviderWikipedia),
			},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"blank token", func(c *Config) { c.Auth.Token = "  " }},
		{"empty header", func(c *Config) { c.Auth.Header = "" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"relative prefix", func(c *Config) { c.Server.APIPrefix = "api" }},
		{"provider without host", func(c *Config) { c.Search.Serper.APIHost = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
