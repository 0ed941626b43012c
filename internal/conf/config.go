package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lk2023060901/search-api/internal/pkg/logger"
	"github.com/lk2023060901/search-api/internal/websearch/types"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig     `mapstructure:"app"`
	Server ServerConfig  `mapstructure:"server"`
	Auth   AuthConfig    `mapstructure:"auth"`
	Log    logger.Config `mapstructure:"log"`
	Search SearchConfig  `mapstructure:"search"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Debug   bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	APIPrefix       string        `mapstructure:"api_prefix"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	Token  string `mapstructure:"token"`
	Header string `mapstructure:"header"`
}

// SearchConfig holds one section per provider
type SearchConfig struct {
	Brave      types.ProviderConfig `mapstructure:"brave"`
	Tavily     types.ProviderConfig `mapstructure:"tavily"`
	Serper     types.ProviderConfig `mapstructure:"serper"`
	DuckDuckGo types.ProviderConfig `mapstructure:"duckduckgo"`
	Wikipedia  types.ProviderConfig `mapstructure:"wikipedia"`
}

// ProviderConfigs returns the per-provider settings keyed by ID
func (c *SearchConfig) ProviderConfigs() map[types.ProviderID]types.ProviderConfig {
	out := map[types.ProviderID]types.ProviderConfig{
		types.ProviderBrave:      c.Brave,
		types.ProviderTavily:     c.Tavily,
		types.ProviderSerper:     c.Serper,
		types.ProviderDuckDuckGo: c.DuckDuckGo,
		types.ProviderWikipedia:  c.Wikipedia,
	}
	for id, cfg := range out {
		cfg.ID = id
		out[id] = cfg
	}
	return out
}

// legacy flat environment names, checked before the nested ones
var envAliases = map[string][]string{
	"auth.token":            {"API_TOKEN"},
	"app.debug":             {"DEBUG"},
	"server.port":           {"PORT"},
	"search.brave.api_key":  {"BRAVE_API_KEY"},
	"search.tavily.api_key": {"TAVILY_API_KEY"},
	"search.serper.api_key": {"SERPER_API_KEY"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Search API")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.debug", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 56808)
	v.SetDefault("server.api_prefix", "/api/v1")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("auth.token", "")
	v.SetDefault("auth.header", "token")

	l := logger.DefaultConfig()
	v.SetDefault("log.level", l.Level)
	v.SetDefault("log.format", l.Format)
	v.SetDefault("log.output", l.Output)
	v.SetDefault("log.enable_caller", l.EnableCaller)
	v.SetDefault("log.enable_stacktrace", l.EnableStacktrace)
	v.SetDefault("log.file.filename", l.File.Filename)
	v.SetDefault("log.file.max_size", l.File.MaxSize)
	v.SetDefault("log.file.max_age", l.File.MaxAge)
	v.SetDefault("log.file.max_backups", l.File.MaxBackups)
	v.SetDefault("log.file.compress", l.File.Compress)

	for _, id := range types.AllProviders {
		d := types.DefaultProviderConfig(id)
		prefix := "search." + string(id) + "."
		v.SetDefault(prefix+"api_host", d.APIHost)
		v.SetDefault(prefix+"api_key", "")
		v.SetDefault(prefix+"timeout", d.Timeout)
		v.SetDefault(prefix+"user_agent", d.UserAgent)
		if len(d.Languages) > 0 {
			v.SetDefault(prefix+"languages", d.Languages)
		}
	}
}

// LoadConfig reads path (optional, any format viper supports) and overlays
// environment variables. SEARCH_BRAVE_API_KEY style names work for every
// key; the flat names in envAliases take precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		nested := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		args := append([]string{key}, names...)
		if err := v.BindEnv(append(args, nested)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.Token) == "" {
		return errors.New("auth.token (API_TOKEN) is required")
	}
	if c.Auth.Header == "" {
		return errors.New("auth.header must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return fmt.Errorf("server.api_prefix must start with '/': %q", c.Server.APIPrefix)
	}
	for id, pc := range c.Search.ProviderConfigs() {
		if err := pc.Validate(); err != nil {
			return fmt.Errorf("invalid search.%s config: %w", id, err)
		}
	}
	return nil
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
