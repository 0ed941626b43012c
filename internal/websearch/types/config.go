package types

import "strings"

type ProviderID string

const (
	ProviderBrave      ProviderID = "brave"
	ProviderTavily     ProviderID = "tavily"
	ProviderSerper     ProviderID = "serper"
	ProviderDuckDuckGo ProviderID = "duckduckgo"
	ProviderWikipedia  ProviderID = "wikipedia"
)

// AllProviders is the fixed set of supported sources, in canonical order.
var AllProviders = []ProviderID{
	ProviderBrave,
	ProviderTavily,
	ProviderSerper,
	ProviderDuckDuckGo,
	ProviderWikipedia,
}

// ParseProviderID normalizes name and reports whether it names a supported provider.
func ParseProviderID(name string) (ProviderID, bool) {
	id := ProviderID(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range AllProviders {
		if p == id {
			return id, true
		}
	}
	return "", false
}

// ResolveSources returns the providers to query for the requested names.
// A nil slice selects every provider; unknown names are dropped silently.
func ResolveSources(names []string) []ProviderID {
	if names == nil {
		out := make([]ProviderID, len(AllProviders))
		copy(out, AllProviders)
		return out
	}

	seen := make(map[ProviderID]bool, len(names))
	out := make([]ProviderID, 0, len(names))
	for _, name := range names {
		id, ok := ParseProviderID(name)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ProviderConfig represents search provider configuration
type ProviderConfig struct {
	ID ProviderID `json:"id" yaml:"id" mapstructure:"id"`

	// API settings
	APIHost string `json:"api_host" yaml:"api_host" mapstructure:"api_host"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Optional settings
	Timeout   int    `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"` // seconds, default 10
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" mapstructure:"user_agent"`

	// Wikipedia lookup order, primary first
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty" mapstructure:"languages"`
}

const (
	DefaultTimeoutSeconds = 10
	DefaultUserAgent      = "SearchAPI/1.0"

	// LanguagePlaceholder is substituted into the Wikipedia API host.
	LanguagePlaceholder = "{lang}"
)

// DefaultProviderConfig returns the built-in settings for id.
func DefaultProviderConfig(id ProviderID) ProviderConfig {
	cfg := ProviderConfig{
		ID:        id,
		Timeout:   DefaultTimeoutSeconds,
		UserAgent: DefaultUserAgent,
	}
	switch id {
	case ProviderBrave:
		cfg.APIHost = "https://api.search.brave.com"
	case ProviderTavily:
		cfg.APIHost = "https://api.tavily.com"
	case ProviderSerper:
		cfg.APIHost = "https://google.serper.dev"
	case ProviderDuckDuckGo:
		cfg.APIHost = "https://html.duckduckgo.com"
	case ProviderWikipedia:
		cfg.APIHost = "https://" + LanguagePlaceholder + ".wikipedia.org"
		cfg.Languages = []string{"zh", "en"}
	}
	return cfg
}

// RequiresAPIKey reports whether the provider cannot be queried without a credential.
func (c *ProviderConfig) RequiresAPIKey() bool {
	switch c.ID {
	case ProviderDuckDuckGo, ProviderWikipedia:
		return false
	default:
		return true
	}
}

// HasCredential reports whether the provider can be queried.
func (c *ProviderConfig) HasCredential() bool {
	return !c.RequiresAPIKey() || strings.TrimSpace(c.APIKey) != ""
}

// Validate validates the provider configuration. A missing API key is not a
// configuration error: the provider is skipped at search time instead.
func (c *ProviderConfig) Validate() error {
	if _, ok := ParseProviderID(string(c.ID)); !ok {
		return ErrInvalidProviderID
	}
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}
