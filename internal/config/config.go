// Package config loads hurl CLI settings from hurl.yaml, HURL_* environment
// variables and a local .env file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents hurl.yaml.
type Config struct {
	// Routes is the route file to compile.
	Routes string `mapstructure:"routes" json:"routes"`
	// NamePrefix is prepended to every derived route name.
	NamePrefix string `mapstructure:"name_prefix" json:"name_prefix,omitempty"`
	// DefaultMatcher is the matcher tag for untyped parameters.
	DefaultMatcher string `mapstructure:"default_matcher" json:"default_matcher"`
	// ViewPrefix is joined in front of every view path.
	ViewPrefix string `mapstructure:"view_prefix" json:"view_prefix,omitempty"`
	// Matchers registers custom type tags.
	Matchers map[string]string `mapstructure:"matchers" json:"matchers,omitempty"`
	// CacheSize bounds the resolver's compiled-pattern cache.
	CacheSize int `mapstructure:"cache_size" json:"cache_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Routes:         "urls.yaml",
		DefaultMatcher: hurl.DefaultMatcherTag,
		CacheSize:      1024,
	}
}

// Load reads configuration. If path is empty, hurl.yaml is looked up in the
// working directory and a missing file is not an error.
func Load(path string) (*Config, error) {
	// Values already in the environment take precedence over .env.
	_ = godotenv.Load()

	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("routes", def.Routes)
	v.SetDefault("default_matcher", def.DefaultMatcher)
	v.SetDefault("cache_size", def.CacheSize)
	v.SetDefault("name_prefix", "")
	v.SetDefault("view_prefix", "")

	v.SetEnvPrefix("hurl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hurl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// NewHurl builds a compiler from the configuration.
func (c *Config) NewHurl(opts ...hurl.Option) *hurl.Hurl {
	base := []hurl.Option{
		hurl.WithNamePrefix(c.NamePrefix),
		hurl.WithDefaultMatcher(c.DefaultMatcher),
	}
	for tag, expr := range c.Matchers {
		base = append(base, hurl.WithMatcher(tag, expr))
	}
	return hurl.New(append(base, opts...)...)
}

// Validate checks settings that would only fail later during compilation.
func (c *Config) Validate() error {
	if c.Routes == "" {
		return errors.New("routes file is not set")
	}
	if c.DefaultMatcher == "" {
		return errors.New("default_matcher is not set")
	}
	h := c.NewHurl()
	if _, ok := h.Matchers.Lookup(c.DefaultMatcher); !ok {
		return fmt.Errorf("default_matcher %q is not a registered matcher", c.DefaultMatcher)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	return nil
}
