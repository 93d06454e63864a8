// Package config loads the contentkit CLI configuration: a YAML file with
// ${VAR} expansion, optional .env files and CONTENTKIT_* overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	theme "github.com/goliatone/go-theme"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CONTENTKIT_"

// Config represents the CLI configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Theme   ThemeConfig   `yaml:"theme"`
	Serve   ServeConfig   `yaml:"serve"`
	Logging LoggingConfig `yaml:"logging"`
}

// SiteConfig describes the rendered site.
type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	Lang    string `yaml:"lang"`
}

// ContentConfig locates the content tree.
type ContentConfig struct {
	Dir      string `yaml:"dir"`
	PageType string `yaml:"page_type"`
}

// OutputConfig locates the rendered files.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// Store is the snapshot path; relative paths are inside Dir.
	Store string `yaml:"store"`
}

// ThemeConfig is an inline go-theme manifest. An empty Name disables theming.
type ThemeConfig struct {
	Name     string                        `yaml:"name"`
	Version  string                        `yaml:"version"`
	Variant  string                        `yaml:"variant"`
	Tokens   map[string]string             `yaml:"tokens"`
	Assets   ThemeAssets                   `yaml:"assets"`
	Variants map[string]ThemeVariantConfig `yaml:"variants"`
}

// ThemeAssets maps asset keys to files under Prefix.
type ThemeAssets struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// ThemeVariantConfig overrides the base theme.
type ThemeVariantConfig struct {
	Tokens map[string]string `yaml:"tokens"`
	Assets ThemeAssets       `yaml:"assets"`
}

// ServeConfig configures the serve command.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path after loading .env files from the working directory. An
// empty path yields the defaults with environment overrides applied. Existing
// environment variables are never replaced by .env values.
func Load(path string) (*Config, error) {
	if err := LoadEnv(".env", ".env.local"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config: file not found: %s", path)
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads the listed .env files that exist.
func LoadEnv(files ...string) error {
	var present []string
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			present = append(present, file)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Content.PageType == "" {
		errs = append(errs, errors.New("config: content.page_type is required"))
	}
	if c.Site.BaseURL != "" && !strings.Contains(c.Site.BaseURL, "://") {
		errs = append(errs, fmt.Errorf("config: site.base_url %q must be absolute", c.Site.BaseURL))
	}
	if c.Theme.Name == "" && c.Theme.Variant != "" {
		errs = append(errs, errors.New("config: theme.variant requires theme.name"))
	}
	if c.Theme.Variant != "" {
		if _, ok := c.Theme.Variants[c.Theme.Variant]; !ok {
			errs = append(errs, fmt.Errorf("config: theme variant %q is not defined", c.Theme.Variant))
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: logging.format %q must be text or json", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Manifest converts the theme section, or returns nil when theming is off.
func (c *Config) Manifest() *theme.Manifest {
	if c.Theme.Name == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    c.Theme.Name,
		Version: c.Theme.Version,
		Tokens:  c.Theme.Tokens,
		Assets:  theme.Assets{Prefix: c.Theme.Assets.Prefix, Files: c.Theme.Assets.Files},
	}
	if len(c.Theme.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(c.Theme.Variants))
		for name, variant := range c.Theme.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens: variant.Tokens,
				Assets: theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest
}

func (c *Config) applyDefaults() {
	if c.Site.Lang == "" {
		c.Site.Lang = "en"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "./content"
	}
	if c.Content.PageType == "" {
		c.Content.PageType = "page"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./public"
	}
	if c.Output.Store == "" {
		c.Output.Store = ".contentkit/store.json"
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
	if c.Theme.Name != "" && c.Theme.Version == "" {
		c.Theme.Version = "0.0.0"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key    string
		target *string
	}{
		{"SITE_NAME", &c.Site.Name},
		{"BASE_URL", &c.Site.BaseURL},
		{"CONTENT_DIR", &c.Content.Dir},
		{"PAGE_TYPE", &c.Content.PageType},
		{"OUTPUT_DIR", &c.Output.Dir},
		{"STORE", &c.Output.Store},
		{"THEME", &c.Theme.Name},
		{"THEME_VARIANT", &c.Theme.Variant},
		{"SERVE_ADDR", &c.Serve.Addr},
		{"LOG_LEVEL", &c.Logging.Level},
		{"LOG_FORMAT", &c.Logging.Format},
	}
	for _, override := range overrides {
		if value, ok := lookup(EnvPrefix + override.key); ok && strings.TrimSpace(value) != "" {
			*override.target = strings.TrimSpace(value)
		}
	}
}
