package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// DefaultPath is the configuration file used when -c is not given.
const DefaultPath = "docsite.yaml"

// Config represents the application configuration.
type Config struct {
	Dir         DirConfig           `yaml:"dir"`
	Collections map[string][]string `yaml:"collections,omitempty"`
	Passthrough []string            `yaml:"passthrough,omitempty"`
	Postprocess PostprocessConfig   `yaml:"postprocess"`
}

// DirConfig names the project directories. Data is relative to Input.
type DirConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Data   string `yaml:"data"`
}

// PostprocessConfig controls the per-page post-processing chain.
type PostprocessConfig struct {
	// HTMLTransforms lists DOM transforms by name, in execution order.
	HTMLTransforms []string `yaml:"html_transforms"`
	MinifyHTML     bool     `yaml:"minify_html"`
	MinifyXML      bool     `yaml:"minify_xml"`
	// Extensions the DOM transforms apply to.
	Extensions []string `yaml:"extensions,omitempty"`
}

// DataDir returns the global data directory.
func (c *Config) DataDir() string {
	if filepath.IsAbs(c.Dir.Data) {
		return c.Dir.Data
	}
	return filepath.Join(c.Dir.Input, c.Dir.Data)
}

// Default returns the configuration used by `docsite init`.
func Default() *Config {
	cfg := &Config{
		Collections: map[string][]string{
			"articles": {"articles/*/index.md"},
			"pages":    {"pages/*.md"},
			"sitemap":  {"articles/*/index.md", "pages/*.md"},
		},
		Passthrough: []string{"robots.txt", "images", "fonts", "articles/**/*.!(md)"},
		Postprocess: PostprocessConfig{
			HTMLTransforms: []string{"anchors"},
			MinifyHTML:     true,
			MinifyXML:      true,
		},
	}
	applyDefaults(cfg)
	return cfg
}

// Load reads, env-expands, defaults and validates the configuration file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(filepath.Dir(configPath)); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().WithContext("file", configPath).Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().WithContext("file", configPath).Build()
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Dir.Input == "" {
		cfg.Dir.Input = "src"
	}
	if cfg.Dir.Output == "" {
		cfg.Dir.Output = "dist"
	}
	if cfg.Dir.Data == "" {
		cfg.Dir.Data = "data"
	}
	if len(cfg.Postprocess.Extensions) == 0 {
		cfg.Postprocess.Extensions = []string{".html"}
	}
}

// Init writes the default configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("file", configPath).Build()
	}
	return nil
}
