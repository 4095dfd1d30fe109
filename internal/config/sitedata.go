package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// GlobalDataFile is the file inside the data directory holding SiteData.
const GlobalDataFile = "global.yml"

// SiteData is the global site data read once at startup and passed explicitly
// to filters and generators that need it.
type SiteData struct {
	Domain      string         `yaml:"domain"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description,omitempty"`
	Author      string         `yaml:"author,omitempty"`
	Language    string         `yaml:"language,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// LoadSiteData reads <dataDir>/global.yml.
func LoadSiteData(dataDir string) (SiteData, error) {
	path := filepath.Join(dataDir, GlobalDataFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return SiteData{}, errors.ConfigError(fmt.Sprintf("global data file not found: %s", path)).Build()
		}
		return SiteData{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read global data").
			WithContext("file", path).Build()
	}
	return ParseSiteData(raw)
}

// ParseSiteData decodes global data YAML and normalizes the domain.
func ParseSiteData(raw []byte) (SiteData, error) {
	var data SiteData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return SiteData{}, errors.WrapError(err, errors.CategoryConfig, "failed to parse global data").Fatal().Build()
	}
	data.Domain = strings.TrimRight(strings.TrimSpace(data.Domain), "/")
	if data.Domain == "" {
		return SiteData{}, errors.ValidationError("global data requires a domain").Build()
	}
	if !strings.HasPrefix(data.Domain, "http://") && !strings.HasPrefix(data.Domain, "https://") {
		return SiteData{}, errors.ValidationError(fmt.Sprintf("domain %q must include a scheme", data.Domain)).Build()
	}
	if data.Language == "" {
		data.Language = "en"
	}
	return data, nil
}

// LoadData decodes every .yml/.yaml file in dataDir keyed by file name without extension.
func LoadData(dataDir string) (map[string]any, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read data directory").
			WithContext("dir", dataDir).Build()
	}
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yml" && ext != ".yaml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dataDir, e.Name()))
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read data file").
				WithContext("file", e.Name()).Build()
		}
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse data file").
				Fatal().WithContext("file", e.Name()).Build()
		}
		out[strings.TrimSuffix(e.Name(), ext)] = v
	}
	return out, nil
}
