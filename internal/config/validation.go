package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if filepath.Clean(cfg.Dir.Input) == filepath.Clean(cfg.Dir.Output) {
		return invalid("dir.input and dir.output must differ", "dir", cfg.Dir.Output)
	}
	for name, globs := range cfg.Collections {
		if strings.TrimSpace(name) == "" {
			return invalid("collection name must not be empty", "collection", name)
		}
		if len(globs) == 0 {
			return invalid(fmt.Sprintf("collection %q has no patterns", name), "collection", name)
		}
	}
	for _, p := range cfg.Passthrough {
		if strings.TrimSpace(p) == "" || filepath.IsAbs(p) || strings.HasPrefix(filepath.Clean(p), "..") {
			return invalid(fmt.Sprintf("passthrough pattern %q must be relative to dir.input", p), "pattern", p)
		}
	}
	seen := map[string]bool{}
	for _, name := range cfg.Postprocess.HTMLTransforms {
		if seen[name] {
			return invalid(fmt.Sprintf("transform %q listed twice", name), "transform", name)
		}
		seen[name] = true
	}
	for _, ext := range cfg.Postprocess.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return invalid(fmt.Sprintf("extension %q must start with a dot", ext), "extension", ext)
		}
	}
	return nil
}

func invalid(msg, key string, value any) error {
	return errors.ValidationError(msg).WithContext(key, value).Build()
}
