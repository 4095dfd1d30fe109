package commands

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// writeGenerated runs a generated file through the same post-processing chain
// as rendered files, so xml-minify applies, and writes it to path.
func writeGenerated(cfg *config.Config, path string, content []byte) error {
	proc, err := newProcessor(cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	out, err := proc.Process(context.Background(), string(content), path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext(logfields.KeyPath, path).Build()
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write generated file").
			WithContext(logfields.KeyPath, path).Build()
	}
	return nil
}
