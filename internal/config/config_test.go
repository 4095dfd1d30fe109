package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	writeFile(t, path, "postprocess:\n  html_transforms: [anchors]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.Dir.Input)
	assert.Equal(t, "dist", cfg.Dir.Output)
	assert.Equal(t, filepath.Join("src", "data"), cfg.DataDir())
	assert.Equal(t, []string{".html"}, cfg.Postprocess.Extensions)
	assert.Equal(t, []string{"anchors"}, cfg.Postprocess.HTMLTransforms)
	assert.False(t, cfg.Postprocess.MinifyHTML)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsite.yaml")
	writeFile(t, path, "dir:\n  output: ${DOCSITE_TEST_OUT}\n")
	t.Setenv("DOCSITE_TEST_OUT", "public")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.Dir.Output)
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsite.yaml")
	writeFile(t, path, "dir:\n  input: ${DOCSITE_TEST_IN}\n  output: ${DOCSITE_TEST_OUT2}\n")
	writeFile(t, filepath.Join(dir, ".env"), "DOCSITE_TEST_IN=content\nDOCSITE_TEST_OUT2=from-dotenv\n")
	t.Setenv("DOCSITE_TEST_OUT2", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("DOCSITE_TEST_IN") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "content", cfg.Dir.Input)
	assert.Equal(t, "from-env", cfg.Dir.Output)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "dir: [unclosed\n")
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"same input and output", func(c *Config) { c.Dir.Output = c.Dir.Input }},
		{"empty collection", func(c *Config) { c.Collections["empty"] = nil }},
		{"absolute passthrough", func(c *Config) { c.Passthrough = []string{"/etc"} }},
		{"escaping passthrough", func(c *Config) { c.Passthrough = []string{"../secret"} }},
		{"duplicate transform", func(c *Config) { c.Postprocess.HTMLTransforms = []string{"anchors", "anchors"} }},
		{"extension without dot", func(c *Config) { c.Postprocess.Extensions = []string{"html"} }},
	}
	require.NoError(t, Validate(Default()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = Init(path, false)
	require.Error(t, err)
	require.NoError(t, Init(path, true))
}
