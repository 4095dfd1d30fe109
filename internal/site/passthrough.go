package site

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Passthrough copies static files from inputDir to outputDir unchanged. Each
// pattern is either a plain relative path (file or whole directory) or a glob.
// Relative layout is preserved. Plain paths that do not exist are skipped with
// a warning. It returns the number of files copied.
func Passthrough(inputDir, outputDir string, patterns []string) (int, error) {
	copied := 0
	var globs []*Glob
	for _, p := range patterns {
		if IsGlob(p) {
			g, err := CompileGlob(p)
			if err != nil {
				return copied, errors.WrapError(err, errors.CategoryConfig, "invalid passthrough pattern").
					Fatal().WithContext(logfields.KeyPattern, p).Build()
			}
			globs = append(globs, g)
			continue
		}

		src := filepath.Join(inputDir, filepath.FromSlash(p))
		dst := filepath.Join(outputDir, filepath.FromSlash(p))
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			slog.Warn("Passthrough path not found", logfields.Pattern(p))
			continue
		}
		if err != nil {
			return copied, copyError(err, p)
		}
		if info.IsDir() {
			n, err := copyDir(src, dst)
			copied += n
			if err != nil {
				return copied, copyError(err, p)
			}
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return copied, copyError(err, p)
		}
		copied++
	}

	if len(globs) == 0 {
		return copied, nil
	}
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		if !matchAny(globs, filepath.ToSlash(rel)) {
			return nil
		}
		if err := copyFile(path, filepath.Join(outputDir, rel)); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, copyError(err, "")
	}
	return copied, nil
}

func copyError(err error, pattern string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, "passthrough copy failed").
		WithContext(logfields.KeyPattern, pattern).Build()
}
