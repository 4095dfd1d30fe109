package site

import (
	"io"
	"os"
	"path/filepath"
)

// copyDir recursively copies a directory tree and returns the number of files copied.
func copyDir(src, dst string) (int, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			n, err := copyDir(srcPath, dstPath)
			copied += n
			if err != nil {
				return copied, err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	dstFile, err := os.Create(filepath.Clean(dst))
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
