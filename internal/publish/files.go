package publish

import (
	"io"
	"os"
	"path/filepath"
)

// copyDir recursively copies a directory tree and returns the number of
// files copied. Modes are preserved.
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
		if !entry.Type().IsRegular() {
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return copied, err
		}
		copied++
	}

	return copied, nil
}

// copyFile copies a single file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(filepath.Clean(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// writeFile writes data, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) //nolint:gosec // site output is world readable
}
