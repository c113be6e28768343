// Package fsutil provides the small set of file operations the hook
// controller composes: atomic writes, copies and existence checks.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// TempPrefix prefixes the scratch files created by AtomicWriteFile.
// Directory listings skip names with this prefix.
const TempPrefix = ".tmp-"

// AtomicWriteFile writes data to path by writing a temp file in the same
// directory, syncing it, setting perm and renaming it over path. Readers see
// either the previous content or the complete new content, never a prefix.
//
// The directory must already exist; callers decide whether creating it is
// appropriate.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, TempPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Chmod is not subject to umask, so the final mode is exactly perm.
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp to final: %w", err)
	}

	success = true
	return nil
}

// CopyFile copies src to dst atomically with the given mode.
func CopyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	return AtomicWriteFile(dst, data, perm)
}

// Exists reports whether path exists. Errors other than "not exist" are
// returned so callers never mistake a permission problem for absence.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// RemoveIfExists deletes path, treating a missing file as success.
// It reports whether a file was actually removed.
func RemoveIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// IsExecutable reports whether any execute bit is set on mode.
func IsExecutable(mode os.FileMode) bool {
	return mode.Perm()&0o111 != 0
}
