package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// FileExists reports whether path names a regular file.
// Directories do not count, so a config or list path pointing at one is treated as missing.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// EnsureDir creates dirPath and its parents.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// SaveTOMLFile encodes data into filePath. The file is written next to its
// destination and renamed into place, so a failed write leaves the old config intact.
func SaveTOMLFile(data any, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("create config dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".passcloud-*.toml")
	if err != nil {
		log.Errorf("Failed to create file in %s: %v", dir, err)
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filePath, err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("replace %s: %w", filePath, err)
	}
	return nil
}

// GetAbsolutePath resolves path against the working directory.
// Empty and unresolvable paths are returned as given.
func GetAbsolutePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if absPath, err := filepath.Abs(path); err == nil {
		return absPath
	}
	return path
}

// testWriteAccess reports whether a file can be created in dirPath.
func testWriteAccess(dirPath string) bool {
	probe, err := os.CreateTemp(dirPath, ".passcloud-write-*")
	if err != nil {
		log.Debugf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}
