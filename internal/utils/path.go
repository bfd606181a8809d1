package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

const appDirName = "passcloud"

// PathResolver resolves config and input paths for the passcloud binary
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      platformConfigDir(homeDir),
	}

	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the appropriate config directory for the platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", appDirName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appDirName)
		}
		return filepath.Join(homeDir, ".config", appDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName)
	default:
		return filepath.Join(homeDir, "."+appDirName)
	}
}

// GetConfigPath returns the full path for a config file.
// Falls back to ~/.passcloud, the temp dir, then the executable dir when the
// platform config dir is not writable.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if ensureWritableDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, "."+appDirName),
		filepath.Join(os.TempDir(), appDirName),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if ensureWritableDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ResolveInputPath finds an input file given on the command line.
// Absolute paths and "-" (stdin) are returned unchanged; relative paths are tried
// against the working directory, then the executable and config directories.
func (pr *PathResolver) ResolveInputPath(userPath string) (string, error) {
	if userPath == "-" || filepath.IsAbs(userPath) {
		return userPath, nil
	}

	var searchPaths []string
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	searchPaths = append(searchPaths, pr.executableDir, pr.configDir)

	path, err := FindFileInPaths(userPath, searchPaths)
	if err != nil {
		return "", err
	}
	log.Debugf("Resolved input %s to %s", userPath, path)
	return path, nil
}

// FindFileInPaths searches for a file in multiple possible locations
func FindFileInPaths(filename string, searchPaths []string) (string, error) {
	for _, searchPath := range searchPaths {
		fullPath := filepath.Join(searchPath, filename)
		if stat, err := os.Stat(fullPath); err == nil && !stat.IsDir() {
			return fullPath, nil
		}
	}
	return "", &os.PathError{Op: "resolve", Path: filename, Err: os.ErrNotExist}
}

// ensureWritableDir creates the directory if needed and tests writability
func ensureWritableDir(dir string) bool {
	if err := EnsureDir(dir); err != nil {
		log.Debugf("Cannot create directory %s: %v", dir, err)
		return false
	}
	return testWriteAccess(dir)
}
