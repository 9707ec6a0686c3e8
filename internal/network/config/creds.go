package config

import (
	"os"
	"path/filepath"
)

// DefaultCredsName is looked up when `spawn` gets no creds argument.
const DefaultCredsName = "config"

// DefaultCredsDirs returns the directories searched for credentials:
// the working directory, its parent and ~/.kube.
func DefaultCredsDirs() []string {
	dirs := []string{".", ".."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".kube"))
	}
	return dirs
}

// CredsFilePath resolves a credentials file by name. It returns an absolute
// path, or "" when nothing matches.
func CredsFilePath(name string) string {
	return FindCreds(name, DefaultCredsDirs())
}

// FindCreds returns name itself when it is an existing file, otherwise the
// first dirs/name that exists. Results are absolute.
func FindCreds(name string, dirs []string) string {
	if name == "" {
		return ""
	}
	if isFile(name) {
		return absPath(name)
	}
	if filepath.IsAbs(name) {
		return ""
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return absPath(candidate)
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
