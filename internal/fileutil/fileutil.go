// Package fileutil contains small path helpers shared by the preparation pipeline.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the base name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// ResolveChild maps a directory input to its first child entry; file inputs pass
// through unchanged. Release directories name their payload after the release,
// so the first entry carries the same markers the directory does.
func ResolveChild(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", path, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("directory %s is empty", path)
	}
	return filepath.Join(path, entries[0].Name()), nil
}

// TorrentBaseName picks the name the torrent file is created under: the
// directory name for directory inputs, the file stem otherwise.
func TorrentBaseName(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Base(filepath.Clean(path)), nil
	}
	return Stem(path), nil
}

// RecreateDir removes any prior contents at path and creates it fresh.
func RecreateDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("clear directory %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}
