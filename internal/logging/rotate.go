package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// backupName returns "<dir>/<name>.<n><ext>" for a log at basePath.
func backupName(basePath string, n int) string {
	dir := filepath.Dir(basePath)
	ext := filepath.Ext(basePath)
	name := strings.TrimSuffix(filepath.Base(basePath), ext)
	return filepath.Join(dir, fmt.Sprintf("%s.%d%s", name, n, ext))
}

// rotateFiles shifts jellydiff.N.log to jellydiff.N+1.log (dropping anything
// at or past maxBackups) and moves the live log to jellydiff.1.log.
func rotateFiles(basePath string, maxBackups int) error {
	backups, err := findBackups(basePath)
	if err != nil {
		return err
	}

	slices.Sort(backups)
	slices.Reverse(backups)

	for _, n := range backups {
		oldPath := backupName(basePath, n)
		if n >= maxBackups {
			os.Remove(oldPath)
			continue
		}
		newPath := backupName(basePath, n+1)
		if err := os.Rename(oldPath, newPath); err != nil {
			return fmt.Errorf("failed to rotate %s to %s: %w", oldPath, newPath, err)
		}
	}

	if _, err := os.Stat(basePath); err == nil {
		if err := os.Rename(basePath, backupName(basePath, 1)); err != nil {
			return fmt.Errorf("failed to rotate current log: %w", err)
		}
	}

	return nil
}

// findBackups lists the numeric suffixes of existing rotated logs.
func findBackups(basePath string) ([]int, error) {
	dir := filepath.Dir(basePath)
	ext := filepath.Ext(basePath)
	prefix := strings.TrimSuffix(filepath.Base(basePath), ext) + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var backups []int
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(fname, prefix) || !strings.HasSuffix(fname, ext) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(fname, prefix), ext))
		if err != nil {
			continue
		}
		backups = append(backups, n)
	}

	return backups, nil
}
