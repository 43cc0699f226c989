package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AstroAir/diffani-sub002/models"
	"github.com/AstroAir/diffani-sub002/tokenizer"
)

// IsDefaultIgnored reports whether a directory entry should not become a snapshot.
func IsDefaultIgnored(name string) bool {
	ignorePatterns := []string{
		"diffani-config.yml",
		"diffani-config.yaml",
		"diffani-config.json",
		"*.bak",
		"*.swp",
		"*.tmp",
		"*.log",
		"*~",
	}

	// Hidden files (.git, .DS_Store, editor state) are never snapshots.
	if strings.HasPrefix(name, ".") {
		return true
	}

	name = strings.ToLower(name)
	for _, pattern := range ignorePatterns {
		if strings.HasPrefix(pattern, "*") {
			if strings.HasSuffix(name, strings.TrimPrefix(pattern, "*")) {
				return true
			}
		} else if name == pattern {
			return true
		}
	}
	return false
}

// RawDocFromDir builds a document from the regular files in dir, one
// snapshot per file, ordered by file name.
func RawDocFromDir(dir string) (*models.RawDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || IsDefaultIgnored(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no snapshot files in %s", dir)
	}
	sort.Strings(names)

	raw := DefaultRawDoc
	raw.Language = string(tokenizer.LanguageForFile(names[0]))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot %s: %w", name, err)
		}
		raw.Snapshots = append(raw.Snapshots, NewRawSnapshot(strings.TrimSuffix(name, filepath.Ext(name)), string(content)))
	}
	return &raw, nil
}
