// Package quarantine persists uploads that failed the security scan into an
// isolated directory, keyed by content hash for stable identification.
package quarantine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store writes rejected uploads under a single quarantine directory.
type Store struct {
	dir string
}

// NewStore creates the quarantine directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create quarantine dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes content as <hash[:16]>_<original name>. The hash prefix avoids
// collisions while the original name preserves traceability. Returns the
// path of the quarantined file.
func (s *Store) Save(content []byte, originalName, contentHash string) (string, error) {
	prefix := contentHash
	if len(prefix) > 16 {
		prefix = prefix[:16]
	}

	name := fmt.Sprintf("%s_%s", prefix, sanitizeName(originalName))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, content, 0o640); err != nil {
		return "", fmt.Errorf("write quarantined file: %w", err)
	}
	return path, nil
}

// List returns the filenames currently held in quarantine.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// sanitizeName strips path separators and traversal sequences from an
// attacker-supplied filename.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
