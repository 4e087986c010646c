package genfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// tmpSuffix marks in-flight files. They live in the destination directory so
// the final rename never crosses filesystems.
const tmpSuffix = ".tmp"

// Staged is a pending file write. Commit renames it into place; Discard
// removes the temp file. Exactly one of the two must be called.
type Staged struct {
	tmp  string
	path string
}

// Stage writes content to a temporary file next to path. Nothing at path is
// touched until Commit.
func Stage(path string, content []byte) (*Staged, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, content, filePerm); err != nil {
		return nil, fmt.Errorf("writing %s: %w", tmp, err)
	}

	return &Staged{tmp: tmp, path: path}, nil
}

// Commit atomically replaces the destination with the staged content.
func (s *Staged) Commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		return fmt.Errorf("committing %s: %w", s.path, err)
	}

	return nil
}

// Discard removes the staged temp file. Safe to call after Commit.
func (s *Staged) Discard() {
	_ = os.Remove(s.tmp)
}

// WriteDebugUnformatted writes unformatted code to a sidecar file next to
// the intended output. This is best-effort and should never make generation
// fail harder.
func WriteDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}
	// Keep it a .go file so editors can syntax highlight, but avoid colliding
	// with real output.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"
	p := filepath.Join(dir, debugName)

	return os.WriteFile(p, content, filePerm)
}
