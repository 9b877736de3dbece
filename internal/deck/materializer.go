package deck

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Materialize writes rewritten over path when it differs from original.
// The file is replaced atomically and keeps its permission bits; an
// unchanged deck is not touched at all. A symlinked deck is rewritten at
// its target and the link is kept.
func Materialize(path string, original, rewritten Deck) (bool, error) {
	if original.Equal(rewritten) {
		return false, nil
	}
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(target); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := renameio.WriteFile(target, rewritten.Bytes(), perm); err != nil {
		return false, fmt.Errorf("failed to write deck %s: %w", path, err)
	}
	return true, nil
}

// Prepare reads the deck at path, rewrites it and materializes the result.
// The replacements are returned for the caller to report.
func Prepare(path string, profile *SweepProfile) ([]Replacement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck: %w", err)
	}
	original, err := ReadDeck(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rewritten, replaced, err := Rewrite(original, profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := Materialize(path, original, rewritten); err != nil {
		return nil, err
	}
	return replaced, nil
}
