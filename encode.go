package casefolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// This file persists the last authoritative state to a local file, so that a
// later run can render the board even when the backend is not reachable.
// The file is a cache: the backend stays the source of truth.

// EncodeState writes s as indented JSON to path. The file is replaced
// atomically.
func EncodeState(path string, s *State) error {
	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode state: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create state directory %q: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("cannot create state file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(append(content, '\n')); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot write state file %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot close state file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot replace state file %q: %w", path, err)
	}
	return nil
}

// DecodeState reads a state written by EncodeState.
// A missing file returns an error matching fs.ErrNotExist.
func DecodeState(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeBoot(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode state file %q: %w", path, err)
	}
	return s, nil
}
