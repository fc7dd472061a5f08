package presenter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/backend"
	"go.uber.org/zap"
)

// Booter loads the initial state, as implemented by *backend.Client.
type Booter interface {
	Boot(ctx context.Context) (*casefolio.State, error)
}

// Boot returns the initial state. It tries the backend, then the state cache
// file, and falls back to an empty board with the built-in catalog. Failures
// are only logged: a board is always returned.
func Boot(ctx context.Context, b Booter, stateFile string, log *zap.Logger) *casefolio.State {
	if log == nil {
		log = zap.NewNop()
	}
	s, err := b.Boot(ctx)
	if err == nil {
		return s
	}
	log.Warn("cannot boot from backend", zap.Error(err))

	if stateFile != "" {
		s, err := casefolio.DecodeState(stateFile)
		if err == nil {
			log.Info("booted from state cache", zap.String("file", stateFile))
			return s
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("cannot read state cache", zap.String("file", stateFile), zap.Error(err))
		}
	}
	log.Info("booting an empty board")
	return casefolio.NewState(nil, casefolio.Catalog{})
}

// LoadBootFile reads a boot payload file: a json payload, or an html page
// embedding one (like the html export).
func LoadBootFile(path string) (*casefolio.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		s, err := backend.ExtractBoot(f)
		if err != nil {
			return nil, fmt.Errorf("cannot read boot page %q: %w", path, err)
		}
		return s, nil
	default:
		s, err := casefolio.DecodeBoot(f)
		if err != nil {
			return nil, fmt.Errorf("cannot read boot file %q: %w", path, err)
		}
		return s, nil
	}
}
