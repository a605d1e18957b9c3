package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/sofmeright/twconf/src/config"
	twlog "github.com/sofmeright/twconf/src/log"
)

// WriteFile renders cfg to path atomically. When the file already holds the
// same bytes it is left untouched and changed is false, so watchers on the
// output (the CSS build tool's own) are not re-triggered.
func WriteFile(ctx context.Context, path string, cfg config.BuildConfig, f Format) (changed bool, err error) {
	logger := twlog.FromContext(ctx)

	data, err := Bytes(cfg, f)
	if err != nil {
		return false, err
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		logger.Debug().Str("path", path).Msg("output unchanged")
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("creating output dir: %w", err)
		}
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return false, fmt.Errorf("create pending output file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending output file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return false, fmt.Errorf("write output: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return false, fmt.Errorf("replace %s: %w", path, err)
	}

	logger.Info().
		Str("path", path).
		Str("format", string(f)).
		Int("bytes", len(data)).
		Msg("wrote build configuration")
	return true, nil
}
