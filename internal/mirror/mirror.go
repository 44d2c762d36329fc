// ABOUTME: Syncs rgb_config values from the store to flat files for the file-only RGB library
// ABOUTME: The store stays authoritative; files are regenerated wholesale and never read back

package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/store"
)

// Sync writes every set mirrored config key to its well-known file inside
// storageDir, overwriting prior content. Keys with no stored value leave
// their file untouched: no deletion, no empty file. Safe to call repeatedly;
// keys are independent, so one failed write does not stop the rest.
func Sync(ctx context.Context, st *store.SQLiteStore, storageDir string) error {
	logger := slog.Default().With("component", "mirror")

	var errs []error
	for _, key := range store.MirroredConfigKeys {
		value, ok, err := st.LoadRGBConfig(ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("loading %s: %w", key, err))
			continue
		}
		if !ok {
			continue
		}

		path := filepath.Join(storageDir, key)
		if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
			errs = append(errs, fmt.Errorf("writing %s: %w", key, err))
			continue
		}
		logger.Info("synced config value to file", "key", key)
	}

	return errors.Join(errs...)
}
