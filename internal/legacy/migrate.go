// ABOUTME: One-shot migration of legacy flat-file state into the relational store
// ABOUTME: Absent files are a no-op; per-file failures are collected so independent migrations still run

package legacy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/codec"
	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/store"
	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/vault"
)

// MnemonicFname is the legacy flat-file location of the encrypted seed.
const MnemonicFname = "mnemonic"

// configFileKeys are the legacy flat files whose trimmed content becomes an
// rgb_config entry under the same name. proxy_endpoint never existed as a
// file, so it is absent here but present in the mirror's key list.
var configFileKeys = []string{
	store.ConfigIndexerURL,
	store.ConfigBitcoinNetwork,
	store.ConfigWalletFingerprint,
	store.ConfigWalletAccountXpubColored,
	store.ConfigWalletAccountXpubVanilla,
	store.ConfigWalletMasterFingerprint,
}

// Migrator moves pre-store flat-file records into the relational store.
// Running it when nothing needs migrating is a no-op; running it twice
// yields the same stored state as running it once.
type Migrator struct {
	store      *store.SQLiteStore
	storageDir string
	logger     *slog.Logger
}

// NewMigrator returns a Migrator reading legacy files from storageDir.
func NewMigrator(st *store.SQLiteStore, storageDir string) *Migrator {
	return &Migrator{
		store:      st,
		storageDir: storageDir,
		logger:     slog.Default().With("component", "legacy"),
	}
}

// Run migrates every known legacy file. Failures on one file do not stop
// the others; everything that failed is returned joined.
func (m *Migrator) Run(ctx context.Context) error {
	var errs []error
	for _, key := range configFileKeys {
		if err := m.migrateConfigFile(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("migrating %s: %w", key, err))
		}
	}
	if err := m.migrateChannelIDs(ctx); err != nil {
		errs = append(errs, fmt.Errorf("migrating channel ids: %w", err))
	}
	return errors.Join(errs...)
}

// migrateConfigFile reads the legacy file named after key, trims it, and
// saves it as an rgb_config entry. A missing file means nothing to migrate.
// The source file is left in place; the mirror overwrites it on every sync.
func (m *Migrator) migrateConfigFile(ctx context.Context, key string) error {
	path := filepath.Join(m.storageDir, key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		m.logger.Debug("no legacy file found, skipping migration", "file", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading legacy file: %w", err)
	}

	m.logger.Info("found legacy file, migrating to database", "file", key)

	value := strings.TrimSpace(string(raw))
	if err := m.store.SaveRGBConfig(ctx, key, value); err != nil {
		return err
	}

	m.logger.Info("legacy file migrated", "file", key)
	return nil
}

// migrateChannelIDs imports the structured channel_ids container. The legacy
// file is only removed after every mapping has been durably saved; a partial
// failure leaves it intact so the migration retries from scratch on the next
// startup (re-saving a mapping overwrites it with the identical value).
func (m *Migrator) migrateChannelIDs(ctx context.Context) error {
	path := filepath.Join(m.storageDir, codec.ChannelIDsFname)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		m.logger.Debug("no legacy channel_ids file found, skipping migration")
		return nil
	} else if err != nil {
		return fmt.Errorf("checking legacy channel_ids file: %w", err)
	}

	m.logger.Info("found legacy channel_ids file, migrating to database")

	info := codec.ReadOrDefault(path, codec.NewChannelIDsFile)
	for tempHex, chanHex := range info.ChannelIDs {
		tempID, err := store.ParseChannelID(tempHex)
		if err != nil {
			m.logger.Warn("skipping malformed temporary channel id in legacy file", "value", tempHex, "error", err)
			continue
		}
		chanID, err := store.ParseChannelID(chanHex)
		if err != nil {
			m.logger.Warn("skipping malformed channel id in legacy file", "value", chanHex, "error", err)
			continue
		}
		if err := m.store.SaveChannelIDMapping(ctx, tempID, chanID); err != nil {
			return err
		}
	}

	m.logger.Info("migrated channel id mappings", "count", len(info.ChannelIDs))

	if err := os.Remove(path); err != nil {
		m.logger.Warn("failed to remove legacy channel_ids file", "error", err)
	} else {
		m.logger.Info("removed legacy channel_ids file after migration")
	}

	return nil
}

// MigrateMnemonic restores a file-based encrypted seed into the store. Used
// during restore operations when the backup predates the relational store.
// The password must open the legacy ciphertext; the decrypted phrase is
// validated, re-encrypted into the store, and the source file removed
// best-effort. Returns store.ErrNotInitialized when no legacy file exists.
func (m *Migrator) MigrateMnemonic(ctx context.Context, password string) (string, error) {
	path := filepath.Join(m.storageDir, MnemonicFname)

	armored, err := os.ReadFile(path)
	if err != nil {
		return "", store.ErrNotInitialized
	}

	phrase, err := vault.Decrypt(password, strings.TrimSpace(string(armored)))
	if err != nil {
		return "", err
	}

	mnemonic, err := vault.ParseMnemonic(phrase)
	if err != nil {
		// The file decrypted cleanly but does not hold a valid seed:
		// an invariant violation, not a wrong password.
		return "", fmt.Errorf("legacy mnemonic file holds an invalid seed: %w", err)
	}

	encrypted, err := vault.Encrypt(password, mnemonic)
	if err != nil {
		return "", fmt.Errorf("re-encrypting mnemonic: %w", err)
	}
	if err := m.store.SaveMnemonic(ctx, encrypted); err != nil {
		return "", err
	}

	if err := os.Remove(path); err != nil {
		m.logger.Warn("failed to remove legacy mnemonic file", "error", err)
	}

	return mnemonic, nil
}
