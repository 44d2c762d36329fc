// ABOUTME: Singleton storage for the encrypted wallet mnemonic
// ABOUTME: Save clears all rows then inserts exactly one, so the table never holds two seeds

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveMnemonic replaces the stored encrypted mnemonic. The delete-then-insert
// protocol keeps the save idempotent under retries: there is never more than
// one row regardless of how many times it runs. The plaintext seed never
// reaches this layer.
func (s *SQLiteStore) SaveMnemonic(ctx context.Context, encryptedMnemonic string) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM mnemonic`); err != nil {
		return fmt.Errorf("clearing mnemonic table: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO mnemonic (encrypted_mnemonic) VALUES (?)`, encryptedMnemonic,
	); err != nil {
		return fmt.Errorf("inserting mnemonic: %w", err)
	}

	s.logger.Info("mnemonic saved")
	return nil
}

// LoadMnemonic returns the stored encrypted mnemonic.
// Returns ErrNotInitialized if no mnemonic has ever been saved.
func (s *SQLiteStore) LoadMnemonic(ctx context.Context) (string, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	var encrypted string
	err := s.db.QueryRowContext(ctx,
		`SELECT encrypted_mnemonic FROM mnemonic ORDER BY id LIMIT 1`,
	).Scan(&encrypted)
	if err == sql.ErrNoRows {
		return "", ErrNotInitialized
	}
	if err != nil {
		return "", fmt.Errorf("querying mnemonic: %w", err)
	}

	return encrypted, nil
}

// IsInitialized reports whether a mnemonic row exists.
func (s *SQLiteStore) IsInitialized(ctx context.Context) (bool, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mnemonic`).Scan(&count); err != nil {
		return false, fmt.Errorf("counting mnemonic rows: %w", err)
	}
	return count > 0, nil
}

// CheckAlreadyInitialized returns ErrAlreadyInitialized when a mnemonic is
// already stored. Used to guard first-time wallet initialization.
func (s *SQLiteStore) CheckAlreadyInitialized(ctx context.Context) error {
	initialized, err := s.IsInitialized(ctx)
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}
	return nil
}
