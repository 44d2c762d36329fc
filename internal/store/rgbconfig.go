// ABOUTME: Key/value RGB configuration records with a write-through cache
// ABOUTME: Save commits to the store before touching the cache so readers never see a stale cached value

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveRGBConfig stores a config value under key, updating the existing row
// in place when one exists so the surrogate id stays stable. The cache entry
// is only overwritten after the store write succeeds.
func (s *SQLiteStore) SaveRGBConfig(ctx context.Context, key, value string) error {
	s.logger.Info("saving rgb config", "key", key)

	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM rgb_config WHERE key = ?`, key,
	).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO rgb_config (key, value) VALUES (?, ?)`, key, value,
		); err != nil {
			return fmt.Errorf("inserting rgb config: %w", err)
		}
	case err != nil:
		return fmt.Errorf("querying rgb config: %w", err)
	default:
		if _, err := s.db.ExecContext(ctx,
			`UPDATE rgb_config SET value = ? WHERE id = ?`, value, id,
		); err != nil {
			return fmt.Errorf("updating rgb config: %w", err)
		}
	}

	s.cache.put(key, cachedValue{value: value, present: true})
	return nil
}

// LoadRGBConfig returns the value stored under key. The boolean reports
// presence: a key that was never set yields ("", false, nil). Both outcomes
// are cached, so repeated lookups of an unset key do not hit the backend.
func (s *SQLiteStore) LoadRGBConfig(ctx context.Context, key string) (string, bool, error) {
	if cached, ok := s.cache.get(key); ok {
		return cached.value, cached.present, nil
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM rgb_config WHERE key = ?`, key,
	).Scan(&value)
	switch {
	case err == sql.ErrNoRows:
		s.cache.put(key, cachedValue{})
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("querying rgb config: %w", err)
	}

	s.cache.put(key, cachedValue{value: value, present: true})
	return value, true, nil
}
