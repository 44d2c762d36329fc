// ABOUTME: Revocation identifiers for revoked access tokens
// ABOUTME: Insert is a silent no-op for duplicates; load returns a set of raw identifier bytes

package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// SaveRevokedToken records a revocation identifier (hex-encoded). Reporting
// the same revocation twice is a silent success, whether the duplicate is
// seen by the existence check or by the unique constraint.
func (s *SQLiteStore) SaveRevokedToken(ctx context.Context, revocationIDHex string) error {
	s.logger.Debug("saving revoked token", "revocation_id", revocationIDHex)

	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM revoked_token WHERE revocation_id = ?`, revocationIDHex,
	).Scan(&id)
	switch {
	case err == nil:
		s.logger.Debug("revocation id already stored, skipping", "revocation_id", revocationIDHex)
		return nil
	case err != sql.ErrNoRows:
		return fmt.Errorf("querying revoked token: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO revoked_token (revocation_id) VALUES (?)`, revocationIDHex,
	); err != nil {
		// A concurrent saver can win the race between the existence check
		// and this insert; that duplicate is the same silent success.
		if isConstraintViolation(err) {
			return nil
		}
		return fmt.Errorf("inserting revoked token: %w", err)
	}

	return nil
}

// LoadRevokedTokens returns the set of revoked identifiers, decoded from hex
// to raw bytes. Set keys are the raw bytes converted to string for
// membership tests. Malformed hex entries are logged and skipped.
func (s *SQLiteStore) LoadRevokedTokens(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT revocation_id FROM revoked_token`)
	if err != nil {
		return nil, fmt.Errorf("querying revoked tokens: %w", err)
	}
	defer rows.Close()

	revoked := make(map[string]struct{})
	for rows.Next() {
		var idHex string
		if err := rows.Scan(&idHex); err != nil {
			return nil, fmt.Errorf("scanning revoked token row: %w", err)
		}

		raw, err := hex.DecodeString(idHex)
		if err != nil {
			s.logger.Warn("invalid hex in revoked_token table", "revocation_id", idHex)
			continue
		}
		revoked[string(raw)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revoked token rows: %w", err)
	}

	s.logger.Info("loaded revoked tokens", "count", len(revoked))
	return revoked, nil
}
