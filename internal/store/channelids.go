// ABOUTME: Temporary-to-final channel ID mappings, hex-encoded at rest
// ABOUTME: Bulk load skips malformed rows with a warning; one bad row never fails the whole load

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveChannelIDMapping records that temporaryID was assigned the final
// channelID, updating in place when the temporary ID is already mapped.
func (s *SQLiteStore) SaveChannelIDMapping(ctx context.Context, temporaryID, channelID ChannelID) error {
	tempHex := temporaryID.String()
	chanHex := channelID.String()
	s.logger.Debug("saving channel id mapping", "temporary_channel_id", tempHex, "channel_id", chanHex)

	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM channel_ids WHERE temporary_channel_id = ?`, tempHex,
	).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO channel_ids (temporary_channel_id, channel_id) VALUES (?, ?)`,
			tempHex, chanHex,
		); err != nil {
			return fmt.Errorf("inserting channel id mapping: %w", err)
		}
	case err != nil:
		return fmt.Errorf("querying channel id mapping: %w", err)
	default:
		if _, err := s.db.ExecContext(ctx,
			`UPDATE channel_ids SET channel_id = ? WHERE id = ?`, chanHex, id,
		); err != nil {
			return fmt.Errorf("updating channel id mapping: %w", err)
		}
	}

	return nil
}

// LoadChannelIDMappings returns every stored temporary-to-final mapping.
// Rows whose hex does not decode to exactly 32 bytes are logged and skipped.
func (s *SQLiteStore) LoadChannelIDMappings(ctx context.Context) (map[ChannelID]ChannelID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT temporary_channel_id, channel_id FROM channel_ids`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying channel id mappings: %w", err)
	}
	defer rows.Close()

	mappings := make(map[ChannelID]ChannelID)
	for rows.Next() {
		var tempHex, chanHex string
		if err := rows.Scan(&tempHex, &chanHex); err != nil {
			return nil, fmt.Errorf("scanning channel id row: %w", err)
		}

		tempID, err := ParseChannelID(tempHex)
		if err != nil {
			s.logger.Warn("invalid temporary_channel_id in database", "value", tempHex, "error", err)
			continue
		}
		chanID, err := ParseChannelID(chanHex)
		if err != nil {
			s.logger.Warn("invalid channel_id in database", "value", chanHex, "error", err)
			continue
		}

		mappings[tempID] = chanID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating channel id rows: %w", err)
	}

	s.logger.Debug("loaded channel id mappings", "count", len(mappings))
	return mappings, nil
}

// DeleteChannelIDMapping removes mappings for a closed or obsoleted channel.
// Lookup is by the final channel ID, not the temporary one.
func (s *SQLiteStore) DeleteChannelIDMapping(ctx context.Context, channelID ChannelID) error {
	chanHex := channelID.String()

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM channel_ids WHERE channel_id = ?`, chanHex,
	)
	if err != nil {
		return fmt.Errorf("deleting channel id mapping: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.Debug("no channel id mapping found for deletion", "channel_id", chanHex)
	} else {
		s.logger.Debug("channel id mapping deleted", "channel_id", chanHex)
	}

	return nil
}
