// ABOUTME: Tests for temporary-to-final channel ID mappings
// ABOUTME: Covers upsert by temporary id, malformed-row tolerance, and deletion by final id

package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChannelID(t *testing.T, fill byte) ChannelID {
	t.Helper()
	var id ChannelID
	for i := range id {
		id[i] = fill
	}
	return id
}

func TestSaveChannelIDMapping_Upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	temp := testChannelID(t, 0x01)
	first := testChannelID(t, 0xaa)
	second := testChannelID(t, 0xbb)

	require.NoError(t, s.SaveChannelIDMapping(ctx, temp, first))
	require.NoError(t, s.SaveChannelIDMapping(ctx, temp, second))

	mappings, err := s.LoadChannelIDMappings(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, second, mappings[temp], "last write wins")
}

func TestLoadChannelIDMappings_SkipsMalformedRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	good := testChannelID(t, 0x02)
	goodFinal := testChannelID(t, 0xcc)
	require.NoError(t, s.SaveChannelIDMapping(ctx, good, goodFinal))

	// Too-short hex: decodes to fewer than 32 bytes.
	_, err := s.db.Exec(
		`INSERT INTO channel_ids (temporary_channel_id, channel_id) VALUES (?, ?)`,
		"0badc0de", goodFinal.String(),
	)
	require.NoError(t, err)

	// Non-hex garbage in the final id.
	_, err = s.db.Exec(
		`INSERT INTO channel_ids (temporary_channel_id, channel_id) VALUES (?, ?)`,
		strings.Repeat("33", 32), "not-hex-at-all",
	)
	require.NoError(t, err)

	mappings, err := s.LoadChannelIDMappings(ctx)
	require.NoError(t, err, "malformed rows must never fail the load")
	require.Len(t, mappings, 1)
	assert.Equal(t, goodFinal, mappings[good])
}

func TestDeleteChannelIDMapping_ByFinalID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tempA := testChannelID(t, 0x01)
	tempB := testChannelID(t, 0x02)
	final := testChannelID(t, 0xee)
	otherFinal := testChannelID(t, 0xef)

	require.NoError(t, s.SaveChannelIDMapping(ctx, tempA, final))
	require.NoError(t, s.SaveChannelIDMapping(ctx, tempB, otherFinal))

	require.NoError(t, s.DeleteChannelIDMapping(ctx, final))

	mappings, err := s.LoadChannelIDMappings(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, otherFinal, mappings[tempB])

	// Deleting an unknown final id is a quiet no-op.
	require.NoError(t, s.DeleteChannelIDMapping(ctx, testChannelID(t, 0x42)))
}
