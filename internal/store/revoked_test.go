// ABOUTME: Tests for the revoked token set
// ABOUTME: Covers duplicate-insert no-op and skip-with-warn on malformed hex

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRevokedToken_DuplicateIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRevokedToken(ctx, "deadbeef"))
	require.NoError(t, s.SaveRevokedToken(ctx, "deadbeef"), "reporting the same revocation twice must succeed")

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM revoked_token`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLoadRevokedTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRevokedToken(ctx, "deadbeef"))
	require.NoError(t, s.SaveRevokedToken(ctx, "cafe0123"))

	revoked, err := s.LoadRevokedTokens(ctx)
	require.NoError(t, err)
	require.Len(t, revoked, 2)

	_, ok := revoked[string([]byte{0xde, 0xad, 0xbe, 0xef})]
	assert.True(t, ok, "set keys are the raw decoded bytes")
	_, ok = revoked[string([]byte{0xca, 0xfe, 0x01, 0x23})]
	assert.True(t, ok)
}

func TestLoadRevokedTokens_SkipsMalformedHex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRevokedToken(ctx, "deadbeef"))

	_, err := s.db.Exec(`INSERT INTO revoked_token (revocation_id) VALUES (?)`, "not-hex")
	require.NoError(t, err)

	revoked, err := s.LoadRevokedTokens(ctx)
	require.NoError(t, err, "a malformed entry must never fail the load")
	require.Len(t, revoked, 1)
	_, ok := revoked[string([]byte{0xde, 0xad, 0xbe, 0xef})]
	assert.True(t, ok)
}
