// ABOUTME: Channel peer address book keyed by secp256k1 public key
// ABOUTME: Save replaces any existing row for the peer; load validates every row strictly

package store

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/netip"

	"github.com/btcsuite/btcd/btcec/v2"
)

// SaveChannelPeer records the last-known address for a peer. An existing row
// for the same public key is replaced (delete-then-insert) so there is at
// most one row per peer, typically on connection-success events.
func (s *SQLiteStore) SaveChannelPeer(ctx context.Context, pubKey *btcec.PublicKey, addr netip.AddrPort) error {
	keyHex := hex.EncodeToString(pubKey.SerializeCompressed())
	s.logger.Info("saving channel peer", "pubkey", keyHex, "addr", addr.String())

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM channel_peer WHERE public_key = ?`, keyHex,
	); err != nil {
		return fmt.Errorf("deleting existing channel peer: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO channel_peer (public_key, socket_addr) VALUES (?, ?)`,
		keyHex, addr.String(),
	); err != nil {
		return fmt.Errorf("inserting channel peer: %w", err)
	}

	return nil
}

// LoadChannelPeers returns every stored peer keyed by compressed public key
// hex. Unlike the bulk channel-id load, a row that fails validation is an
// error (wrapping ErrInvalidPeer), not a skip: the reconnect loop must not
// silently forget peers.
func (s *SQLiteStore) LoadChannelPeers(ctx context.Context) (map[string]netip.AddrPort, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT public_key, socket_addr FROM channel_peer`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying channel peers: %w", err)
	}
	defer rows.Close()

	peers := make(map[string]netip.AddrPort)
	for rows.Next() {
		var keyHex, addrStr string
		if err := rows.Scan(&keyHex, &addrStr); err != nil {
			return nil, fmt.Errorf("scanning channel peer row: %w", err)
		}

		raw, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("%w: public key %q is not hex: %v", ErrInvalidPeer, keyHex, err)
		}
		if _, err := btcec.ParsePubKey(raw); err != nil {
			return nil, fmt.Errorf("%w: parsing public key %q: %v", ErrInvalidPeer, keyHex, err)
		}

		addr, err := netip.ParseAddrPort(addrStr)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing socket address %q: %v", ErrInvalidPeer, addrStr, err)
		}

		peers[keyHex] = addr
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating channel peer rows: %w", err)
	}

	s.logger.Debug("loaded channel peers", "count", len(peers))
	return peers, nil
}

// DeleteChannelPeer removes a peer on explicit disconnect. Deleting a peer
// that is not stored is not an error; it is logged and ignored.
func (s *SQLiteStore) DeleteChannelPeer(ctx context.Context, pubKey *btcec.PublicKey) error {
	keyHex := hex.EncodeToString(pubKey.SerializeCompressed())

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM channel_peer WHERE public_key = ?`, keyHex,
	)
	if err != nil {
		return fmt.Errorf("deleting channel peer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.Warn("channel peer not found for deletion", "pubkey", keyHex)
		return nil
	}

	s.logger.Info("channel peer deleted", "pubkey", keyHex)
	return nil
}
