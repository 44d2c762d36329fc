// ABOUTME: Tests for the channel peer address book
// ABOUTME: Covers replace-on-save, strict validation on load, and tolerant deletes

package store

import (
	"context"
	"encoding/hex"
	"errors"
	"net/netip"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

func testPubKey(t *testing.T) *btcec.PublicKey {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	return priv.PubKey()
}

func TestSaveChannelPeer_ReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pub := testPubKey(t)

	first := netip.MustParseAddrPort("10.0.0.1:9735")
	second := netip.MustParseAddrPort("10.0.0.2:9736")

	if err := s.SaveChannelPeer(ctx, pub, first); err != nil {
		t.Fatalf("SaveChannelPeer failed: %v", err)
	}
	if err := s.SaveChannelPeer(ctx, pub, second); err != nil {
		t.Fatalf("second SaveChannelPeer failed: %v", err)
	}

	peers, err := s.LoadChannelPeers(ctx)
	if err != nil {
		t.Fatalf("LoadChannelPeers failed: %v", err)
	}
	if len(peers) != 1 {
		t.Fatalf("got %d peers, want 1", len(peers))
	}

	keyHex := hex.EncodeToString(pub.SerializeCompressed())
	if got := peers[keyHex]; got != second {
		t.Errorf("address is %v, want the last saved %v", got, second)
	}
}

func TestLoadChannelPeers_InvalidRowFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(
		`INSERT INTO channel_peer (public_key, socket_addr) VALUES (?, ?)`,
		"not-a-pubkey", "10.0.0.1:9735",
	)
	if err != nil {
		t.Fatalf("inserting bad row: %v", err)
	}

	if _, err := s.LoadChannelPeers(ctx); !errors.Is(err, ErrInvalidPeer) {
		t.Errorf("expected ErrInvalidPeer, got %v", err)
	}
}

func TestLoadChannelPeers_InvalidAddressFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pub := testPubKey(t)

	_, err := s.db.Exec(
		`INSERT INTO channel_peer (public_key, socket_addr) VALUES (?, ?)`,
		hex.EncodeToString(pub.SerializeCompressed()), "nonsense",
	)
	if err != nil {
		t.Fatalf("inserting bad row: %v", err)
	}

	if _, err := s.LoadChannelPeers(ctx); !errors.Is(err, ErrInvalidPeer) {
		t.Errorf("expected ErrInvalidPeer, got %v", err)
	}
}

func TestDeleteChannelPeer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pub := testPubKey(t)

	if err := s.SaveChannelPeer(ctx, pub, netip.MustParseAddrPort("10.0.0.1:9735")); err != nil {
		t.Fatalf("SaveChannelPeer failed: %v", err)
	}
	if err := s.DeleteChannelPeer(ctx, pub); err != nil {
		t.Fatalf("DeleteChannelPeer failed: %v", err)
	}

	peers, err := s.LoadChannelPeers(ctx)
	if err != nil {
		t.Fatalf("LoadChannelPeers failed: %v", err)
	}
	if len(peers) != 0 {
		t.Errorf("got %d peers after delete, want 0", len(peers))
	}

	// Deleting an unknown peer is logged, not an error.
	if err := s.DeleteChannelPeer(ctx, testPubKey(t)); err != nil {
		t.Errorf("deleting unknown peer returned %v, want nil", err)
	}
}
