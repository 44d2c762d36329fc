// ABOUTME: Shared types, sentinel errors, and well-known config keys for node persistence
// ABOUTME: Defines ChannelID and the rgb_config key namespace used by the store, migrator, and mirror

package store

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when the wallet mnemonic is requested
// before it has ever been saved.
var ErrNotInitialized = errors.New("node not initialized")

// ErrAlreadyInitialized is returned when a first-time initialization is
// attempted but a mnemonic row already exists.
var ErrAlreadyInitialized = errors.New("node already initialized")

// ErrInvalidPeer is returned when a stored channel peer row fails
// validation on load (unparsable public key or socket address).
var ErrInvalidPeer = errors.New("invalid peer record")

// Well-known rgb_config keys. The same names are used as legacy file names
// inside the storage directory and as mirror file names written back out for
// the RGB library, which only reads files.
const (
	ConfigIndexerURL               = "indexer_url"
	ConfigProxyEndpoint            = "proxy_endpoint"
	ConfigBitcoinNetwork           = "bitcoin_network"
	ConfigWalletFingerprint        = "wallet_fingerprint"
	ConfigWalletAccountXpubColored = "wallet_account_xpub_colored"
	ConfigWalletAccountXpubVanilla = "wallet_account_xpub_vanilla"
	ConfigWalletMasterFingerprint  = "wallet_master_fingerprint"
)

// MirroredConfigKeys lists every rgb_config key that is synced back to a
// flat file by the mirror. Order is not significant.
var MirroredConfigKeys = []string{
	ConfigIndexerURL,
	ConfigProxyEndpoint,
	ConfigBitcoinNetwork,
	ConfigWalletFingerprint,
	ConfigWalletAccountXpubColored,
	ConfigWalletAccountXpubVanilla,
	ConfigWalletMasterFingerprint,
}

// ChannelID is a 32-byte Lightning channel identifier. Channel IDs are
// stored hex-encoded and must decode to exactly 32 bytes on read.
type ChannelID [32]byte

// ParseChannelID decodes a hex-encoded channel ID, requiring exactly 32 bytes.
func ParseChannelID(s string) (ChannelID, error) {
	var id ChannelID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("decoding channel id hex: %w", err)
	}
	if len(raw) != len(id) {
		return id, fmt.Errorf("channel id is %d bytes, want %d", len(raw), len(id))
	}
	copy(id[:], raw)
	return id, nil
}

// String returns the lowercase hex encoding used at rest.
func (c ChannelID) String() string {
	return hex.EncodeToString(c[:])
}
