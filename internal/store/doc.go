// Package store provides persistent storage for the node using SQLite.
//
// # Record kinds
//
// A single SQLiteStore owns five record kinds, each with its own update
// protocol:
//
//   - mnemonic: singleton encrypted wallet seed; save clears then inserts
//     exactly one row
//   - channel_peer: peer address book keyed by secp256k1 public key;
//     save replaces the existing row for the peer
//   - rgb_config: string key/value configuration; save updates in place,
//     reads go through a write-through cache with negative caching
//   - channel_ids: temporary-to-final channel ID map, hex at rest;
//     malformed rows are skipped on load, deletion is keyed by final ID
//   - revoked_token: revocation identifier set; duplicate insert is a no-op
//
// # SQLite configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA busy_timeout=<pool.BusyTimeout>;
//
// The database/sql pool bounds concurrent backend operations; the mnemonic
// path additionally serializes behind a mutex.
//
// # Error handling
//
//   - ErrNotInitialized: mnemonic requested before first save
//   - ErrAlreadyInitialized: duplicate first-time initialization
//   - ErrInvalidPeer: stored peer row failed validation on load
//
// All other failures are returned with the backend's message wrapped; callers
// never see driver-specific error types. All methods accept context.Context.
package store
