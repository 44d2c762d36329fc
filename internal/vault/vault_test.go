// ABOUTME: Tests for mnemonic sealing
// ABOUTME: Covers round trips, wrong-password detection, tampering, and malformed armor

package vault

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	armored, err := Encrypt("hunter2", testPhrase)
	require.NoError(t, err)
	assert.NotContains(t, armored, "abandon", "armor must not leak plaintext")

	plaintext, err := Decrypt("hunter2", armored)
	require.NoError(t, err)
	assert.Equal(t, testPhrase, plaintext)
}

func TestEncrypt_FreshSaltPerCall(t *testing.T) {
	a, err := Encrypt("hunter2", testPhrase)
	require.NoError(t, err)
	b, err := Encrypt("hunter2", testPhrase)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "same input must never produce the same armor")
}

func TestDecrypt_WrongPassword(t *testing.T) {
	armored, err := Encrypt("password-a", testPhrase)
	require.NoError(t, err)

	_, err = Decrypt("password-b", armored)
	assert.ErrorIs(t, err, ErrWrongPassword, "must never yield a silently wrong plaintext")
}

func TestDecrypt_TamperedBox(t *testing.T) {
	armored, err := Encrypt("hunter2", testPhrase)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(armored)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01

	_, err = Decrypt("hunter2", base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestDecrypt_MalformedArmor(t *testing.T) {
	_, err := Decrypt("hunter2", "%%% not base64 %%%")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = Decrypt("hunter2", base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}
