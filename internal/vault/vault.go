// ABOUTME: Password-based sealing of the wallet mnemonic
// ABOUTME: scrypt key derivation + XChaCha20-Poly1305; a failed AEAD open is reported as a wrong password

package vault

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// ErrWrongPassword is returned when decryption fails authentication.
// It is distinct from ErrInvalidCiphertext so callers can surface an
// "incorrect password" outcome instead of a generic corruption error.
var ErrWrongPassword = errors.New("wrong password")

// ErrInvalidCiphertext is returned when the stored value is not a
// well-formed armored ciphertext at all.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

const saltSize = 16

// scrypt parameters: interactive-login strength, fixed for compatibility
// with previously stored seeds.
const (
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

func deriveKey(password string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
}

// Encrypt seals plaintext under a key derived from password and returns a
// base64 string (salt || nonce || box) suitable for a TEXT column.
func Encrypt(password, plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return "", fmt.Errorf("deriving key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	box := aead.Seal(nil, nonce, []byte(plaintext), nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(box))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, box...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens an armored ciphertext produced by Encrypt. An authentication
// failure yields ErrWrongPassword; a structurally malformed input yields
// ErrInvalidCiphertext.
func Decrypt(password, armored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(armored)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	if len(raw) < saltSize+chacha20poly1305.NonceSizeX {
		return "", fmt.Errorf("%w: %d bytes is too short", ErrInvalidCiphertext, len(raw))
	}

	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	box := raw[saltSize+chacha20poly1305.NonceSizeX:]

	key, err := deriveKey(password, salt)
	if err != nil {
		return "", fmt.Errorf("deriving key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, box, nil)
	if err != nil {
		// Poly1305 failure: either the password is wrong or the box was
		// tampered with. Indistinguishable by construction; reported as
		// the former since that is the overwhelmingly common cause.
		return "", ErrWrongPassword
	}

	return string(plaintext), nil
}
