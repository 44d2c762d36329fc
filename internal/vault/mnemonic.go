// ABOUTME: BIP39 mnemonic validation and generation for the wallet seed

package vault

import (
	"errors"
	"fmt"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"
)

// ErrInvalidMnemonic is returned when a phrase fails BIP39 validation.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// ParseMnemonic validates a seed phrase against the BIP39 wordlist and
// checksum and returns it in normalized form (single spaces, trimmed).
func ParseMnemonic(text string) (string, error) {
	phrase := strings.Join(strings.Fields(text), " ")
	if !bip39.IsMnemonicValid(phrase) {
		return "", ErrInvalidMnemonic
	}
	return phrase, nil
}

// GenerateMnemonic creates a fresh 24-word seed phrase.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("generating entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("building mnemonic: %w", err)
	}
	return mnemonic, nil
}
