// Package secrets wraps fernet encryption for sensitive values stored at
// rest, currently investor payout account numbers.
package secrets

import (
	"errors"
	"strings"

	"github.com/fernet/fernet-go"
)

var (
	// ErrNoKey indicates the vault was constructed without a key.
	ErrNoKey = errors.New("no encryption key configured")

	// ErrDecryptFailed indicates the ciphertext could not be verified with
	// the configured key.
	ErrDecryptFailed = errors.New("failed to decrypt value")
)

// Vault encrypts and decrypts short secrets with a single fernet key.
type Vault struct {
	keys []*fernet.Key
}

// NewVault creates a Vault from a base64-encoded fernet key. An empty key
// yields a vault that refuses all operations, so the feature degrades
// cleanly when unconfigured.
func NewVault(encodedKey string) (*Vault, error) {
	if strings.TrimSpace(encodedKey) == "" {
		return &Vault{}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, err
	}

	return &Vault{keys: []*fernet.Key{key}}, nil
}

// Enabled reports whether a key is configured.
func (v *Vault) Enabled() bool {
	return len(v.keys) > 0
}

// Encrypt returns the fernet token for a plaintext value.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	if !v.Enabled() {
		return "", ErrNoKey
	}

	token, err := fernet.EncryptAndSign([]byte(plaintext), v.keys[0])
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire;
// payout details stay valid until replaced.
func (v *Vault) Decrypt(ciphertext string) (string, error) {
	if !v.Enabled() {
		return "", ErrNoKey
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(ciphertext), 0, v.keys)
	if plaintext == nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}

// MaskAccountNumber keeps only the last four characters of an account
// number for display.
func MaskAccountNumber(number string) string {
	trimmed := strings.TrimSpace(number)
	if len(trimmed) <= 4 {
		return strings.Repeat("*", len(trimmed))
	}
	return strings.Repeat("*", len(trimmed)-4) + trimmed[len(trimmed)-4:]
}
