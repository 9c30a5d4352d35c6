// Package cryptoseal implements the checksum and authenticated-encryption
// stages of the snapshot envelope: SHA-256 integrity checksumming and
// AES-256-GCM authenticated encryption.
//
// These stages use the Go standard library, the idiomatic and audited
// choice for primitive cryptography.
package cryptoseal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/tx2pack/tx2pack/errs"
)

// KeySize is the required AES-256 key length in bytes.
const KeySize = 32

// NonceSize is the AEAD nonce length in bytes, generated uniformly at
// random per write and stored as a prefix of the sealed body.
const NonceSize = 12

// TagSize is the GCM authentication tag length in bytes, appended by the
// AEAD after the ciphertext.
const TagSize = 16

// Checksum returns the SHA-256 digest of data.
func Checksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Seal encrypts plaintext with AES-256-GCM under key, binding aad as
// associated data, and returns nonce||ciphertext||tag. A fresh random
// nonce is generated for every call, so two calls with the same plaintext
// and key produce different outputs.
func Seal(key, aad, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", errs.ErrEncryption, KeySize, len(key))
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrEncryption, err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: nonce generation: %w", errs.ErrEncryption, err)
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, aad)

	return sealed, nil
}

// Open decrypts a nonce||ciphertext||tag buffer produced by Seal, verifying
// aad. Returns errs.ErrDecryption on any tampering, wrong key, or malformed
// input.
func Open(key, aad, sealed []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", errs.ErrDecryption, KeySize, len(key))
	}
	if len(sealed) < NonceSize+TagSize {
		return nil, fmt.Errorf("%w: sealed body too short", errs.ErrDecryption)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDecryption, err)
	}

	nonce := sealed[:NonceSize]
	ciphertext := sealed[NonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDecryption, err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCMWithNonceSize(block, NonceSize)
}
