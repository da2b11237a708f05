// Package envelope implements the vault's authenticated-encryption layer:
// ChaCha20-Poly1305 with a fixed, domain-separated associated-data string,
// per spec.md §4.8. Grounded on the chacha20poly1305+argon2 pairing in
// the pack's NasServer encryption_service.go.
package envelope

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/sli3en/pwgen/internal/pwgenerr"
)

// AAD is the exact associated-data byte string bound to every vault
// ciphertext. Any alteration of the envelope, or of this string, causes
// decryption to fail with ErrAuthFailure.
const AAD = "pwgen|vault|v1"

// NonceSize is the AEAD nonce length spec.md §4.8 mandates.
const NonceSize = chacha20poly1305.NonceSize // 12

// Seal encrypts plaintext under key (must be 32 bytes) with a fresh random
// nonce, returning the nonce and the ciphertext-with-tag.
func Seal(key [32]byte, plaintext []byte) (nonce [NonceSize]byte, ciphertext []byte, err error) {
	if _, err = rand.Read(nonce[:]); err != nil {
		return nonce, nil, fmt.Errorf("envelope: generate nonce: %w", pwgenerr.ErrIOFailure)
	}
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nonce, nil, fmt.Errorf("envelope: construct aead: %w", err)
	}
	ciphertext = aead.Seal(nil, nonce[:], plaintext, []byte(AAD))
	return nonce, ciphertext, nil
}

// Open verifies and decrypts ciphertext under key and nonce. Any
// verification failure — wrong key or tampered bytes — yields the single
// opaque ErrAuthFailure, never distinguishing the two causes.
func Open(key [32]byte, nonce [NonceSize]byte, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("envelope: construct aead: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce[:], ciphertext, []byte(AAD))
	if err != nil {
		return nil, pwgenerr.ErrAuthFailure
	}
	return plaintext, nil
}
