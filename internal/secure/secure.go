// Package secure provides zeroization and constant-time comparison helpers
// for secret byte material, grounded on
// gitrgoliveira-go-fileencrypt/secure/memory.go's Zero/SecureCompare.
package secure

import "crypto/subtle"

// Zero overwrites b with zero bytes. The subtle.ConstantTimeCompare call
// keeps the compiler from proving the write is dead and eliding it.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	for i := range b {
		b[i] = 0
	}
	_ = subtle.ConstantTimeCompare(b, make([]byte, len(b)))
}

// Compare performs a constant-time equality check of two byte slices.
func Compare(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}

// Secret wraps a byte slice holding sensitive material (a master passphrase,
// a decrypted vault plaintext) so callers can guarantee it is wiped when
// its scope ends: defer s.Close() immediately after construction.
type Secret struct {
	b []byte
}

// NewSecret takes ownership of b; the caller must not retain or further
// mutate b outside of the returned Secret.
func NewSecret(b []byte) *Secret {
	return &Secret{b: b}
}

// Bytes returns the underlying byte slice. The returned slice aliases the
// Secret's storage and becomes invalid after Close.
func (s *Secret) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// Close zeroes the underlying bytes. Safe to call multiple times and on a
// nil Secret.
func (s *Secret) Close() {
	if s == nil {
		return
	}
	Zero(s.b)
}
