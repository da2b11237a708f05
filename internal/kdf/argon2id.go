// Package kdf wraps Argon2id, the memory-hard passphrase stretcher used both
// to derive the vault's AEAD key and as the per-derivation anchor ahead of
// the HKDF key schedule.
package kdf

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Params bundles the Argon2id cost parameters persisted alongside a vault.
type Params struct {
	TimeCost    uint32
	MemoryKiB   uint32
	Parallelism uint8
}

// DefaultParams matches spec.md §4.3's defaults.
func DefaultParams() Params {
	return Params{TimeCost: 3, MemoryKiB: 131072, Parallelism: 1}
}

// Validate rejects parameters too weak to be worth running.
func (p Params) Validate() error {
	if p.TimeCost == 0 {
		return fmt.Errorf("kdf: time cost must be >= 1")
	}
	if p.MemoryKiB < 8*1024 {
		return fmt.Errorf("kdf: memory cost must be >= 8192 KiB")
	}
	if p.Parallelism == 0 {
		return fmt.Errorf("kdf: parallelism must be >= 1")
	}
	return nil
}

// Hash stretches secret with salt under p, producing a keyLen-byte key.
func Hash(secret, salt []byte, p Params, keyLen uint32) []byte {
	return argon2.IDKey(secret, salt, p.TimeCost, p.MemoryKiB, p.Parallelism, keyLen)
}
