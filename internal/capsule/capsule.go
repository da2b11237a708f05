// Package capsule generates the one-time, per-vault entropy blob mixed
// into every derivation to domain-separate one vault from another even
// under identical master passphrases, per spec.md §4.10.
package capsule

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/hkdf"
)

const salt = "capsule|sha512-v1"

// Size is the length of a generated capsule, in bytes.
const Size = 32

// Generate produces a fresh 32-byte capsule:
//
//	HKDF-Extract(salt="capsule|sha512-v1",
//	             ikm = osrng(64) || be64(time.Now().UnixNano()) || be32(os.Getpid()) || [sha256(beacon) if provided])
//
// beacon may be empty, in which case it contributes nothing to ikm.
func Generate(beacon string) ([Size]byte, error) {
	var out [Size]byte

	osrng := make([]byte, 64)
	if _, err := rand.Read(osrng); err != nil {
		return out, fmt.Errorf("capsule: read random: %w", err)
	}

	ikm := make([]byte, 0, 64+8+4+sha256.Size)
	ikm = append(ikm, osrng...)

	var nanoBuf [8]byte
	binary.BigEndian.PutUint64(nanoBuf[:], uint64(time.Now().UnixNano()))
	ikm = append(ikm, nanoBuf[:]...)

	var pidBuf [4]byte
	binary.BigEndian.PutUint32(pidBuf[:], uint32(os.Getpid()))
	ikm = append(ikm, pidBuf[:]...)

	if beacon != "" {
		h := sha256.Sum256([]byte(beacon))
		ikm = append(ikm, h[:]...)
	}

	prk := hkdf.Extract(sha512.New, ikm, []byte(salt))
	copy(out[:], prk[:Size])
	return out, nil
}
