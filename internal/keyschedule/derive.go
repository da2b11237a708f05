// Package keyschedule implements the HKDF-over-SHA-512 stage of the
// derivation pipeline: it turns an Argon2id-stretched anchor (and, when
// present, the vault's entropy capsule) into the two domain-separated keys
// the rest of the pipeline consumes.
package keyschedule

import (
	"crypto/sha512"

	"golang.org/x/crypto/hkdf"

	"github.com/sli3en/pwgen/internal/kdf"
)

// minCapsuleLen is the threshold below which a capsule is treated as absent
// (spec.md §4.4 step 4: "If capsule is present and >= 32 bytes").
const minCapsuleLen = 32

// extract32 implements spec.md's truncated HKDF-Extract:
// HMAC-SHA-512(salt, ikm)[:32].
func extract32(salt, ikm []byte) []byte {
	prk := hkdf.Extract(sha512.New, ikm, salt)
	return prk[:32]
}

// expand implements spec.md's single-block HKDF-Expand:
// HMAC-SHA-512(prk, info || 0x01)[:L], L <= 64.
func expand(prk, info []byte, l int) []byte {
	r := hkdf.Expand(sha512.New, prk, info)
	out := make([]byte, l)
	if _, err := r.Read(out); err != nil {
		panic("keyschedule: hkdf expand read failed: " + err.Error())
	}
	return out
}

// Keys holds the two keys a derivation produces: Pwd feeds the password
// byte stream, Perm feeds the alphabet-shuffle stream.
type Keys struct {
	Pwd  [32]byte
	Perm [32]byte
}

// Derive runs the Argon2id-anchor + HKDF pipeline of spec.md §4.4 over
// context (built with BuildContext) and returns the two derivation keys.
// capsule may be nil or shorter than 32 bytes, in which case it is ignored
// per spec.
func Derive(master, capsule, context []byte, params kdf.Params) Keys {
	baseSalt := sha512.Sum512(append([]byte("salt|"), context...))
	prk := kdf.Hash(master, baseSalt[:32], params, 32)

	if len(capsule) >= minCapsuleLen {
		prk = extract32(prk, capsule)
	}

	var keys Keys
	copy(keys.Pwd[:], expand(prk, append([]byte("password|"), context...), 32))
	copy(keys.Perm[:], expand(prk, append([]byte("alphabet|"), context...), 32))
	return keys
}
