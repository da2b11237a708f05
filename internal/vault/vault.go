package vault

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sli3en/pwgen/internal/capsule"
	"github.com/sli3en/pwgen/internal/envelope"
	"github.com/sli3en/pwgen/internal/kdf"
	"github.com/sli3en/pwgen/internal/keyschedule"
	"github.com/sli3en/pwgen/internal/policy"
	"github.com/sli3en/pwgen/internal/primitives"
	"github.com/sli3en/pwgen/internal/pwgenerr"
	"github.com/sli3en/pwgen/internal/siteid"
)

func siteIDPolicyOrDefault(s string) siteid.Policy {
	if s == "" {
		return siteid.DefaultPolicy
	}
	return siteid.Policy(s)
}

// Key returns the composite map key spec.md §3 defines for a site/login
// pair: site_id + "|" + login.trim().
func Key(siteID, login string) string {
	return siteID + "|" + strings.TrimSpace(login)
}

// Init creates a brand-new vault at path, failing if a file already exists
// there. beacon is optional extra material mixed into the one-time capsule
// (spec.md §4.10); pass "" to omit it.
func Init(path string, master []byte, params kdf.Params, beacon string, idPolicy siteid.Policy) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("vault: %s already exists: %w", path, pwgenerr.ErrRecordExists)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("vault: stat %s: %w", path, pwgenerr.ErrIOFailure)
	}

	if idPolicy == "" {
		idPolicy = siteid.DefaultPolicy
	}

	cap, err := capsule.Generate(beacon)
	if err != nil {
		return fmt.Errorf("vault: generate capsule: %w", err)
	}

	now := primitives.NowISO()
	pt := Plaintext{
		Capsule:      cap,
		Created:      now,
		Updated:      now,
		AlgoVersion:  AlgoVersion,
		SiteIDPolicy: idPolicy,
		Records:      make(map[string]SiteRecord),
	}

	return save(path, master, pt, params)
}

// Open reads, decrypts and parses the vault at path. Any AEAD verification
// failure — wrong master or tampering — surfaces as the single opaque
// ErrAuthFailure, per spec.md §7/§8 scenario 4/5.
func Open(path string, master []byte) (Plaintext, Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Plaintext{}, Params{}, fmt.Errorf("vault: %s: %w", path, pwgenerr.ErrVaultMissing)
		}
		return Plaintext{}, Params{}, fmt.Errorf("vault: read %s: %w", path, pwgenerr.ErrIOFailure)
	}

	var file fileShape
	if err := json.Unmarshal(raw, &file); err != nil {
		return Plaintext{}, Params{}, fmt.Errorf("vault: parse %s: %w", path, pwgenerr.ErrVaultFormat)
	}
	if file.Version != SchemaVersion {
		return Plaintext{}, Params{}, fmt.Errorf("vault: %s: unexpected version %q: %w", path, file.Version, pwgenerr.ErrVaultFormat)
	}
	if file.KDF.Alg != "argon2id" || file.AEAD.Alg != "chacha20poly1305" {
		return Plaintext{}, Params{}, fmt.Errorf("vault: %s: unrecognized algorithm tags: %w", path, pwgenerr.ErrVaultFormat)
	}

	salt, err := primitives.DecodeBytes(file.KDF.Salt)
	if err != nil {
		return Plaintext{}, Params{}, fmt.Errorf("vault: %s: bad kdf salt: %w", path, pwgenerr.ErrVaultFormat)
	}
	nonceBytes, err := primitives.DecodeBytes(file.AEAD.Nonce)
	if err != nil || len(nonceBytes) != envelope.NonceSize {
		return Plaintext{}, Params{}, fmt.Errorf("vault: %s: bad aead nonce: %w", path, pwgenerr.ErrVaultFormat)
	}
	ciphertext, err := primitives.DecodeBytes(file.Ciphertext)
	if err != nil {
		return Plaintext{}, Params{}, fmt.Errorf("vault: %s: bad ciphertext: %w", path, pwgenerr.ErrVaultFormat)
	}

	params := kdf.Params{TimeCost: file.KDF.T, MemoryKiB: file.KDF.M, Parallelism: file.KDF.P}
	var nonce [envelope.NonceSize]byte
	copy(nonce[:], nonceBytes)

	key := kdf.Hash(master, salt, params, 32)
	var key32 [32]byte
	copy(key32[:], key)

	plaintextBytes, err := envelope.Open(key32, nonce, ciphertext)
	if err != nil {
		return Plaintext{}, Params{}, err
	}

	pt, err := unmarshalPlaintext(plaintextBytes)
	if err != nil {
		return Plaintext{}, Params{}, fmt.Errorf("%w: %v", pwgenerr.ErrVaultFormat, err)
	}
	return pt, params, nil
}

// Save re-encrypts pt under master with a fresh salt and nonce, refreshing
// Updated, and atomically replaces path. params are the KDF cost parameters
// chosen at Init; callers must preserve them across saves (spec.md §4.9).
func Save(path string, master []byte, pt Plaintext, params kdf.Params) error {
	pt.Updated = primitives.NowISO()
	return save(path, master, pt, params)
}

func save(path string, master []byte, pt Plaintext, params kdf.Params) error {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("vault: generate salt: %w", pwgenerr.ErrIOFailure)
	}

	key := kdf.Hash(master, salt, params, 32)
	var key32 [32]byte
	copy(key32[:], key)

	plaintextBytes, err := marshalPlaintext(pt)
	if err != nil {
		return fmt.Errorf("vault: encode plaintext: %w", err)
	}

	nonce, ciphertext, err := envelope.Seal(key32, plaintextBytes)
	if err != nil {
		return fmt.Errorf("vault: seal: %w", err)
	}

	file := fileShape{
		Version: SchemaVersion,
		KDF: kdfFile{
			Alg:  "argon2id",
			T:    params.TimeCost,
			M:    params.MemoryKiB,
			P:    params.Parallelism,
			Salt: primitives.EncodeBytes(salt),
		},
		AEAD: aeadFile{
			Alg:   "chacha20poly1305",
			Nonce: primitives.EncodeBytes(nonce[:]),
		},
		Ciphertext: primitives.EncodeBytes(ciphertext),
		WrittenAt:  primitives.NowISO(),
	}

	out, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("vault: encode file: %w", err)
	}

	return atomicWrite(path, out)
}

// atomicWrite writes data to <path>.tmp, fsyncs, renames it over path, and
// best-effort chmods it 0600. A crash before rename leaves path untouched
// (spec.md §8 scenario 6, §4.9).
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("vault: create %s: %w", tmp, pwgenerr.ErrIOFailure)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("vault: write %s: %w", tmp, pwgenerr.ErrIOFailure)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("vault: sync %s: %w", tmp, pwgenerr.ErrIOFailure)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("vault: close %s: %w", tmp, pwgenerr.ErrIOFailure)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("vault: rename %s -> %s: %w", tmp, path, pwgenerr.ErrIOFailure)
	}
	_ = os.Chmod(path, 0600)
	return nil
}

// DrawRSeed fills out with 16 fresh random bytes, the same source Rotate
// uses for RotateRSeed. Callers adding a new record draw their own rseed
// with this before calling AddSite.
func DrawRSeed(out *[16]byte) error {
	if _, err := rand.Read(out[:]); err != nil {
		return fmt.Errorf("vault: draw rseed: %w", pwgenerr.ErrIOFailure)
	}
	return nil
}

// AddSite normalizes site, builds the composite key, and inserts a new
// SiteRecord into pt, failing if the key already exists (spec.md §6).
func AddSite(pt *Plaintext, site, login string, pol policy.Policy, rseed [16]byte) (string, error) {
	if err := pol.Validate(); err != nil {
		return "", err
	}
	siteID, err := siteid.Normalize(site, pt.SiteIDPolicy)
	if err != nil {
		return "", fmt.Errorf("vault: normalize site: %w", err)
	}
	login = strings.TrimSpace(login)
	key := Key(siteID, login)

	if _, exists := pt.Records[key]; exists {
		return "", fmt.Errorf("vault: %s: %w", key, pwgenerr.ErrRecordExists)
	}

	pt.Records[key] = SiteRecord{
		SiteID:  siteID,
		Login:   login,
		V:       AlgoVersion,
		C:       0,
		RSeed:   rseed,
		Policy:  pol,
		Created: primitives.NowISO(),
		Notes:   "",
	}
	return key, nil
}

// RotateMode selects how Rotate advances a record's derivation parameters.
type RotateMode int

const (
	// RotateCounter strictly increases C, leaving RSeed untouched.
	RotateCounter RotateMode = iota
	// RotateRSeed resets C to 0 and draws a fresh 16-byte RSeed.
	RotateRSeed
)

// Rotate mutates the record identified by site/login per mode, per spec.md
// §6/§8's counter-monotonicity property.
func Rotate(pt *Plaintext, site, login string, mode RotateMode) error {
	siteID, err := siteid.Normalize(site, pt.SiteIDPolicy)
	if err != nil {
		return fmt.Errorf("vault: normalize site: %w", err)
	}
	key := Key(siteID, strings.TrimSpace(login))
	rec, ok := pt.Records[key]
	if !ok {
		return fmt.Errorf("vault: %s: %w", key, pwgenerr.ErrRecordMissing)
	}

	switch mode {
	case RotateCounter:
		rec.C++
	case RotateRSeed:
		var seed [16]byte
		if _, err := rand.Read(seed[:]); err != nil {
			return fmt.Errorf("vault: draw rseed: %w", pwgenerr.ErrIOFailure)
		}
		rec.RSeed = seed
		rec.C = 0
	}
	pt.Records[key] = rec
	return nil
}

// Derive runs the full pipeline of spec.md §4.3/§4.4/§4.7 for the record
// identified by siteID/login, returning the password and the counter value
// actually used (which may differ from the record's stored C if the
// bounded retry loop advanced it). The record's stored C is never mutated
// here; callers decide whether to persist a successful bump.
//
// The per-derivation Argon2id anchor always runs with kdf.DefaultParams(),
// per spec.md §4.4 step 3 — independent of the vault's own (possibly
// stronger) KEK-stretching parameters, which only protect the on-disk
// envelope.
func Derive(master []byte, pt Plaintext, siteID, login string) (password string, usedC uint64, ok bool, err error) {
	key := Key(siteID, strings.TrimSpace(login))
	rec, found := pt.Records[key]
	if !found {
		return "", 0, false, fmt.Errorf("vault: %s: %w", key, pwgenerr.ErrRecordMissing)
	}
	if rec.V != AlgoVersion {
		return "", 0, false, fmt.Errorf("vault: %s: record version %q: %w", key, rec.V, pwgenerr.ErrAlgoVersionUnsupported)
	}

	anchorParams := kdf.DefaultParams()
	gen := func(tryC uint64) (string, error) {
		ctx := keyschedule.BuildContext(rec.V, rec.SiteID, rec.Login, rec.Policy.CanonicalJSON(), tryC, rec.RSeed)
		keys := keyschedule.Derive(master, pt.Capsule[:], ctx, anchorParams)
		return rec.Policy.GenerateCandidate(keys.Pwd, keys.Perm)
	}

	return policy.GenerateWithRetry(rec.Policy, rec.C, gen)
}
