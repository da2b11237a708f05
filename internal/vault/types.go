// Package vault implements the vault file's on-disk envelope, the in-memory
// plaintext it decrypts to, and the facade operations (Init, Open, Save,
// AddSite, Rotate, Derive) spec.md §6 names. It is the composition root
// that wires kdf, keyschedule, drbg (via policy), envelope, capsule, siteid
// and secure together.
package vault

import (
	"github.com/sli3en/pwgen/internal/kdf"
	"github.com/sli3en/pwgen/internal/policy"
	"github.com/sli3en/pwgen/internal/siteid"
)

// SchemaVersion is the exact VaultFile.Version tag spec.md §3/§6 mandates.
const SchemaVersion = "pwgen_vault_v1"

// AlgoVersion is the only algorithm version tag this build can derive.
const AlgoVersion = "sha512-v1"

// kdfFile mirrors the on-disk "kdf" object.
type kdfFile struct {
	Alg  string `json:"alg"`
	T    uint32 `json:"t"`
	M    uint32 `json:"m"`
	P    uint8  `json:"p"`
	Salt string `json:"salt"`
}

// aeadFile mirrors the on-disk "aead" object.
type aeadFile struct {
	Alg   string `json:"alg"`
	Nonce string `json:"nonce"`
}

// fileShape is the exact on-disk VaultFile JSON document of spec.md §6.
type fileShape struct {
	Version    string   `json:"version"`
	KDF        kdfFile  `json:"kdf"`
	AEAD       aeadFile `json:"aead"`
	Ciphertext string   `json:"ciphertext"`
	WrittenAt  string   `json:"written_at"`
}

// SiteRecord is one site's derivation parameters and metadata, per
// spec.md §3. The composite vault-plaintext map key is SiteID + "|" + Login.
type SiteRecord struct {
	SiteID  string        `json:"site_id"`
	Login   string        `json:"login"`
	V       string        `json:"v"`
	C       uint64        `json:"c"`
	RSeed   [16]byte      `json:"-"`
	Policy  policy.Policy `json:"policy"`
	Created string        `json:"created"`
	Notes   string        `json:"notes"`
}

// recordShape is SiteRecord's JSON wire shape: RSeed is hex, not the field
// tag Go would otherwise pick.
type recordShape struct {
	SiteID  string        `json:"site_id"`
	Login   string        `json:"login"`
	V       string        `json:"v"`
	C       uint64        `json:"c"`
	RSeed   string        `json:"rseed"`
	Policy  policy.Policy `json:"policy"`
	Created string        `json:"created"`
	Notes   string        `json:"notes"`
}

// Plaintext is the decrypted vault body: spec.md §3's VaultPlaintext.
type Plaintext struct {
	Capsule     [32]byte
	Created     string
	Updated     string
	AlgoVersion string
	SiteIDPolicy siteid.Policy
	Records     map[string]SiteRecord
}

// plaintextShape is Plaintext's on-disk JSON shape.
type plaintextShape struct {
	Capsule      string                 `json:"capsule"`
	Created      string                 `json:"created"`
	Updated      string                 `json:"updated"`
	Algo         struct {
		Version string `json:"version"`
	} `json:"algo"`
	SiteIDPolicy string                 `json:"site_id_policy"`
	Records      map[string]recordShape `json:"records"`
}

// Params bundles the KDF cost parameters chosen at Init and preserved
// across every subsequent Save (spec.md §4.9's "Update" rule).
type Params = kdf.Params
