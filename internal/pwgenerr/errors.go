// Package pwgenerr defines the typed error taxonomy spec.md §7 requires,
// as sentinel errors usable with errors.Is across every package that needs
// to report one of these kinds. Packages wrap a sentinel with context via
// fmt.Errorf("...: %w", pwgenerr.ErrX) so callers can both read a useful
// message and test for the kind programmatically.
package pwgenerr

import "errors"

var (
	// ErrVaultMissing: the vault file does not exist.
	ErrVaultMissing = errors.New("vault: file not found")
	// ErrVaultFormat: version mismatch or JSON shape invalid.
	ErrVaultFormat = errors.New("vault: invalid format")
	// ErrAuthFailure: AEAD tag invalid (wrong master or tampering). The
	// message must never distinguish between those two causes.
	ErrAuthFailure = errors.New("vault: authentication failed")
	// ErrRecordMissing: composite site/login key not found.
	ErrRecordMissing = errors.New("vault: record not found")
	// ErrRecordExists: add_site called on an existing key.
	ErrRecordExists = errors.New("vault: record already exists")
	// ErrPolicyInvalid: empty alphabet after forbid, length out of range,
	// or an unknown class name.
	ErrPolicyInvalid = errors.New("policy: invalid")
	// ErrAlgoVersionUnsupported: a record's algorithm version tag is not
	// one this build knows how to derive.
	ErrAlgoVersionUnsupported = errors.New("vault: unsupported algorithm version")
	// ErrIOFailure: persistence errors (read/write/rename/chmod).
	ErrIOFailure = errors.New("vault: io failure")
)
