// Package primitives holds the small building blocks shared by every other
// pwgen package: the opaque-byte-field codec and canonical timestamp
// formatting. Constant-time secret comparison lives in internal/secure.
package primitives

import "encoding/base64"

// b64 is RFC 4648 §5 (URL-safe) WITH padding. Padding is preserved on
// emission and accepted on parsing, per spec: opaque byte fields in the
// vault JSON are never padding-stripped.
var b64 = base64.URLEncoding

// EncodeBytes renders b as padded base64url text.
func EncodeBytes(b []byte) string {
	return b64.EncodeToString(b)
}

// DecodeBytes parses padded (or unpadded, for leniency reading older files)
// base64url text back into bytes.
func DecodeBytes(s string) ([]byte, error) {
	if b, err := b64.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}
