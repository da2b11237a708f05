package keyschedule

import (
	"encoding/hex"
	"strconv"
)

// BuildContext assembles the canonical byte string that binds a derivation
// to every one of its parameters, per spec.md §4.4:
//
//	"pwgen|" v "|" siteID "|" login "|" policyJSON "|c=" c "|r=" hex(rseed)
//
// policyJSON must already be the canonical (sorted-key, no-whitespace) JSON
// encoding of the policy — see internal/policy.CanonicalJSON.
func BuildContext(v, siteID, login string, policyJSON []byte, c uint64, rseed [16]byte) []byte {
	out := make([]byte, 0, len(v)+len(siteID)+len(login)+len(policyJSON)+64)
	out = append(out, "pwgen|"...)
	out = append(out, v...)
	out = append(out, '|')
	out = append(out, siteID...)
	out = append(out, '|')
	out = append(out, login...)
	out = append(out, '|')
	out = append(out, policyJSON...)
	out = append(out, "|c="...)
	out = append(out, strconv.FormatUint(c, 10)...)
	out = append(out, "|r="...)
	out = append(out, hex.EncodeToString(rseed[:])...)
	return out
}
