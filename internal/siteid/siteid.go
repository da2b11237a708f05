// Package siteid canonicalizes a user-supplied host or URL into a stable
// registrable-domain identifier, in punycode, so that two inputs addressing
// the same site always produce the same derivation key and vault lookup key.
package siteid

import (
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// Policy selects how the registrable domain is reduced. It is chosen once,
// at vault init, and recorded in the vault plaintext so every later
// normalization against that vault stays stable even if a future build's
// embedded Public Suffix List data changes.
type Policy string

const (
	// PolicyPSL reduces to the Public-Suffix-List-derived eTLD+1
	// (golang.org/x/net/publicsuffix), e.g. "example.co.uk".
	PolicyPSL Policy = "psl"
	// PolicyTail2 always joins the last two dot-separated labels,
	// e.g. "example.co.uk" -> "co.uk". This is a pre-existing, acknowledged
	// ambiguity versus PolicyPSL for multi-label public suffixes.
	PolicyTail2 Policy = "tail2"
)

// DefaultPolicy is the policy newly-initialized vaults use.
const DefaultPolicy = PolicyPSL

// Normalize reduces input (a bare host or a "scheme://host/..." URL) to its
// canonical registrable-domain identifier under the given policy.
func Normalize(input string, policy Policy) (string, error) {
	host := extractHost(input)

	ascii, err := idna.ToASCII(host)
	if err == nil {
		host = ascii
	}
	host = strings.ToLower(host)
	host = strings.Trim(host, ".")
	if host == "" {
		return "", nil
	}

	switch policy {
	case PolicyTail2:
		host = tail2(host)
	default:
		if reg, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
			host = reg
		} else {
			host = tail2(host)
		}
	}

	return strings.ToLower(host), nil
}

// extractHost pulls the hostname out of a bare host or a "scheme://host/..."
// URL, without relying on net/url's full parsing (which rejects some inputs
// a password manager should still treat as a plain host).
func extractHost(input string) string {
	s := strings.TrimSpace(input)
	s = strings.ToLower(s)
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
		if at := strings.IndexByte(s, '@'); at >= 0 {
			s = s[at+1:]
		}
		for _, cut := range []byte{'/', '?', '#'} {
			if i := strings.IndexByte(s, cut); i >= 0 {
				s = s[:i]
			}
		}
		if i := strings.LastIndexByte(s, ':'); i >= 0 && !strings.Contains(s[i:], "]") {
			s = s[:i]
		}
		s = strings.Trim(s, "[]")
	}
	return s
}

// tail2 joins the last two dot-separated labels of host. Hosts with fewer
// than two labels are returned verbatim.
func tail2(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}
