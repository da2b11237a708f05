// Package profile holds named policy presets. These are not part of
// spec.md's data model; they are carried over from
// original_source/pwgen.py's PROFILES table, which the distillation into
// spec.md dropped. The CLI's "add --profile" flag selects one of these in
// place of spelling out --length/--classes/--forbid by hand.
package profile

import "github.com/sli3en/pwgen/internal/policy"

// quoteSpaceBacktick is the forbid set every preset but "pin" uses, matching
// the original's default: double-quote, single-quote, backtick, space —
// characters that commonly break shell quoting or copy/paste into a form
// field.
var quoteSpaceBacktick = []rune{'"', '\'', '`', ' '}

// Presets maps a profile name to its policy.
var Presets = map[string]policy.Policy{
	"strict": {
		Length:  24,
		Classes: []policy.ClassKind{policy.ClassLower, policy.ClassUpper, policy.ClassDigits, policy.ClassSymbols},
		Forbid:  quoteSpaceBacktick,
	},
	"legacy": {
		Length:  16,
		Classes: []policy.ClassKind{policy.ClassLower, policy.ClassUpper, policy.ClassDigits},
		Forbid:  quoteSpaceBacktick,
	},
	"pin": {
		Length:  10,
		Classes: []policy.ClassKind{policy.ClassDigits},
		Forbid:  nil,
	},
	// "hard" targets practical post-quantum margin (roughly >=128 bits of
	// search space remaining after a Grover speedup estimate).
	"hard": {
		Length:  40,
		Classes: []policy.ClassKind{policy.ClassLower, policy.ClassUpper, policy.ClassDigits, policy.ClassSymbols},
		Forbid:  quoteSpaceBacktick,
	},
	"ultra": {
		Length:  64,
		Classes: []policy.ClassKind{policy.ClassLower, policy.ClassUpper, policy.ClassDigits, policy.ClassSymbols},
		Forbid:  quoteSpaceBacktick,
	},
}

// Names lists the known profile names in a stable display order.
func Names() []string {
	return []string{"strict", "legacy", "pin", "hard", "ultra"}
}

// Lookup returns a copy of the named preset's policy.
func Lookup(name string) (policy.Policy, bool) {
	p, ok := Presets[name]
	if !ok {
		return policy.Policy{}, false
	}
	classes := append([]policy.ClassKind(nil), p.Classes...)
	forbid := append([]rune(nil), p.Forbid...)
	return policy.Policy{Length: p.Length, Classes: classes, Forbid: forbid}, true
}
