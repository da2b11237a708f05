// Package policy assembles the character alphabet a password is drawn from,
// checks class coverage, and runs the bounded retry loop of spec.md §4.7.
package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sli3en/pwgen/internal/pwgenerr"
)

// ClassKind is a closed enum of the four character classes spec.md §3
// defines, replacing the source's loosely typed class-name strings with a
// tagged variant per spec.md §9's design note.
type ClassKind string

const (
	ClassLower   ClassKind = "lower"
	ClassUpper   ClassKind = "upper"
	ClassDigits  ClassKind = "digits"
	ClassSymbols ClassKind = "symbols"
)

// classChars holds the fixed contents of each class, exactly as spec.md §3
// mandates (symbols is exactly these 28 characters).
var classChars = map[ClassKind]string{
	ClassLower:   "abcdefghijklmnopqrstuvwxyz",
	ClassUpper:   "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	ClassDigits:  "0123456789",
	ClassSymbols: "!#$%&()*+,-./:;<=>?@[]^_{|}~",
}

// ValidClass reports whether k names one of the four fixed classes.
func ValidClass(k ClassKind) bool {
	_, ok := classChars[k]
	return ok
}

// Policy is a site record's length/class/forbid specification.
type Policy struct {
	Length  int
	Classes []ClassKind
	Forbid  []rune
}

// MinLength and MaxLength bound Policy.Length, per spec.md §3.
const (
	MinLength = 4
	MaxLength = 128
)

// Validate enforces spec.md §3's policy invariants: length in range,
// classes non-empty and all recognized, and a non-empty alphabet once
// forbid is applied.
func (p Policy) Validate() error {
	if p.Length < MinLength || p.Length > MaxLength {
		return fmt.Errorf("%w: length %d outside [%d,%d]", pwgenerr.ErrPolicyInvalid, p.Length, MinLength, MaxLength)
	}
	if len(p.Classes) == 0 {
		return fmt.Errorf("%w: no classes selected", pwgenerr.ErrPolicyInvalid)
	}
	for _, c := range p.Classes {
		if !ValidClass(c) {
			return fmt.Errorf("%w: unknown class %q", pwgenerr.ErrPolicyInvalid, c)
		}
	}
	if _, err := p.Alphabet(); err != nil {
		return err
	}
	return nil
}

// Alphabet concatenates the fixed class strings in the order listed
// (duplicates preserved if a character appears in more than one class),
// then removes every character in Forbid. Fails if the result is empty.
func (p Policy) Alphabet() ([]rune, error) {
	forbid := make(map[rune]struct{}, len(p.Forbid))
	for _, r := range p.Forbid {
		forbid[r] = struct{}{}
	}

	var alphabet []rune
	for _, cls := range p.Classes {
		for _, r := range classChars[cls] {
			if _, blocked := forbid[r]; !blocked {
				alphabet = append(alphabet, r)
			}
		}
	}
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet after forbid removal", pwgenerr.ErrPolicyInvalid)
	}
	return alphabet, nil
}

// SatisfiesClasses reports whether password contains at least one character
// from each of p's required classes (checked against the class's full,
// pre-forbid contents, per spec.md §4.7).
func (p Policy) SatisfiesClasses(password string) bool {
	present := make(map[rune]struct{}, len(password))
	for _, r := range password {
		present[r] = struct{}{}
	}
	for _, cls := range p.Classes {
		ok := false
		for _, r := range classChars[cls] {
			if _, found := present[r]; found {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// jsonShape mirrors the on-disk/context JSON object shape:
// {"length":N,"classes":["lower",...],"forbid":"chars"}.
type jsonShape struct {
	Length  int    `json:"length"`
	Classes []string `json:"classes"`
	Forbid  string `json:"forbid"`
}

// MarshalJSON emits Policy in the on-disk shape.
func (p Policy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toShape())
}

// UnmarshalJSON parses Policy from the on-disk shape.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var s jsonShape
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	p.fromShape(s)
	return nil
}

func (p Policy) toShape() jsonShape {
	classes := make([]string, len(p.Classes))
	for i, c := range p.Classes {
		classes[i] = string(c)
	}
	return jsonShape{Length: p.Length, Classes: classes, Forbid: string(p.Forbid)}
}

func (p *Policy) fromShape(s jsonShape) {
	classes := make([]ClassKind, len(s.Classes))
	for i, c := range s.Classes {
		classes[i] = ClassKind(c)
	}
	p.Length = s.Length
	p.Classes = classes
	p.Forbid = []rune(s.Forbid)
}

// CanonicalJSON renders p with object keys sorted ascending and no
// whitespace, for use in the KeySchedule context string (spec.md §4.4).
func (p Policy) CanonicalJSON() []byte {
	s := p.toShape()
	keys := []string{"classes", "forbid", "length"}
	sort.Strings(keys) // already sorted; documents the ordering explicitly

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		switch k {
		case "classes":
			buf.WriteString(`"classes":[`)
			for j, c := range s.Classes {
				if j > 0 {
					buf.WriteByte(',')
				}
				b, _ := json.Marshal(c)
				buf.Write(b)
			}
			buf.WriteByte(']')
		case "forbid":
			b, _ := json.Marshal(s.Forbid)
			buf.WriteString(`"forbid":`)
			buf.Write(b)
		case "length":
			fmt.Fprintf(&buf, `"length":%d`, s.Length)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes()
}
