package policy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sli3en/pwgen/internal/pwgenerr"
)

func strictPolicy() Policy {
	return Policy{
		Length:  24,
		Classes: []ClassKind{ClassLower, ClassUpper, ClassDigits, ClassSymbols},
		Forbid:  []rune{'"', '\'', '`', ' '},
	}
}

func TestValidateAcceptsStrictPolicy(t *testing.T) {
	if err := strictPolicy().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsLengthOutOfRange(t *testing.T) {
	p := strictPolicy()
	p.Length = 3
	if err := p.Validate(); !errors.Is(err, pwgenerr.ErrPolicyInvalid) {
		t.Fatalf("expected ErrPolicyInvalid, got %v", err)
	}
}

func TestValidateRejectsEmptyClasses(t *testing.T) {
	p := Policy{Length: 10, Classes: nil}
	if err := p.Validate(); !errors.Is(err, pwgenerr.ErrPolicyInvalid) {
		t.Fatalf("expected ErrPolicyInvalid, got %v", err)
	}
}

func TestValidateRejectsUnknownClass(t *testing.T) {
	p := Policy{Length: 10, Classes: []ClassKind{"made-up"}}
	if err := p.Validate(); !errors.Is(err, pwgenerr.ErrPolicyInvalid) {
		t.Fatalf("expected ErrPolicyInvalid, got %v", err)
	}
}

func TestAlphabetEmptyAfterForbidFails(t *testing.T) {
	p := Policy{Length: 10, Classes: []ClassKind{ClassDigits}, Forbid: []rune("0123456789")}
	if _, err := p.Alphabet(); !errors.Is(err, pwgenerr.ErrPolicyInvalid) {
		t.Fatalf("expected ErrPolicyInvalid, got %v", err)
	}
}

func TestSatisfiesClasses(t *testing.T) {
	p := strictPolicy()
	if !p.SatisfiesClasses("aA1!bB2@cC3#dD4$eE5%fF6^") {
		t.Fatal("expected coverage satisfied")
	}
	if p.SatisfiesClasses("aaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Fatal("expected coverage not satisfied with only lowercase")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p := strictPolicy()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Policy
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Length != p.Length || len(got.Classes) != len(p.Classes) || string(got.Forbid) != string(p.Forbid) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, p)
	}
}

func TestCanonicalJSONHasSortedKeysNoWhitespace(t *testing.T) {
	p := Policy{Length: 8, Classes: []ClassKind{ClassLower, ClassDigits}, Forbid: []rune{' '}}
	got := string(p.CanonicalJSON())
	want := `{"classes":["lower","digits"],"forbid":" ","length":8}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestGenerateCandidateLengthAndDeterminism(t *testing.T) {
	p := strictPolicy()
	kpwd := [32]byte{1, 2, 3}
	kperm := [32]byte{4, 5, 6}
	a, err := p.GenerateCandidate(kpwd, kperm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != p.Length {
		t.Fatalf("got length %d want %d", len(a), p.Length)
	}
	b, err := p.GenerateCandidate(kpwd, kperm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("expected deterministic output, got %q and %q", a, b)
	}
	for _, forbidden := range []rune{'"', '\'', '`', ' '} {
		for _, r := range a {
			if r == forbidden {
				t.Fatalf("password %q contains forbidden rune %q", a, forbidden)
			}
		}
	}
}

func TestGenerateWithRetryAcceptsFirstValidCandidate(t *testing.T) {
	p := Policy{Length: 4, Classes: []ClassKind{ClassDigits}}
	calls := 0
	pwd, usedC, ok, err := GenerateWithRetry(p, 5, func(tryC uint64) (string, error) {
		calls++
		return "1234", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if pwd != "1234" {
		t.Fatalf("got %q", pwd)
	}
	if usedC != 5 {
		t.Fatalf("got usedC=%d want 5", usedC)
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 call, got %d", calls)
	}
}

func TestGenerateWithRetryExhaustsAndReturnsLast(t *testing.T) {
	p := Policy{Length: 4, Classes: []ClassKind{ClassUpper}}
	calls := 0
	pwd, usedC, ok, err := GenerateWithRetry(p, 0, func(tryC uint64) (string, error) {
		calls++
		return "1234", nil // never satisfies ClassUpper
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false")
	}
	if pwd != "1234" {
		t.Fatalf("got %q", pwd)
	}
	if usedC != MaxTries-1 {
		t.Fatalf("got usedC=%d want %d", usedC, MaxTries-1)
	}
	if calls != MaxTries {
		t.Fatalf("expected %d calls, got %d", MaxTries, calls)
	}
}

func TestGenerateWithRetryDoesNotMutateStoredCounter(t *testing.T) {
	storedC := uint64(100)
	p := Policy{Length: 4, Classes: []ClassKind{ClassDigits}}
	_, usedC, _, err := GenerateWithRetry(p, storedC, func(tryC uint64) (string, error) {
		return "0000", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storedC != 100 {
		t.Fatal("storedC must remain unchanged")
	}
	if usedC != storedC {
		t.Fatalf("expected first attempt to succeed with usedC == storedC, got %d", usedC)
	}
}
