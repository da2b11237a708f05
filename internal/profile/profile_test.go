package profile

import "testing"

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range Names() {
		p, ok := Lookup(name)
		if !ok {
			t.Fatalf("Names() listed %q but Lookup failed", name)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("preset %q does not validate: %v", name, err)
		}
	}
}

func TestLookupUnknownProfile(t *testing.T) {
	if _, ok := Lookup("does-not-exist"); ok {
		t.Fatal("expected ok=false for unknown profile")
	}
}

func TestLookupReturnsIndependentCopies(t *testing.T) {
	a, _ := Lookup("strict")
	b, _ := Lookup("strict")
	a.Classes[0] = "tampered"
	if b.Classes[0] == "tampered" {
		t.Fatal("Lookup must return independent slices")
	}
}
