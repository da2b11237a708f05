package siteid

import "testing"

func TestNormalizeURLAndHostAgree(t *testing.T) {
	a, err := Normalize("https://Login.Example.com:443/path", PolicyPSL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Normalize("A.Example.COM", PolicyPSL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != "example.com" {
		t.Fatalf("got %q want %q", a, "example.com")
	}
	if a != b {
		t.Fatalf("normalize(url) = %q != normalize(host) = %q", a, b)
	}
}

func TestNormalizeIDN(t *testing.T) {
	got, err := Normalize("müller.de", PolicyPSL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "xn--mller-kva.de"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"https://a.example.com/x",
		"müller.de",
		"plain-host.io",
		"co.uk",
	}
	for _, in := range inputs {
		first, err := Normalize(in, PolicyPSL)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		second, err := Normalize(first, PolicyPSL)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", first, err)
		}
		if first != second {
			t.Fatalf("not idempotent: normalize(%q)=%q normalize(that)=%q", in, first, second)
		}
	}
}

func TestTail2PolicyDivergesFromPSLForMultiLabelSuffix(t *testing.T) {
	psl, err := Normalize("example.co.uk", PolicyPSL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tail2, err := Normalize("example.co.uk", PolicyTail2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if psl != "example.co.uk" {
		t.Fatalf("psl policy got %q want %q", psl, "example.co.uk")
	}
	if tail2 != "co.uk" {
		t.Fatalf("tail2 policy got %q want %q", tail2, "co.uk")
	}
}

func TestNormalizeShortHostReturnedVerbatim(t *testing.T) {
	got, err := Normalize("localhost", PolicyPSL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "localhost" {
		t.Fatalf("got %q want %q", got, "localhost")
	}
}
