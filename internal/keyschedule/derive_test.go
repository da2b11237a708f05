package keyschedule

import (
	"bytes"
	"testing"

	"github.com/sli3en/pwgen/internal/kdf"
)

func fastParams() kdf.Params {
	return kdf.Params{TimeCost: 1, MemoryKiB: 8 * 1024, Parallelism: 1}
}

func TestDeriveIsDeterministic(t *testing.T) {
	ctx := BuildContext("sha512-v1", "example.com", "u@x", []byte(`{"classes":["lower"],"forbid":"","length":8}`), 0, [16]byte{})
	a := Derive([]byte("master"), nil, ctx, fastParams())
	b := Derive([]byte("master"), nil, ctx, fastParams())
	if a.Pwd != b.Pwd || a.Perm != b.Perm {
		t.Fatal("expected identical keys for identical inputs")
	}
}

func TestDeriveCapsuleIsolation(t *testing.T) {
	ctx := BuildContext("sha512-v1", "example.com", "u@x", []byte(`{"classes":["lower"],"forbid":"","length":8}`), 0, [16]byte{})
	a := Derive([]byte("master"), bytes.Repeat([]byte{0x01}, 32), ctx, fastParams())
	b := Derive([]byte("master"), bytes.Repeat([]byte{0x02}, 32), ctx, fastParams())
	if a.Pwd == b.Pwd {
		t.Fatal("expected different Pwd keys for different capsules")
	}
}

func TestDeriveIgnoresShortCapsule(t *testing.T) {
	ctx := BuildContext("sha512-v1", "example.com", "u@x", []byte(`{}`), 0, [16]byte{})
	noCapsule := Derive([]byte("master"), nil, ctx, fastParams())
	shortCapsule := Derive([]byte("master"), []byte("too-short"), ctx, fastParams())
	if noCapsule.Pwd != shortCapsule.Pwd {
		t.Fatal("capsules shorter than 32 bytes must be treated as absent")
	}
}

func TestBuildContextBindsAllFields(t *testing.T) {
	base := BuildContext("sha512-v1", "example.com", "u@x", []byte(`{}`), 0, [16]byte{})
	variants := [][]byte{
		BuildContext("sha512-v2", "example.com", "u@x", []byte(`{}`), 0, [16]byte{}),
		BuildContext("sha512-v1", "other.com", "u@x", []byte(`{}`), 0, [16]byte{}),
		BuildContext("sha512-v1", "example.com", "v@x", []byte(`{}`), 0, [16]byte{}),
		BuildContext("sha512-v1", "example.com", "u@x", []byte(`{"x":1}`), 0, [16]byte{}),
		BuildContext("sha512-v1", "example.com", "u@x", []byte(`{}`), 1, [16]byte{}),
		BuildContext("sha512-v1", "example.com", "u@x", []byte(`{}`), 0, [16]byte{1}),
	}
	for i, v := range variants {
		if bytes.Equal(base, v) {
			t.Fatalf("variant %d should differ from base context", i)
		}
	}
}
