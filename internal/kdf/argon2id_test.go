package kdf

import "testing"

func TestHashIsDeterministic(t *testing.T) {
	p := Params{TimeCost: 1, MemoryKiB: 8 * 1024, Parallelism: 1}
	salt := []byte("0123456789abcdef")
	a := Hash([]byte("passphrase"), salt, p, 32)
	b := Hash([]byte("passphrase"), salt, p, 32)
	if string(a) != string(b) {
		t.Fatal("expected identical output for identical inputs")
	}
}

func TestHashDiffersOnSalt(t *testing.T) {
	p := Params{TimeCost: 1, MemoryKiB: 8 * 1024, Parallelism: 1}
	a := Hash([]byte("passphrase"), []byte("salt-one-16bytes"), p, 32)
	b := Hash([]byte("passphrase"), []byte("salt-two-16bytes"), p, 32)
	if string(a) == string(b) {
		t.Fatal("expected different output for different salts")
	}
}

func TestValidateRejectsWeakParams(t *testing.T) {
	if err := (Params{}).Validate(); err == nil {
		t.Fatal("expected error for zero params")
	}
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}
}
