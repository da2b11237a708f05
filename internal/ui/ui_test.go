package ui

import "testing"

func TestStyleDisabled(t *testing.T) {
	SetColorEnabled(false)
	defer SetColorEnabled(true)
	if got := Style("hi", Bold, Red); got != "hi" {
		t.Fatalf("got %q, want unchanged %q", got, "hi")
	}
}

func TestStyleEnabled(t *testing.T) {
	SetColorEnabled(true)
	got := Style("hi", Bold)
	if got == "hi" {
		t.Fatal("expected styled output to differ from plain input")
	}
}

func TestRenderQRProducesNonEmptyOutput(t *testing.T) {
	out, err := RenderQR("example payload")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out == "" {
		t.Fatal("expected non-empty QR render")
	}
}
