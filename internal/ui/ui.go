// Package ui provides ANSI styling and QR rendering for the CLI, adapted
// from the teacher's terminal-output helpers for the password-derivation
// domain.
package ui

import (
	"strings"

	"rsc.io/qr"
)

// Default: colors enabled. Override via SetColorEnabled.
var colorEnabled = true

// ANSI escape codes.
const (
	Reset  = "\x1b[0m"
	Bold   = "\x1b[1m"
	Blue   = "\x1b[38;2;122;162;247m"
	Cyan   = "\x1b[38;2;42;195;222m"
	Purple = "\x1b[38;2;187;154;247m"
	Gray   = "\x1b[38;2;136;146;176m"
	Red    = "\x1b[38;2;247;118;142m"
)

// SetColorEnabled toggles ANSI styling on or off.
func SetColorEnabled(on bool) {
	colorEnabled = on
}

// ColorEnabled reports whether ANSI styling is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// Style wraps s with the provided ANSI codes when color is enabled. When
// disabled, returns s unchanged.
func Style(s string, codes ...string) string {
	if !colorEnabled {
		return s
	}
	var b strings.Builder
	for _, c := range codes {
		b.WriteString(c)
	}
	b.WriteString(s)
	b.WriteString(Reset)
	return b.String()
}

// Banner returns the styled CLI header.
func Banner(version string) string {
	return Style("pwgen — deterministic site password vault - "+version, Bold, Purple)
}

// RenderQR renders payload as a QR code using half-block Unicode characters,
// two vertical modules per rendered line.
func RenderQR(payload string) (string, error) {
	code, err := qr.Encode(payload, qr.M)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	size := code.Size
	for y := 0; y < size; y += 2 {
		for x := 0; x < size; x++ {
			top := code.Black(x, y)
			bottom := false
			if y+1 < size {
				bottom = code.Black(x, y+1)
			}
			switch {
			case top && bottom:
				out.WriteRune('█')
			case top && !bottom:
				out.WriteRune('▀')
			case !top && bottom:
				out.WriteRune('▄')
			default:
				out.WriteByte(' ')
			}
		}
		out.WriteByte('\n')
	}
	return out.String(), nil
}
