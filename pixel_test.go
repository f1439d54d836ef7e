// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"bytes"
	"math"
	"testing"
)

func TestEncodeColor(t *testing.T) {
	tests := []struct {
		name   string
		format PixelFormat
		color  Color
		want   []byte
	}{
		{"rgba8", FormatRGBA8, Color{R: 1, G: 0.5, B: 0, A: 1}, []byte{255, 128, 0, 255}},
		{"rgba8 clamps", FormatRGBA8, Color{R: 2, G: -1, B: math.NaN(), A: 1}, []byte{255, 0, 0, 255}},
		{"bgra8", FormatBGRA8, Color{R: 1, G: 0, B: 0.2, A: 1}, []byte{51, 0, 255, 255}},
		{"rg8", FormatRG8, Color{R: 1, G: 1}, []byte{255, 255}},
		{"r16f half", FormatR16F, Color{R: 0.5}, []byte{0x00, 0x38}},
		{"r32f two", FormatR32F, Color{R: 2}, []byte{0x00, 0x00, 0x00, 0x40}},
		{"invalid", FormatUndefined, Color{R: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeColor(tt.format, tt.color); !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeColor_Inverse(t *testing.T) {
	c := Color{R: 1, G: 0, B: 0.5, A: 0.25}
	for _, f := range []PixelFormat{FormatRGBA16F, FormatRGBA32F} {
		got := DecodeColor(f, EncodeColor(f, c))
		if got != c {
			t.Errorf("%v: DecodeColor(EncodeColor(c)) = %+v, want %+v", f, got, c)
		}
	}

	got := DecodeColor(FormatBGRA8, []byte{0, 0, 255, 255})
	if got.R != 1 || got.B != 0 || got.A != 1 {
		t.Errorf("BGRA8 decode = %+v", got)
	}

	got = DecodeColor(FormatR8, []byte{255})
	if got != (Color{R: 1, A: 1}) {
		t.Errorf("R8 decode = %+v, want opaque red", got)
	}

	if got := DecodeColor(FormatRGBA8, []byte{1}); got != (Color{}) {
		t.Errorf("short texel decode = %+v, want zero", got)
	}
}
