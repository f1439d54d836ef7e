// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPixelFormat_Info(t *testing.T) {
	tests := []struct {
		format PixelFormat
		name   string
		bpp    int
		gpu    gputypes.TextureFormat
	}{
		{FormatR8, "R8", 1, gputypes.TextureFormatR8Unorm},
		{FormatRG8, "RG8", 2, gputypes.TextureFormatRG8Unorm},
		{FormatRGBA8, "RGBA8", 4, gputypes.TextureFormatRGBA8Unorm},
		{FormatRGBA8SRGB, "RGBA8_SRGB", 4, gputypes.TextureFormatRGBA8UnormSrgb},
		{FormatBGRA8, "BGRA8", 4, gputypes.TextureFormatBGRA8Unorm},
		{FormatR16F, "R16F", 2, gputypes.TextureFormatR16Float},
		{FormatRGBA16F, "RGBA16F", 8, gputypes.TextureFormatRGBA16Float},
		{FormatR32F, "R32F", 4, gputypes.TextureFormatR32Float},
		{FormatRGBA32F, "RGBA32F", 16, gputypes.TextureFormatRGBA32Float},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.format.IsValid() {
				t.Fatal("IsValid() = false")
			}
			if got := tt.format.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
			if got := tt.format.BytesPerPixel(); got != tt.bpp {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.bpp)
			}
			if got := tt.format.GPUFormat(); got != tt.gpu {
				t.Errorf("GPUFormat() = %v, want %v", got, tt.gpu)
			}
			parsed, err := ParsePixelFormat(tt.name)
			if err != nil || parsed != tt.format {
				t.Errorf("ParsePixelFormat(%q) = %v, %v", tt.name, parsed, err)
			}
		})
	}
}

func TestParsePixelFormat_Legacy(t *testing.T) {
	for name, want := range legacyFormatNames {
		got, err := ParsePixelFormat(name)
		if err != nil || got != want {
			t.Errorf("ParsePixelFormat(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
}

func TestParsePixelFormat_Unknown(t *testing.T) {
	for _, name := range []string{"", "rgba8", "RGB565", "Unknown(3)"} {
		if _, err := ParsePixelFormat(name); !errors.Is(err, ErrCorruptPayload) {
			t.Errorf("ParsePixelFormat(%q) error = %v, want ErrCorruptPayload", name, err)
		}
	}
}

func TestPixelFormat_Invalid(t *testing.T) {
	for _, f := range []PixelFormat{FormatUndefined, formatCount, 200} {
		if f.IsValid() {
			t.Errorf("%d.IsValid() = true", f)
		}
		if f.BytesPerPixel() != 0 || f.Name() != "" {
			t.Errorf("%d: expected zero info", f)
		}
		if f.GPUFormat() != gputypes.TextureFormatUndefined {
			t.Errorf("%d.GPUFormat() = %v", f, f.GPUFormat())
		}
	}
}

func TestFormats(t *testing.T) {
	all := Formats()
	if len(all) != int(formatCount)-1 {
		t.Fatalf("len(Formats()) = %d", len(all))
	}
	seen := make(map[string]bool)
	for _, f := range all {
		if seen[f.Name()] {
			t.Errorf("duplicate name %q", f.Name())
		}
		seen[f.Name()] = true
	}
}
