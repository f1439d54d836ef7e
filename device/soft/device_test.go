// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/rtasset"
	"github.com/gogpu/rtasset/staging"
)

func mustDesc(t *testing.T, w, h int, f rtasset.PixelFormat, mip bool) rtasset.Descriptor {
	t.Helper()
	d, err := rtasset.NewDescriptor(w, h, f, mip)
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	return d
}

func TestCreateDestroy(t *testing.T) {
	dev := New()
	tex, err := dev.CreateTexture(mustDesc(t, 8, 4, rtasset.FormatRGBA8, true), "t")
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	st := tex.(*Texture)
	if st.MipLevels() != 4 {
		t.Errorf("MipLevels() = %d, want 4", st.MipLevels())
	}
	if len(st.Pixels()) != 8*4*4 {
		t.Errorf("len(Pixels()) = %d, want %d", len(st.Pixels()), 8*4*4)
	}
	if dev.LiveTextures() != 1 || dev.Allocations() != 1 {
		t.Errorf("live=%d allocs=%d, want 1/1", dev.LiveTextures(), dev.Allocations())
	}

	dev.SetActiveTarget(tex)
	dev.DestroyTexture(tex)
	if dev.LiveTextures() != 0 {
		t.Errorf("LiveTextures() = %d after destroy", dev.LiveTextures())
	}
	if dev.ActiveTarget() != nil {
		t.Error("destroying the active target must unbind it")
	}
	if !st.Destroyed() || st.Pixels() != nil {
		t.Error("texture not marked destroyed")
	}

	// Second destroy is a no-op.
	dev.DestroyTexture(tex)
}

func TestCreateTexture_ZeroDescriptor(t *testing.T) {
	if _, err := New().CreateTexture(rtasset.Descriptor{}, "x"); !errors.Is(err, ErrInvalidDescriptor) {
		t.Errorf("error = %v, want ErrInvalidDescriptor", err)
	}
}

func TestClear(t *testing.T) {
	tests := []struct {
		name   string
		format rtasset.PixelFormat
		color  rtasset.Color
		texel  []byte
	}{
		{"rgba8 red", rtasset.FormatRGBA8, rtasset.Color{R: 1, A: 1}, []byte{255, 0, 0, 255}},
		{"bgra8 red", rtasset.FormatBGRA8, rtasset.Color{R: 1, A: 1}, []byte{0, 0, 255, 255}},
		{"r8 half", rtasset.FormatR8, rtasset.Color{R: 0.5}, []byte{128}},
		{"r16f one", rtasset.FormatR16F, rtasset.Color{R: 1}, []byte{0x00, 0x3C}},
		{"r32f one", rtasset.FormatR32F, rtasset.Color{R: 1}, []byte{0x00, 0x00, 0x80, 0x3F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := New()
			tex, _ := dev.CreateTexture(mustDesc(t, 2, 2, tt.format, false), tt.name)
			if err := dev.Clear(tex, tt.color); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			want := bytes.Repeat(tt.texel, 4)
			if got := tex.(*Texture).Pixels(); !bytes.Equal(got, want) {
				t.Errorf("Pixels() = %x, want %x", got, want)
			}
		})
	}
}

func TestBlitBindsAndReadPixels(t *testing.T) {
	dev := New()
	desc := mustDesc(t, 2, 1, rtasset.FormatRGBA8, false)
	tex, _ := dev.CreateTexture(desc, "dst")

	src, _ := staging.NewImage(2, 1, 4)
	_ = src.LoadRaw([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	if err := dev.Blit(src, tex); err != nil {
		t.Fatalf("Blit() error = %v", err)
	}
	if dev.ActiveTarget() != tex {
		t.Error("Blit must bind the destination")
	}

	dst, _ := staging.NewImage(2, 1, 4)
	if err := dev.ReadPixels(dst); err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	if !bytes.Equal(dst.Data(), src.Data()) {
		t.Errorf("ReadPixels() = %v, want %v", dst.Data(), src.Data())
	}
}

func TestReadPixels_NoTarget(t *testing.T) {
	dst, _ := staging.NewImage(1, 1, 4)
	if err := New().ReadPixels(dst); !errors.Is(err, ErrNoActiveTarget) {
		t.Errorf("error = %v, want ErrNoActiveTarget", err)
	}
}

func TestBlit_ShapeMismatch(t *testing.T) {
	dev := New()
	tex, _ := dev.CreateTexture(mustDesc(t, 2, 2, rtasset.FormatRGBA8, false), "dst")
	src, _ := staging.NewImage(2, 2, 1)
	if err := dev.Blit(src, tex); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("error = %v, want ErrShapeMismatch", err)
	}
	if dev.ActiveTarget() != nil {
		t.Error("failed Blit must not change the binding")
	}
}

func TestForeignTexture(t *testing.T) {
	a, b := New(), New()
	tex, _ := a.CreateTexture(mustDesc(t, 1, 1, rtasset.FormatR8, false), "a")

	if err := b.Clear(tex, rtasset.Color{}); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("Clear() error = %v, want ErrForeignTexture", err)
	}
	b.SetActiveTarget(tex)
	if b.ActiveTarget() != nil {
		t.Error("binding a foreign texture must leave the device unbound")
	}
	b.DestroyTexture(tex)
	if a.LiveTextures() != 1 {
		t.Error("foreign destroy must not affect the owner")
	}
}
