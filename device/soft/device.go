// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package soft implements rtasset.Device entirely in CPU memory.
//
// It behaves like an immediate-mode GPU: textures live in device-owned
// memory, and a single active render target is shared by every caller of
// the device. It is the reference device for tests and tools that run
// without a graphics adapter.
package soft

import (
	"errors"
	"fmt"

	"github.com/gogpu/rtasset"
	"github.com/gogpu/rtasset/staging"
)

// Device errors.
var (
	// ErrNoActiveTarget is returned by ReadPixels when nothing is bound.
	ErrNoActiveTarget = errors.New("soft: no active render target")

	// ErrForeignTexture is returned for textures not created by this device.
	ErrForeignTexture = errors.New("soft: texture belongs to another device")

	// ErrTextureDestroyed is returned when operating on a destroyed texture.
	ErrTextureDestroyed = errors.New("soft: texture has been destroyed")

	// ErrShapeMismatch is returned when a staging image does not match a texture.
	ErrShapeMismatch = errors.New("soft: staging image does not match texture")

	// ErrInvalidDescriptor is returned when creating a texture from a zero descriptor.
	ErrInvalidDescriptor = errors.New("soft: invalid descriptor")
)

// Device is a software rtasset.Device. It is not safe for concurrent use.
type Device struct {
	active      *Texture
	live        map[*Texture]struct{}
	nextID      uint64
	allocations int
}

var _ rtasset.Device = (*Device)(nil)

// New creates an empty software device.
func New() *Device {
	return &Device{live: make(map[*Texture]struct{})}
}

// CreateTexture allocates a zeroed texture with every mip level of desc.
func (d *Device) CreateTexture(desc rtasset.Descriptor, label string) (rtasset.Texture, error) {
	if desc.IsZero() {
		return nil, ErrInvalidDescriptor
	}
	d.nextID++
	t := &Texture{
		id:     d.nextID,
		dev:    d,
		desc:   desc,
		label:  label,
		levels: make([][]byte, desc.MipLevelCount()),
	}
	bpp := desc.Format().BytesPerPixel()
	for i := range t.levels {
		w, h := max(desc.Width()>>i, 1), max(desc.Height()>>i, 1)
		t.levels[i] = make([]byte, w*h*bpp)
	}
	d.live[t] = struct{}{}
	d.allocations++
	return t, nil
}

// DestroyTexture frees tex. Foreign and already destroyed textures are ignored.
func (d *Device) DestroyTexture(tex rtasset.Texture) {
	t, err := d.own(tex)
	if err != nil {
		rtasset.Logger().Debug("soft: ignoring destroy", "error", err)
		return
	}
	if d.active == t {
		d.active = nil
	}
	t.destroyed = true
	t.levels = nil
	delete(d.live, t)
}

// Clear fills every mip level of tex with c.
func (d *Device) Clear(tex rtasset.Texture, c rtasset.Color) error {
	t, err := d.own(tex)
	if err != nil {
		return err
	}
	texel := rtasset.EncodeColor(t.desc.Format(), c)
	for _, lvl := range t.levels {
		for off := 0; off < len(lvl); off += len(texel) {
			copy(lvl[off:], texel)
		}
	}
	return nil
}

// Blit copies src into level 0 of dst and binds dst as the active target.
func (d *Device) Blit(src *staging.Image, dst rtasset.Texture) error {
	t, err := d.own(dst)
	if err != nil {
		return err
	}
	if err := t.matches(src); err != nil {
		return err
	}
	d.active = t
	copy(t.levels[0], src.Data())
	return nil
}

// ReadPixels copies level 0 of the active target into dst.
func (d *Device) ReadPixels(dst *staging.Image) error {
	if d.active == nil {
		return ErrNoActiveTarget
	}
	if err := d.active.matches(dst); err != nil {
		return err
	}
	copy(dst.Data(), d.active.levels[0])
	return nil
}

// ActiveTarget returns the bound render target or nil.
func (d *Device) ActiveTarget() rtasset.Texture {
	if d.active == nil {
		return nil
	}
	return d.active
}

// SetActiveTarget binds tex. nil, foreign or destroyed textures unbind.
func (d *Device) SetActiveTarget(tex rtasset.Texture) {
	if tex == nil {
		d.active = nil
		return
	}
	t, err := d.own(tex)
	if err != nil {
		rtasset.Logger().Warn("soft: cannot bind texture", "error", err)
		d.active = nil
		return
	}
	d.active = t
}

// LiveTextures returns the number of textures not yet destroyed.
func (d *Device) LiveTextures() int { return len(d.live) }

// Allocations returns the total number of textures ever created.
func (d *Device) Allocations() int { return d.allocations }

func (d *Device) own(tex rtasset.Texture) (*Texture, error) {
	t, ok := tex.(*Texture)
	if !ok || t == nil || t.dev != d {
		return nil, fmt.Errorf("%w: %v", ErrForeignTexture, tex)
	}
	if t.destroyed {
		return nil, fmt.Errorf("%w: %s", ErrTextureDestroyed, t.label)
	}
	return t, nil
}
