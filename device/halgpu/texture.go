// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rtasset"
)

// Texture is a HAL texture owned by a Device.
type Texture struct {
	raw       hal.Texture
	dev       *Device
	desc      rtasset.Descriptor
	label     string
	destroyed bool
}

var _ rtasset.Texture = (*Texture)(nil)

// Width returns the level 0 width in pixels.
func (t *Texture) Width() int { return t.desc.Width() }

// Height returns the level 0 height in pixels.
func (t *Texture) Height() int { return t.desc.Height() }

// Format returns the pixel format.
func (t *Texture) Format() rtasset.PixelFormat { return t.desc.Format() }

// MipLevels returns the number of allocated mip levels.
func (t *Texture) MipLevels() int { return t.desc.MipLevelCount() }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// Raw returns the underlying HAL texture, or nil once destroyed.
func (t *Texture) Raw() hal.Texture {
	if t.destroyed {
		return nil
	}
	return t.raw
}

// Destroyed reports whether the texture has been released.
func (t *Texture) Destroyed() bool { return t.destroyed }

func (t *Texture) String() string {
	return fmt.Sprintf("halgpu.Texture[%s %s]", t.label, t.desc)
}

func (t *Texture) extent() hal.Extent3D {
	return hal.Extent3D{
		Width:              uint32(t.desc.Width()),  //nolint:gosec // validated positive by NewDescriptor
		Height:             uint32(t.desc.Height()), //nolint:gosec // validated positive by NewDescriptor
		DepthOrArrayLayers: 1,
	}
}
