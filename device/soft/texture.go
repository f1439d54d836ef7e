// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"fmt"

	"github.com/gogpu/rtasset"
	"github.com/gogpu/rtasset/staging"
)

// Texture is a texture owned by a software Device.
type Texture struct {
	id        uint64
	dev       *Device
	desc      rtasset.Descriptor
	label     string
	levels    [][]byte
	destroyed bool
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.desc.Width() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.desc.Height() }

// Format returns the pixel format.
func (t *Texture) Format() rtasset.PixelFormat { return t.desc.Format() }

// MipLevels returns the number of allocated mip levels.
func (t *Texture) MipLevels() int { return t.desc.MipLevelCount() }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// Destroyed reports whether the texture was destroyed.
func (t *Texture) Destroyed() bool { return t.destroyed }

// Pixels returns the backing bytes of level 0. Writes through the slice
// modify the texture, which is how tests and tools "render" into it.
// Returns nil after the texture is destroyed.
func (t *Texture) Pixels() []byte {
	if t.destroyed {
		return nil
	}
	return t.levels[0]
}

func (t *Texture) matches(img *staging.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrShapeMismatch)
	}
	if img.Width() != t.Width() || img.Height() != t.Height() ||
		img.BytesPerPixel() != t.desc.Format().BytesPerPixel() {
		return fmt.Errorf("%w: image %dx%d@%d, texture %s",
			ErrShapeMismatch, img.Width(), img.Height(), img.BytesPerPixel(), t.desc)
	}
	return nil
}

func (t *Texture) String() string {
	status := "active"
	if t.destroyed {
		status = "destroyed"
	}
	return fmt.Sprintf("soft.Texture[#%d %s %s %s]", t.id, t.label, t.desc, status)
}
