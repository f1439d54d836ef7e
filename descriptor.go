// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
)

// MaxDimension is the largest accepted width or height. It matches the
// WebGPU default limit for 2D textures, which keeps BytesPerImage well
// inside int range for every registered format.
var MaxDimension = int(gputypes.DefaultLimits().MaxTextureDimension2D)

// Descriptor is the immutable shape of a surface: its size, pixel format and
// whether a mip chain is declared. Descriptors compare by value.
type Descriptor struct {
	width    int
	height   int
	format   PixelFormat
	mipChain bool
}

// NewDescriptor validates and returns a descriptor. Width and height must
// be in [1, MaxDimension].
func NewDescriptor(width, height int, format PixelFormat, mipChain bool) (Descriptor, error) {
	if width <= 0 || height <= 0 {
		return Descriptor{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return Descriptor{}, fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, width, height, MaxDimension)
	}
	if !format.IsValid() {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidFormat, format)
	}
	return Descriptor{width: width, height: height, format: format, mipChain: mipChain}, nil
}

// Width returns the width in pixels.
func (d Descriptor) Width() int { return d.width }

// Height returns the height in pixels.
func (d Descriptor) Height() int { return d.height }

// Format returns the pixel format.
func (d Descriptor) Format() PixelFormat { return d.format }

// MipChain reports whether a full mip chain is declared.
func (d Descriptor) MipChain() bool { return d.mipChain }

// IsZero reports whether d is the zero descriptor.
func (d Descriptor) IsZero() bool { return d == Descriptor{} }

// RowBytes returns the byte length of one row of level 0.
func (d Descriptor) RowBytes() int { return d.width * d.format.BytesPerPixel() }

// BytesPerImage returns the byte length of level 0.
func (d Descriptor) BytesPerImage() int { return d.RowBytes() * d.height }

// MipLevelCount returns the number of mip levels a texture allocated from d has.
func (d Descriptor) MipLevelCount() int {
	if !d.mipChain {
		return 1
	}
	return bits.Len(uint(max(d.width, d.height)))
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%dx%d %s mip=%t", d.width, d.height, d.format, d.mipChain)
}
