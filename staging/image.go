// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package staging provides CPU-addressable images used to move pixel data
// between the CPU and GPU textures.
//
// A staging image only lives for the duration of a single transfer. Images are
// recycled through a Pool so that repeated transfers of same-shaped surfaces do
// not allocate.
package staging

import (
	"errors"
	"fmt"
)

// Common errors for staging operations.
var (
	// ErrInvalidDimensions is returned when width, height or bytes per pixel is non-positive.
	ErrInvalidDimensions = errors.New("staging: invalid dimensions")

	// ErrSizeMismatch is returned when raw data does not match the image size.
	ErrSizeMismatch = errors.New("staging: data size does not match image")

	// ErrReleased is returned when using an image after it was returned to its pool.
	ErrReleased = errors.New("staging: image has been released")
)

// Image is a tightly packed CPU pixel buffer (stride == width*bytesPerPixel).
//
// Image is not safe for concurrent use.
type Image struct {
	data          []byte
	width         int
	height        int
	bytesPerPixel int
	released      bool
}

// NewImage creates a zeroed staging image.
func NewImage(width, height, bytesPerPixel int) (*Image, error) {
	if width <= 0 || height <= 0 || bytesPerPixel <= 0 {
		return nil, fmt.Errorf("%w: %dx%d@%d", ErrInvalidDimensions, width, height, bytesPerPixel)
	}
	return &Image{
		data:          make([]byte, width*height*bytesPerPixel),
		width:         width,
		height:        height,
		bytesPerPixel: bytesPerPixel,
	}, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// BytesPerPixel returns the texel size in bytes.
func (img *Image) BytesPerPixel() int { return img.bytesPerPixel }

// Stride returns the number of bytes per row.
func (img *Image) Stride() int { return img.width * img.bytesPerPixel }

// Len returns the total byte length of the image.
func (img *Image) Len() int { return len(img.data) }

// LoadRaw copies data into the image. The length of data must equal Len exactly;
// the bytes are taken as-is, no conversion is applied.
func (img *Image) LoadRaw(data []byte) error {
	if img.released {
		return ErrReleased
	}
	if len(data) != len(img.data) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), len(img.data))
	}
	copy(img.data, data)
	return nil
}

// Raw returns a copy of the image bytes.
func (img *Image) Raw() []byte {
	out := make([]byte, len(img.data))
	copy(out, img.data)
	return out
}

// Data returns the backing slice. Writes through it modify the image.
func (img *Image) Data() []byte { return img.data }

// Row returns the backing bytes of row y.
func (img *Image) Row(y int) []byte {
	s := img.Stride()
	return img.data[y*s : (y+1)*s]
}

// Clear zeroes every byte.
func (img *Image) Clear() { clear(img.data) }

// Released reports whether the image was returned to its pool.
func (img *Image) Released() bool { return img.released }
