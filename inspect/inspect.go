// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package inspect converts persisted surfaces into standard images for
// previews and debugging.
package inspect

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/gogpu/rtasset"
)

// ErrEmptyRecord is returned by ToImage for a record without pixel data.
var ErrEmptyRecord = errors.New("inspect: record has no pixel data")

// ToImage decodes level 0 of rec into an image:
//   - R8 becomes *image.Gray.
//   - RGBA8, RGBA8_SRGB and BGRA8 become *image.NRGBA with all four channels.
//   - RG8 becomes *image.NRGBA with blue zero and alpha opaque.
//   - R16F and R32F become *image.NRGBA with green and blue zero and alpha opaque.
//   - RGBA16F and RGBA32F become *image.NRGBA.
//
// Float channels are clamped to [0, 1].
func ToImage(rec rtasset.Record) (image.Image, error) {
	desc, err := rec.Descriptor()
	if err != nil {
		return nil, err
	}
	if len(rec.Data) == 0 {
		return nil, ErrEmptyRecord
	}
	if len(rec.Data) != desc.BytesPerImage() {
		return nil, fmt.Errorf("%w: %d bytes for %s", rtasset.ErrCorruptPayload, len(rec.Data), desc)
	}

	w, h := desc.Width(), desc.Height()
	rect := image.Rect(0, 0, w, h)
	f := desc.Format()

	if f == rtasset.FormatR8 {
		img := image.NewGray(rect)
		copy(img.Pix, rec.Data)
		return img, nil
	}

	img := image.NewNRGBA(rect)
	if f == rtasset.FormatRGBA8 || f == rtasset.FormatRGBA8SRGB {
		copy(img.Pix, rec.Data)
		return img, nil
	}

	bpp := f.BytesPerPixel()
	for i := range w * h {
		c := rtasset.DecodeColor(f, rec.Data[i*bpp:(i+1)*bpp])
		copy(img.Pix[i*4:], rtasset.EncodeColor(rtasset.FormatRGBA8, c))
	}
	return img, nil
}

// Thumbnail scales img so its longer side is at most maxSide, keeping the
// aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}
	tw, th := maxSide, maxSide
	if w >= h {
		th = max(h*maxSide/w, 1)
	} else {
		tw = max(w*maxSide/h, 1)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WriteTIFF encodes img as a deflate-compressed TIFF.
func WriteTIFF(w io.Writer, img image.Image) error {
	if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("inspect: encode tiff: %w", err)
	}
	return nil
}

// Swatch returns the color of the pixel at (x, y) as an NRGBA value, for
// quick checks in tools and tests.
func Swatch(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
