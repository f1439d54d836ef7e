// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package inspect

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/gogpu/rtasset"
)

func TestToImage(t *testing.T) {
	f32 := func(vals ...float32) []byte {
		out := make([]byte, 0, len(vals)*4)
		for _, v := range vals {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
		return out
	}

	tests := []struct {
		name   string
		format string
		data   []byte
		want   color.NRGBA
	}{
		{"rgba8", "RGBA8", []byte{10, 20, 30, 40}, color.NRGBA{10, 20, 30, 40}},
		{"srgb", "RGBA8_SRGB", []byte{1, 2, 3, 4}, color.NRGBA{1, 2, 3, 4}},
		{"bgra8", "BGRA8", []byte{30, 20, 10, 255}, color.NRGBA{10, 20, 30, 255}},
		{"rg8", "RG8", []byte{255, 128}, color.NRGBA{255, 128, 0, 255}},
		{"r8", "R8", []byte{77}, color.NRGBA{77, 77, 77, 255}},
		{"r32f", "R32F", f32(0.5), color.NRGBA{128, 0, 0, 255}},
		{"rgba32f clamps", "RGBA32F", f32(2, 0.5, -1, 1), color.NRGBA{255, 128, 0, 255}},
		{"legacy name", "R8G8B8A8_UNorm", []byte{5, 6, 7, 8}, color.NRGBA{5, 6, 7, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ToImage(rtasset.Record{Version: 1, Width: 1, Height: 1, Format: tt.format, Data: tt.data})
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
			assert.Equal(t, tt.want, Swatch(img, 0, 0))
		})
	}
}

func TestToImage_Errors(t *testing.T) {
	_, err := ToImage(rtasset.Record{Width: 1, Height: 1, Format: "RGBA8"})
	require.ErrorIs(t, err, ErrEmptyRecord)

	_, err = ToImage(rtasset.Record{Width: 2, Height: 2, Format: "RGBA8", Data: []byte{1}})
	require.ErrorIs(t, err, rtasset.ErrCorruptPayload)

	_, err = ToImage(rtasset.Record{Width: 1, Height: 1, Format: "nope", Data: []byte{1}})
	require.ErrorIs(t, err, rtasset.ErrCorruptPayload)
}

func TestThumbnail(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for i := range src.Pix {
		src.Pix[i] = 255
	}

	thumb := Thumbnail(src, 50)
	assert.Equal(t, image.Rect(0, 0, 50, 25), thumb.Bounds())
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, Swatch(thumb, 10, 10))

	tall := Thumbnail(image.NewGray(image.Rect(0, 0, 10, 400)), 40)
	assert.Equal(t, image.Rect(0, 0, 1, 40), tall.Bounds())

	assert.Same(t, src, Thumbnail(src, 500), "small images are returned unchanged")
	assert.Same(t, src, Thumbnail(src, 0))
}

func TestWriteTIFF(t *testing.T) {
	img, err := ToImage(rtasset.Record{
		Version: 1, Width: 2, Height: 1, Format: "RGBA8",
		Data: []byte{255, 0, 0, 255, 0, 0, 255, 255},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTIFF(&buf, img))

	decoded, err := tiff.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, Swatch(decoded, 0, 0))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, Swatch(decoded, 1, 0))
}
