// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// EncodeColor returns the texel bytes of c in format f. Unorm channels are
// clamped to [0, 1] and rounded; float channels are stored little-endian.
// Invalid formats return nil.
func EncodeColor(f PixelFormat, c Color) []byte {
	info := f.Info()
	if info.BytesPerPixel == 0 {
		return nil
	}
	ch := channelOrder(f, c)[:info.Channels]
	out := make([]byte, info.BytesPerPixel)

	switch {
	case !info.Float:
		for i, v := range ch {
			out[i] = unorm8(v)
		}
	case info.BitsPerChannel == 16:
		for i, v := range ch {
			binary.LittleEndian.PutUint16(out[i*2:], float16.Fromfloat32(float32(v)).Bits())
		}
	default:
		for i, v := range ch {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(v)))
		}
	}
	return out
}

// DecodeColor is the inverse of EncodeColor. Missing channels decode as 0 for
// color and 1 for alpha. texel must hold at least one pixel.
func DecodeColor(f PixelFormat, texel []byte) Color {
	info := f.Info()
	if info.BytesPerPixel == 0 || len(texel) < info.BytesPerPixel {
		return Color{}
	}
	ch := [4]float64{0, 0, 0, 1}
	for i := range info.Channels {
		switch {
		case !info.Float:
			ch[i] = float64(texel[i]) / 255
		case info.BitsPerChannel == 16:
			ch[i] = float64(float16.Frombits(binary.LittleEndian.Uint16(texel[i*2:])).Float32())
		default:
			ch[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(texel[i*4:])))
		}
	}
	if f == FormatBGRA8 {
		ch[0], ch[2] = ch[2], ch[0]
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
}

func channelOrder(f PixelFormat, c Color) []float64 {
	if f == FormatBGRA8 {
		return []float64{c.B, c.G, c.R, c.A}
	}
	return []float64{c.R, c.G, c.B, c.A}
}

func unorm8(v float64) byte {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 255
	default:
		return byte(v*255 + 0.5)
	}
}
