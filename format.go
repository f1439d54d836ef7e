// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// FormatRegistryVersion is the version of the pixel format name table.
// It is written into every Record so that older names can be mapped forward.
//
// Version history:
//   - 0: engine-style names (R8G8B8A8_UNorm, R32_SFloat, ...)
//   - 1: short stable names (RGBA8, R32F, ...)
const FormatRegistryVersion = 1

// PixelFormat identifies the channel layout and bit depth of a surface.
//
// The numeric value is only meaningful inside a running process. Persisted data
// always refers to a format by its stable name (see Name and ParsePixelFormat).
type PixelFormat uint8

const (
	// FormatUndefined is the zero value and is never a valid surface format.
	FormatUndefined PixelFormat = iota

	// FormatR8 is single-channel 8-bit unsigned normalized.
	FormatR8

	// FormatRG8 is two-channel 8-bit unsigned normalized.
	FormatRG8

	// FormatRGBA8 is four-channel 8-bit unsigned normalized, linear.
	FormatRGBA8

	// FormatRGBA8SRGB is four-channel 8-bit unsigned normalized, sRGB tagged.
	FormatRGBA8SRGB

	// FormatBGRA8 is four-channel 8-bit unsigned normalized in BGRA order.
	FormatBGRA8

	// FormatR16F is single-channel 16-bit float.
	FormatR16F

	// FormatRGBA16F is four-channel 16-bit float.
	FormatRGBA16F

	// FormatR32F is single-channel 32-bit float.
	FormatR32F

	// FormatRGBA32F is four-channel 32-bit float.
	FormatRGBA32F

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Name is the stable persisted name.
	Name string

	// BytesPerPixel is the size of one texel in bytes.
	BytesPerPixel int

	// Channels is the number of color channels.
	Channels int

	// BitsPerChannel is the number of bits per channel.
	BitsPerChannel int

	// Float reports whether channels are stored as IEEE floats.
	Float bool

	// GPU is the matching WebGPU texture format.
	GPU gputypes.TextureFormat
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatR8:        {Name: "R8", BytesPerPixel: 1, Channels: 1, BitsPerChannel: 8, GPU: gputypes.TextureFormatR8Unorm},
	FormatRG8:       {Name: "RG8", BytesPerPixel: 2, Channels: 2, BitsPerChannel: 8, GPU: gputypes.TextureFormatRG8Unorm},
	FormatRGBA8:     {Name: "RGBA8", BytesPerPixel: 4, Channels: 4, BitsPerChannel: 8, GPU: gputypes.TextureFormatRGBA8Unorm},
	FormatRGBA8SRGB: {Name: "RGBA8_SRGB", BytesPerPixel: 4, Channels: 4, BitsPerChannel: 8, GPU: gputypes.TextureFormatRGBA8UnormSrgb},
	FormatBGRA8:     {Name: "BGRA8", BytesPerPixel: 4, Channels: 4, BitsPerChannel: 8, GPU: gputypes.TextureFormatBGRA8Unorm},
	FormatR16F:      {Name: "R16F", BytesPerPixel: 2, Channels: 1, BitsPerChannel: 16, Float: true, GPU: gputypes.TextureFormatR16Float},
	FormatRGBA16F:   {Name: "RGBA16F", BytesPerPixel: 8, Channels: 4, BitsPerChannel: 16, Float: true, GPU: gputypes.TextureFormatRGBA16Float},
	FormatR32F:      {Name: "R32F", BytesPerPixel: 4, Channels: 1, BitsPerChannel: 32, Float: true, GPU: gputypes.TextureFormatR32Float},
	FormatRGBA32F:   {Name: "RGBA32F", BytesPerPixel: 16, Channels: 4, BitsPerChannel: 32, Float: true, GPU: gputypes.TextureFormatRGBA32Float},
}

// legacyFormatNames maps registry version 0 names onto current formats.
var legacyFormatNames = map[string]PixelFormat{
	"R8_UNorm":            FormatR8,
	"R8G8_UNorm":          FormatRG8,
	"R8G8B8A8_UNorm":      FormatRGBA8,
	"R8G8B8A8_SRGB":       FormatRGBA8SRGB,
	"B8G8R8A8_UNorm":      FormatBGRA8,
	"R16_SFloat":          FormatR16F,
	"R16G16B16A16_SFloat": FormatRGBA16F,
	"R32_SFloat":          FormatR32F,
	"R32G32B32A32_SFloat": FormatRGBA32F,
}

var formatsByName = func() map[string]PixelFormat {
	m := make(map[string]PixelFormat, len(formatInfoTable)+len(legacyFormatNames))
	for f := FormatR8; f < formatCount; f++ {
		m[formatInfoTable[f].Name] = f
	}
	for name, f := range legacyFormatNames {
		m[name] = f
	}
	return m
}()

// ParsePixelFormat resolves a persisted format name. Both current names and
// legacy (version 0) names are accepted. Unknown names fail with
// ErrCorruptPayload; there is no silent default.
func ParsePixelFormat(name string) (PixelFormat, error) {
	f, ok := formatsByName[name]
	if !ok {
		return FormatUndefined, fmt.Errorf("%w: unknown pixel format %q", ErrCorruptPayload, name)
	}
	return f, nil
}

// Formats returns every registered format in declaration order.
func Formats() []PixelFormat {
	out := make([]PixelFormat, 0, formatCount-1)
	for f := FormatR8; f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}

// IsValid reports whether f is a registered format.
func (f PixelFormat) IsValid() bool {
	return f > FormatUndefined && f < formatCount
}

// Info returns the metadata for f. Invalid formats return a zero FormatInfo.
func (f PixelFormat) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Name returns the stable persisted name of f.
func (f PixelFormat) Name() string {
	return f.Info().Name
}

// BytesPerPixel returns the number of bytes per pixel for f.
func (f PixelFormat) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// GPUFormat returns the WebGPU texture format for f.
func (f PixelFormat) GPUFormat() gputypes.TextureFormat {
	if !f.IsValid() {
		return gputypes.TextureFormatUndefined
	}
	return formatInfoTable[f].GPU
}

// String returns a human-readable name for the format.
func (f PixelFormat) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Unknown(%d)", uint8(f))
	}
	return formatInfoTable[f].Name
}
