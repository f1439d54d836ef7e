// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rtasset/staging"
)

// Color is a linear RGBA color with channels in [0, 1].
type Color = gputypes.Color

// Texture is a live GPU surface allocated by a Device.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Format returns the pixel format the texture was created with.
	Format() PixelFormat

	// MipLevels returns the number of allocated mip levels.
	MipLevels() int

	// Label returns the debug label.
	Label() string
}

// Device is the set of GPU primitives a Surface depends on.
//
// Devices carry a process-wide "active render target" binding, mirroring
// immediate-mode graphics APIs: Blit rebinds its destination and ReadPixels
// reads whatever is bound. Callers that must not disturb unrelated rendering
// save and restore the binding around these calls.
//
// Devices are not required to be safe for concurrent use.
type Device interface {
	// CreateTexture allocates a texture with the shape of desc. The content is
	// undefined until cleared or written.
	CreateTexture(desc Descriptor, label string) (Texture, error)

	// DestroyTexture releases tex. If tex is the active target the binding is
	// cleared. Destroying a texture twice is a no-op.
	DestroyTexture(tex Texture)

	// Clear fills every mip level of tex with c.
	Clear(tex Texture, c gputypes.Color) error

	// Blit copies src into level 0 of dst and leaves dst bound as the
	// active render target.
	Blit(src *staging.Image, dst Texture) error

	// ReadPixels copies level 0 of the active render target into dst.
	ReadPixels(dst *staging.Image) error

	// ActiveTarget returns the currently bound render target, or nil.
	ActiveTarget() Texture

	// SetActiveTarget binds tex as the active render target. nil unbinds.
	SetActiveTarget(tex Texture)
}

// bindGuard captures the active render target of dev and returns a function
// restoring it. Use as:
//
//	defer bindGuard(dev)()
func bindGuard(dev Device) func() {
	prev := dev.ActiveTarget()
	return func() {
		dev.SetActiveTarget(prev)
	}
}
