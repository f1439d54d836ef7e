// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package halgpu implements rtasset.Device on top of the wgpu hardware
// abstraction layer.
//
// A Device either borrows a hal.Device and hal.Queue from a host application
// (NewFromProvider) or opens a standalone adapter (Open). The HAL has no
// global render target binding, so Device tracks the active target itself
// with the same semantics as an immediate-mode API.
//
// Uploads go through queue.WriteTexture. Readbacks copy level 0 into a
// mappable buffer, wait on a fence and strip the 256-byte row padding.
package halgpu

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rtasset"
	"github.com/gogpu/rtasset/staging"
)

// Device errors.
var (
	// ErrNoActiveTarget is returned by ReadPixels when nothing is bound.
	ErrNoActiveTarget = errors.New("halgpu: no active render target")

	// ErrForeignTexture is returned for textures not created by this device.
	ErrForeignTexture = errors.New("halgpu: texture belongs to another device")

	// ErrTextureDestroyed is returned when operating on a destroyed texture.
	ErrTextureDestroyed = errors.New("halgpu: texture has been destroyed")

	// ErrShapeMismatch is returned when a staging image does not match a texture.
	ErrShapeMismatch = errors.New("halgpu: staging image does not match texture")

	// ErrNoProvider is returned when a provider does not expose HAL types.
	ErrNoProvider = errors.New("halgpu: provider does not expose HAL device and queue")

	// ErrBackendUnavailable is returned by Open when the backend is not compiled in.
	ErrBackendUnavailable = errors.New("halgpu: backend not available")

	// ErrReadbackTimeout is returned by ReadPixels when the GPU does not
	// finish the copy in time.
	ErrReadbackTimeout = errors.New("halgpu: readback timed out")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("halgpu: device closed")
)

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// readbackTimeout bounds the fence wait in ReadPixels.
const readbackTimeout = 5 * time.Second

// textureUsage is the usage every surface texture is created with.
var textureUsage = gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageRenderAttachment

// Device is a HAL-backed rtasset.Device. It is not safe for concurrent use.
type Device struct {
	device hal.Device
	queue  hal.Queue

	// instance is set only when the device was opened by this package.
	instance hal.Instance
	owned    bool
	closed   bool

	active *Texture
	live   map[*Texture]struct{}
}

var _ rtasset.Device = (*Device)(nil)

// New wraps an existing HAL device and queue. The caller keeps ownership;
// Close releases only the textures created through this Device.
func New(device hal.Device, queue hal.Queue) *Device {
	return &Device{device: device, queue: queue, live: make(map[*Texture]struct{})}
}

// NewFromProvider borrows the HAL device and queue of a host application.
// The provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoProvider)
	}
	return New(device, queue), nil
}

// Open creates a standalone device on the given backend, preferring a
// discrete or integrated GPU over software adapters. The backend package
// must be linked in, e.g.
//
//	import _ "github.com/gogpu/wgpu/hal/vulkan"
func Open(backend gputypes.Backend) (*Device, error) {
	b, ok := hal.GetBackend(backend)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, backend)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	d, err := openInstance(instance)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	return d, nil
}

func openInstance(instance hal.Instance) (*Device, error) {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, errors.New("halgpu: no GPU adapters found")
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	d := New(openDev.Device, openDev.Queue)
	d.instance = instance
	d.owned = true
	rtasset.Logger().Info("halgpu: device opened", "adapter", selected.Info.Name)
	return d, nil
}

// Close destroys every live texture. If the device was created by Open, the
// HAL device and instance are destroyed too. Close is idempotent.
func (d *Device) Close() {
	if d.closed {
		return
	}
	for t := range d.live {
		d.release(t)
	}
	d.active = nil
	if d.owned {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.closed = true
}

// CreateTexture allocates a 2D texture with every mip level of desc.
func (d *Device) CreateTexture(desc rtasset.Descriptor, label string) (rtasset.Texture, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if desc.IsZero() {
		return nil, fmt.Errorf("halgpu: create texture %q: zero descriptor", label)
	}
	t := &Texture{dev: d, desc: desc, label: label}
	raw, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          t.extent(),
		MipLevelCount: uint32(desc.MipLevelCount()), //nolint:gosec // at most 32 levels
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format().GPUFormat(),
		Usage:         textureUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("halgpu: create texture %q: %w", label, err)
	}
	t.raw = raw
	d.live[t] = struct{}{}
	return t, nil
}

// DestroyTexture releases tex. Foreign and already destroyed textures are
// ignored.
func (d *Device) DestroyTexture(tex rtasset.Texture) {
	t, err := d.own(tex)
	if err != nil {
		rtasset.Logger().Debug("halgpu: ignoring destroy", "error", err)
		return
	}
	d.release(t)
}

func (d *Device) release(t *Texture) {
	if d.active == t {
		d.active = nil
	}
	d.device.DestroyTexture(t.raw)
	t.raw = nil
	t.destroyed = true
	delete(d.live, t)
}

// Clear fills every mip level of tex with c.
func (d *Device) Clear(tex rtasset.Texture, c gputypes.Color) error {
	t, err := d.own(tex)
	if err != nil {
		return err
	}
	for _, w := range clearWrites(t.desc, c) {
		d.write(t, w)
	}
	return nil
}

// levelWrite is one queue.WriteTexture call covering a whole mip level.
type levelWrite struct {
	level       uint32
	size        hal.Extent3D
	bytesPerRow uint32
	data        []byte
}

// clearWrites returns one write per mip level of desc, each filled with c.
func clearWrites(desc rtasset.Descriptor, c gputypes.Color) []levelWrite {
	texel := rtasset.EncodeColor(desc.Format(), c)
	writes := make([]levelWrite, desc.MipLevelCount())
	for i := range writes {
		w, h := max(desc.Width()>>i, 1), max(desc.Height()>>i, 1)
		//nolint:gosec // sizes are bounded by MaxDimension, levels by 32
		writes[i] = levelWrite{
			level:       uint32(i),
			size:        hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
			bytesPerRow: uint32(w * len(texel)),
			data:        bytes.Repeat(texel, w*h),
		}
	}
	return writes
}

// Blit uploads src into level 0 of dst and binds dst.
func (d *Device) Blit(src *staging.Image, dst rtasset.Texture) error {
	t, err := d.own(dst)
	if err != nil {
		return err
	}
	if !matches(t, src) {
		return fmt.Errorf("%w: %dx%d/%d into %s", ErrShapeMismatch,
			src.Width(), src.Height(), src.BytesPerPixel(), t)
	}
	d.active = t
	d.write(t, levelWrite{
		size:        t.extent(),
		bytesPerRow: uint32(t.desc.RowBytes()), //nolint:gosec // bounded by MaxDimension
		data:        src.Data(),
	})
	return nil
}

func (d *Device) write(t *Texture, w levelWrite) {
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.raw, MipLevel: w.level},
		w.data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w.bytesPerRow,
			RowsPerImage: w.size.Height,
		},
		&w.size,
	)
}

// ReadPixels copies level 0 of the active render target into dst.
func (d *Device) ReadPixels(dst *staging.Image) error {
	if d.active == nil {
		return ErrNoActiveTarget
	}
	t := d.active
	if !matches(t, dst) {
		return fmt.Errorf("%w: %s into %dx%d/%d", ErrShapeMismatch,
			t, dst.Width(), dst.Height(), dst.BytesPerPixel())
	}

	size := t.extent()
	bytesPerRow := uint32(t.desc.RowBytes()) //nolint:gosec // bounded by texture width
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	bufSize := uint64(alignedBytesPerRow) * uint64(size.Height)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "rtasset_readback"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rtasset_readback"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rtasset_readback_staging",
		Size:  bufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(buf)

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.raw,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopyDst,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(t.raw, buf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: size.Height},
		TextureBase:  hal.ImageCopyTexture{Texture: t.raw, MipLevel: 0},
		Size:         size,
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := d.device.Wait(fence, 1, readbackTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w after %s", ErrReadbackTimeout, readbackTimeout)
	}

	readback := make([]byte, bufSize)
	if err := d.queue.ReadBuffer(buf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	unpadRows(dst, readback, int(alignedBytesPerRow))
	return nil
}

// unpadRows copies rows of src, laid out with the given pitch, into dst.
func unpadRows(dst *staging.Image, src []byte, pitch int) {
	if pitch == dst.Stride() {
		copy(dst.Data(), src)
		return
	}
	for y := range dst.Height() {
		copy(dst.Row(y), src[y*pitch:y*pitch+dst.Stride()])
	}
}

// ActiveTarget returns the bound render target, or nil.
func (d *Device) ActiveTarget() rtasset.Texture {
	if d.active == nil {
		return nil
	}
	return d.active
}

// SetActiveTarget binds tex. nil, foreign and destroyed textures unbind.
func (d *Device) SetActiveTarget(tex rtasset.Texture) {
	if tex == nil {
		d.active = nil
		return
	}
	t, err := d.own(tex)
	if err != nil {
		rtasset.Logger().Warn("halgpu: cannot bind texture", "error", err)
		d.active = nil
		return
	}
	d.active = t
}

// LiveTextures returns the number of textures not yet destroyed.
func (d *Device) LiveTextures() int { return len(d.live) }

func (d *Device) own(tex rtasset.Texture) (*Texture, error) {
	t, ok := tex.(*Texture)
	if !ok || t == nil || t.dev != d {
		return nil, fmt.Errorf("%w: %v", ErrForeignTexture, tex)
	}
	if t.destroyed {
		return nil, fmt.Errorf("%w: %s", ErrTextureDestroyed, t)
	}
	return t, nil
}

func matches(t *Texture, img *staging.Image) bool {
	return img != nil &&
		img.Width() == t.desc.Width() &&
		img.Height() == t.desc.Height() &&
		img.BytesPerPixel() == t.desc.Format().BytesPerPixel()
}
