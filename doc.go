// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rtasset persists GPU render surfaces as serializable assets.
//
// A Surface owns a texture on a Device and moves through a small lifecycle:
// it starts either Unallocated (created from a Descriptor) or JustDeserialized
// (restored from a Record), and becomes Live on first access. GPU allocation
// and the CPU to GPU upload are deferred until a caller asks for the texture,
// so loading many assets from disk costs nothing until they are rendered.
//
// Basic usage:
//
//	dev := soft.New()
//	desc, _ := rtasset.NewDescriptor(256, 256, rtasset.FormatRGBA8, false)
//	s, _ := rtasset.NewSurface(dev, desc, rtasset.WithLabel("lightmap"))
//	_ = s.Clear(rtasset.Color{R: 1, A: 1})
//	rec, _ := s.Serialize()
//	data, _ := rtasset.MarshalRecord(rec)
//
// Restoring:
//
//	rec, _ := rtasset.UnmarshalRecord(data)
//	s, _ := rtasset.FromRecord(dev, rec)
//	tex, _ := s.GetForRead() // upload happens here
//
// Every transcode saves the device's active render target and restores it on
// all exit paths, including failures.
//
// Records name their pixel format by a stable string, so the numeric
// PixelFormat values may be reordered without breaking stored assets.
//
// # Logging
//
// The package is silent by default. Call SetLogger to route diagnostics to an
// slog.Logger.
package rtasset
