// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assetset

import (
	"github.com/google/uuid"

	"github.com/gogpu/rtasset"
)

// Asset is a surface stored in a Set.
type Asset struct {
	id      uuid.UUID
	path    string
	surface *rtasset.Surface
	dirty   bool

	// stored is set once a record file for the asset exists under the root.
	stored bool
}

// ID returns the stable identity of the asset.
func (a *Asset) ID() uuid.UUID { return a.id }

// Path returns the record file path relative to the set root.
func (a *Asset) Path() string { return a.path }

// Surface returns the underlying surface.
func (a *Asset) Surface() *rtasset.Surface { return a.surface }

// Texture materializes the surface and returns its texture. On failure the
// error is logged and nil is returned.
func (a *Asset) Texture() rtasset.Texture {
	tex, err := a.surface.GetForRead()
	if err != nil {
		rtasset.Logger().Warn("assetset: texture unavailable",
			"id", a.id, "path", a.path, "state", a.surface.State(), "error", err)
		return nil
	}
	return tex
}

// RenderTarget is Texture under the name render code expects.
func (a *Asset) RenderTarget() rtasset.Texture { return a.Texture() }

// MarkDirty schedules the asset for the next Save. Callers mark an asset
// after drawing into its texture.
func (a *Asset) MarkDirty() { a.dirty = true }

// Dirty reports whether the asset has unsaved changes.
func (a *Asset) Dirty() bool { return a.dirty }

func (a *Asset) entry() ManifestEntry {
	desc := a.surface.Descriptor()
	return ManifestEntry{
		ID:       a.id.String(),
		Path:     a.path,
		Width:    desc.Width(),
		Height:   desc.Height(),
		Format:   desc.Format().Name(),
		MipChain: desc.MipChain(),
	}
}
