// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package assetset manages an ordered collection of persisted render
// surfaces.
//
// Each Asset pairs an rtasset.Surface with a stable identity and a unique
// file path inside the set root. A Set is saved as one CBOR-encoded record
// per asset plus a manifest.yaml listing identities and descriptors:
//
//	set := assetset.New(afero.NewOsFs(), "textures", dev)
//	i, _ := set.Create(512, 512, rtasset.FormatRGBA8)
//	tex := set.Texture(i)
//	...
//	_ = set.Save()
//
// Loading a set is cheap: surfaces come back JustDeserialized and upload on
// first use.
//
// Texture accessors are lenient. Failures are logged through
// rtasset.Logger and nil is returned, so render loops can skip a broken
// asset without aborting. Use Asset.Surface for typed errors.
//
// A Set is not safe for concurrent use.
package assetset
