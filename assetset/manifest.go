// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assetset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file name of the set manifest inside the root.
const ManifestName = "manifest.yaml"

// ManifestVersion is the current manifest schema version.
const ManifestVersion = 1

// Manifest lists every asset of a set in order.
type Manifest struct {
	Version int             `yaml:"version"`
	Assets  []ManifestEntry `yaml:"assets"`
}

// ManifestEntry describes one asset. The descriptor fields duplicate the
// record header so a set can be listed without decoding pixel data.
type ManifestEntry struct {
	ID       string `yaml:"id"`
	Path     string `yaml:"path"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Format   string `yaml:"format"`
	MipChain bool   `yaml:"mip_chain,omitempty"`
}

func encodeManifest(m Manifest) ([]byte, error) {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return nil, fmt.Errorf("assetset: encode manifest: %w", err)
	}
	return data, nil
}

func decodeManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %w", ErrBadManifest, err)
	}
	if m.Version > ManifestVersion {
		return Manifest{}, fmt.Errorf("%w: version %d is newer than %d", ErrBadManifest, m.Version, ManifestVersion)
	}
	return m, nil
}
