// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assetset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/gogpu/rtasset"
)

// Set errors.
var (
	// ErrIndexOutOfRange is returned for an asset index outside [0, Count).
	ErrIndexOutOfRange = errors.New("assetset: index out of range")

	// ErrBadManifest is returned when manifest.yaml cannot be decoded.
	ErrBadManifest = errors.New("assetset: invalid manifest")

	// ErrManifestMismatch is returned when a record disagrees with its
	// manifest entry.
	ErrManifestMismatch = errors.New("assetset: record does not match manifest")
)

// RecordExt is the file extension of asset records.
const RecordExt = ".rtex"

// Set is an ordered collection of assets rooted at a directory of fs.
type Set struct {
	fs     afero.Fs
	root   string
	dev    rtasset.Device
	opts   setOptions
	assets []*Asset
}

// New creates an empty set. Nothing is written until Save.
func New(fs afero.Fs, root string, dev rtasset.Device, opts ...Option) *Set {
	s := &Set{fs: fs, root: root, dev: dev, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Load reads the manifest under root and restores every asset it lists.
// Surfaces are restored JustDeserialized; no GPU work happens here.
func Load(fs afero.Fs, root string, dev rtasset.Device, opts ...Option) (*Set, error) {
	s := New(fs, root, dev, opts...)

	data, err := afero.ReadFile(fs, filepath.Join(root, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("assetset: read manifest: %w", err)
	}
	m, err := decodeManifest(data)
	if err != nil {
		return nil, err
	}

	for _, e := range m.Assets {
		a, err := s.loadAsset(e)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("assetset: load %s: %w", e.Path, err)
		}
		s.assets = append(s.assets, a)
	}
	rtasset.Logger().Debug("assetset: loaded", "root", root, "assets", len(s.assets))
	return s, nil
}

func (s *Set) loadAsset(e ManifestEntry) (*Asset, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %q: %w", ErrBadManifest, e.ID, err)
	}
	data, err := afero.ReadFile(s.fs, filepath.Join(s.root, e.Path))
	if err != nil {
		return nil, err
	}
	rec, err := rtasset.UnmarshalRecord(data)
	if err != nil {
		return nil, err
	}
	if rec.Width != e.Width || rec.Height != e.Height || rec.MipChain != e.MipChain {
		return nil, fmt.Errorf("%w: record %dx%d mip=%t, manifest %dx%d mip=%t", ErrManifestMismatch,
			rec.Width, rec.Height, rec.MipChain, e.Width, e.Height, e.MipChain)
	}
	if err := sameFormat(rec.Format, e.Format); err != nil {
		return nil, err
	}
	surface, err := rtasset.FromRecord(s.dev, rec, s.surfaceOptions(e.Path)...)
	if err != nil {
		return nil, err
	}
	return &Asset{id: id, path: e.Path, surface: surface, stored: true}, nil
}

// sameFormat compares a record format with its manifest entry after
// resolving legacy aliases.
func sameFormat(recName, entryName string) error {
	recFormat, err := rtasset.ParsePixelFormat(recName)
	if err != nil {
		return err
	}
	entryFormat, err := rtasset.ParsePixelFormat(entryName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadManifest, err)
	}
	if recFormat != entryFormat {
		return fmt.Errorf("%w: record format %s, manifest %s", ErrManifestMismatch, recFormat, entryFormat)
	}
	return nil
}

// Create adds a new asset with a fresh identity and a unique path, and
// allocates its texture immediately. The asset starts dirty. It returns the
// index of the new asset.
func (s *Set) Create(width, height int, format rtasset.PixelFormat) (int, error) {
	desc, err := rtasset.NewDescriptor(width, height, format, s.opts.mipChain)
	if err != nil {
		return -1, err
	}
	path, err := s.uniquePath()
	if err != nil {
		return -1, err
	}
	surface, err := rtasset.NewSurface(s.dev, desc, s.surfaceOptions(path)...)
	if err != nil {
		return -1, err
	}
	if _, err := surface.GetForWrite(); err != nil {
		surface.Release()
		return -1, fmt.Errorf("assetset: create %s: %w", path, err)
	}

	a := &Asset{id: uuid.New(), path: path, surface: surface, dirty: true}
	s.assets = append(s.assets, a)
	rtasset.Logger().Debug("assetset: created", "id", a.id, "path", path, "desc", desc)
	return len(s.assets) - 1, nil
}

// uniquePath returns the first of "Base.rtex", "Base 1.rtex", "Base 2.rtex"
// ... used neither by an asset of the set nor by a file under root.
func (s *Set) uniquePath() (string, error) {
	taken := make(map[string]bool, len(s.assets))
	for _, a := range s.assets {
		taken[a.path] = true
	}
	for n := 0; ; n++ {
		name := s.opts.baseName
		if n > 0 {
			name += " " + strconv.Itoa(n)
		}
		name += RecordExt
		if taken[name] {
			continue
		}
		exists, err := afero.Exists(s.fs, filepath.Join(s.root, name))
		if err != nil {
			return "", fmt.Errorf("assetset: stat %s: %w", name, err)
		}
		if !exists {
			return name, nil
		}
	}
}

func (s *Set) surfaceOptions(path string) []rtasset.Option {
	opts := make([]rtasset.Option, 0, len(s.opts.surfaceOpts)+1)
	opts = append(opts, s.opts.surfaceOpts...)
	return append(opts, rtasset.WithLabel(path))
}

// Count returns the number of assets.
func (s *Set) Count() int { return len(s.assets) }

// Asset returns the asset at index i.
func (s *Set) Asset(i int) (*Asset, error) {
	if i < 0 || i >= len(s.assets) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.assets))
	}
	return s.assets[i], nil
}

// Texture returns the texture of the asset at index i, or nil if the index
// is invalid or the surface cannot be materialized.
func (s *Set) Texture(i int) rtasset.Texture {
	a, err := s.Asset(i)
	if err != nil {
		rtasset.Logger().Warn("assetset: texture unavailable", "index", i, "error", err)
		return nil
	}
	return a.Texture()
}

// Save writes a record for every dirty asset and rewrites the manifest.
// Assets that fail to persist stay dirty; their errors are joined into the
// returned error and the manifest is still written. The manifest lists only
// assets whose record file exists, so a failed first save never makes the
// set unloadable.
func (s *Set) Save() error {
	if err := s.fs.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("assetset: create root: %w", err)
	}

	var errs []error
	for _, a := range s.assets {
		if !a.dirty {
			continue
		}
		if err := s.saveAsset(a); err != nil {
			errs = append(errs, fmt.Errorf("assetset: save %s: %w", a.path, err))
			continue
		}
		a.dirty = false
		a.stored = true
	}

	m := Manifest{Version: ManifestVersion, Assets: make([]ManifestEntry, 0, len(s.assets))}
	for _, a := range s.assets {
		if a.stored {
			m.Assets = append(m.Assets, a.entry())
		}
	}
	data, err := encodeManifest(m)
	if err == nil {
		err = afero.WriteFile(s.fs, filepath.Join(s.root, ManifestName), data, 0o644)
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("assetset: write manifest: %w", err))
	}
	return errors.Join(errs...)
}

func (s *Set) saveAsset(a *Asset) error {
	rec, err := a.surface.Persist()
	if err != nil {
		return err
	}
	data, err := rtasset.MarshalRecord(rec)
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, filepath.Join(s.root, a.path), data, 0o644)
}

// Close releases every surface. The set must not be used afterwards.
func (s *Set) Close() {
	for _, a := range s.assets {
		a.surface.Release()
	}
}
