// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"fmt"
)

// State reports which representation of a surface is authoritative.
type State uint8

const (
	// StateUninitialized means no format was declared. Nothing can be read,
	// written or serialized.
	StateUninitialized State = iota

	// StateUnallocated means the descriptor is known but nothing is allocated.
	StateUnallocated

	// StateJustDeserialized means bytes were loaded from storage and have not
	// been uploaded yet.
	StateJustDeserialized

	// StateLive means the GPU texture holds the authoritative content.
	StateLive
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateUnallocated:
		return "Unallocated"
	case StateJustDeserialized:
		return "JustDeserialized"
	case StateLive:
		return "Live"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// surfaceState is a closed sum type: exactly one variant is held at a time,
// and each variant carries only the representation valid in that state.
type surfaceState interface {
	state() State
}

type (
	uninitialized    struct{}
	unallocated      struct{}
	justDeserialized struct{ pending []byte }
	live             struct{ tex Texture }
)

func (uninitialized) state() State    { return StateUninitialized }
func (unallocated) state() State      { return StateUnallocated }
func (justDeserialized) state() State { return StateJustDeserialized }
func (live) state() State             { return StateLive }

// Surface is a GPU render surface that can be persisted to and restored from
// a Record. GPU allocation and CPU/GPU copies are deferred until a caller
// actually reads, writes or serializes the surface.
//
// Lifecycle:
//
//	NewSurface  -> Unallocated      --GetFor*-->  Live
//	FromRecord  -> JustDeserialized --GetFor*-->  Live
//	Live        --Serialize-->      Live (Record produced)
//
// Transitions only move toward Live. Release destroys the texture.
//
// Surface is not safe for concurrent use; a single goroutine (typically the
// UI or render thread) must drive it.
type Surface struct {
	dev  Device
	desc Descriptor
	st   surfaceState
	opts surfaceOptions
}

// NewSurface creates a surface in the Unallocated state. No GPU work happens
// until the first GetForRead or GetForWrite.
func NewSurface(dev Device, desc Descriptor, opts ...Option) (*Surface, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if desc.IsZero() {
		return nil, fmt.Errorf("%w: zero descriptor", ErrInvalidDimensions)
	}
	s := &Surface{dev: dev, desc: desc, st: unallocated{}, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s, nil
}

// FromRecord creates a surface in the JustDeserialized state holding rec.Data
// as pending bytes. Ownership of rec.Data passes to the surface; the caller
// must not modify it afterwards.
//
// A record without positive dimensions yields an Uninitialized surface rather
// than an error. An unknown format name fails with ErrCorruptPayload.
func FromRecord(dev Device, rec Record, opts ...Option) (*Surface, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	s := &Surface{dev: dev, st: uninitialized{}, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&s.opts)
	}

	if rec.Width <= 0 || rec.Height <= 0 {
		Logger().Warn("rtasset: record has no dimensions, surface is uninitialized",
			"label", s.opts.label, "width", rec.Width, "height", rec.Height)
		return s, nil
	}
	if rec.Version > FormatRegistryVersion {
		return nil, fmt.Errorf("%w: record version %d is newer than %d",
			ErrCorruptPayload, rec.Version, FormatRegistryVersion)
	}

	format, err := ParsePixelFormat(rec.Format)
	if err != nil {
		return nil, err
	}
	desc, err := NewDescriptor(rec.Width, rec.Height, format, rec.MipChain)
	if err != nil {
		return nil, err
	}
	s.desc = desc
	s.st = justDeserialized{pending: rec.Data}
	return s, nil
}

// Descriptor returns the surface descriptor. It is the zero Descriptor for an
// Uninitialized surface.
func (s *Surface) Descriptor() Descriptor { return s.desc }

// State returns the current lifecycle state.
func (s *Surface) State() State { return s.st.state() }

// Label returns the debug label.
func (s *Surface) Label() string { return s.opts.label }

// GetForRead materializes the surface if needed and returns its live texture.
func (s *Surface) GetForRead() (Texture, error) {
	return s.materialize()
}

// GetForWrite materializes the surface if needed and returns its live texture.
// It returns the same handle as GetForRead; callers are trusted to respect
// their own read/write intent.
func (s *Surface) GetForWrite() (Texture, error) {
	return s.materialize()
}

func (s *Surface) materialize() (Texture, error) {
	switch st := s.st.(type) {
	case live:
		return st.tex, nil

	case unallocated:
		tex, err := s.allocateDefault()
		if err != nil {
			return nil, err
		}
		s.st = live{tex: tex}
		return tex, nil

	case justDeserialized:
		if len(st.pending) == 0 {
			tex, err := s.allocateDefault()
			if err != nil {
				return nil, err
			}
			s.st = live{tex: tex}
			return tex, nil
		}

		if want := s.desc.BytesPerImage(); len(st.pending) != want {
			err := fmt.Errorf("%w: %d pending bytes for %s, want %d",
				ErrCorruptPayload, len(st.pending), s.desc, want)
			s.opts.observer.Observe(EventTranscodeIn, s.desc, err)
			Logger().Warn("rtasset: deserialize failed", "label", s.opts.label, "desc", s.desc, "error", err)
			return nil, err
		}

		tex, err := s.allocate()
		if err != nil {
			return nil, err
		}
		err = s.transcodeIn(tex, st.pending)
		s.opts.observer.Observe(EventTranscodeIn, s.desc, err)
		if err != nil {
			s.destroy(tex)
			Logger().Warn("rtasset: deserialize failed", "label", s.opts.label, "desc", s.desc, "error", err)
			return nil, err
		}
		// Replacing the variant drops the pending bytes.
		s.st = live{tex: tex}
		Logger().Debug("rtasset: surface materialized from pending bytes", "label", s.opts.label, "desc", s.desc)
		return tex, nil

	case uninitialized:
		return nil, fmt.Errorf("%w: %s surface has no format", ErrNotReady, StateUninitialized)

	default:
		Logger().Error("rtasset: invalid state in materialize", "label", s.opts.label)
		return nil, ErrInvalidState
	}
}

// Serialize reads the live texture back and returns it as a Record. The
// surface stays Live. Serializing before the surface was ever materialized
// fails with ErrNotReady.
//
// Serialize does not persist anything by itself; storage layers call it (or
// Persist) when saving.
func (s *Surface) Serialize() (Record, error) {
	st, ok := s.st.(live)
	if !ok {
		return Record{}, fmt.Errorf("%w: cannot serialize %s surface", ErrNotReady, s.State())
	}
	if st.tex == nil {
		Logger().Error("rtasset: live surface without texture", "label", s.opts.label)
		return Record{}, fmt.Errorf("%w: live surface has no texture", ErrInvalidState)
	}

	data, err := s.transcodeOut(st.tex)
	s.opts.observer.Observe(EventTranscodeOut, s.desc, err)
	if err != nil {
		Logger().Warn("rtasset: serialize failed", "label", s.opts.label, "desc", s.desc, "error", err)
		return Record{}, err
	}
	return s.record(data), nil
}

// Persist returns the Record a storage layer should write for the surface in
// its current state, without forcing a GPU allocation:
//   - Live: the result of Serialize
//   - Unallocated: the descriptor with empty data
//   - JustDeserialized: the descriptor with a copy of the pending bytes
//   - Uninitialized: ErrNotReady
func (s *Surface) Persist() (Record, error) {
	switch st := s.st.(type) {
	case live:
		return s.Serialize()
	case unallocated:
		return s.record(nil), nil
	case justDeserialized:
		var data []byte
		if len(st.pending) > 0 {
			data = make([]byte, len(st.pending))
			copy(data, st.pending)
		}
		return s.record(data), nil
	default:
		return Record{}, fmt.Errorf("%w: cannot persist %s surface", ErrNotReady, s.State())
	}
}

// Clear materializes the surface and fills it with c. Pending bytes, if any,
// are uploaded first and then overwritten.
func (s *Surface) Clear(c Color) error {
	tex, err := s.GetForWrite()
	if err != nil {
		return err
	}
	return s.dev.Clear(tex, c)
}

// Release destroys the live texture, if any, and drops pending bytes. The
// surface becomes Uninitialized. Release is idempotent.
func (s *Surface) Release() {
	if st, ok := s.st.(live); ok && st.tex != nil {
		s.destroy(st.tex)
	}
	s.st = uninitialized{}
}

// String returns a description of the surface for diagnostics.
func (s *Surface) String() string {
	return fmt.Sprintf("Surface[%s %s %s]", s.opts.label, s.desc, s.State())
}

func (s *Surface) record(data []byte) Record {
	return Record{
		Version:  FormatRegistryVersion,
		Width:    s.desc.Width(),
		Height:   s.desc.Height(),
		Format:   s.desc.Format().Name(),
		MipChain: s.desc.MipChain(),
		Data:     data,
	}
}

func (s *Surface) allocate() (Texture, error) {
	tex, err := s.dev.CreateTexture(s.desc, s.opts.label)
	s.opts.observer.Observe(EventAllocate, s.desc, err)
	if err != nil {
		return nil, fmt.Errorf("allocate %s: %w", s.desc, err)
	}
	Logger().Debug("rtasset: texture allocated", "label", s.opts.label, "desc", s.desc)
	return tex, nil
}

// allocateDefault allocates a texture and initializes it to the clear color.
func (s *Surface) allocateDefault() (Texture, error) {
	tex, err := s.allocate()
	if err != nil {
		return nil, err
	}
	if err := s.dev.Clear(tex, s.opts.clearColor); err != nil {
		s.destroy(tex)
		return nil, fmt.Errorf("initialize %s: %w", s.desc, err)
	}
	return tex, nil
}

func (s *Surface) destroy(tex Texture) {
	s.dev.DestroyTexture(tex)
	s.opts.observer.Observe(EventRelease, s.desc, nil)
}
