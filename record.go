// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Record is the persisted representation of a surface.
//
// Format is the stable pixel format name (see ParsePixelFormat), never a
// numeric code. Data holds level 0 and may be empty for surfaces that were
// never materialized.
type Record struct {
	Version  int    `cbor:"version"`
	Width    int    `cbor:"width"`
	Height   int    `cbor:"height"`
	Format   string `cbor:"format"`
	MipChain bool   `cbor:"mip_chain"`
	Data     []byte `cbor:"data"`
}

// Descriptor validates the shape fields of r and returns them as a Descriptor.
func (r Record) Descriptor() (Descriptor, error) {
	f, err := ParsePixelFormat(r.Format)
	if err != nil {
		return Descriptor{}, err
	}
	return NewDescriptor(r.Width, r.Height, f, r.MipChain)
}

// recordEncMode produces deterministic output so identical surfaces persist
// to identical bytes.
var recordEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("rtasset: cbor enc mode: %v", err))
	}
	return em
}()

// MarshalRecord encodes r as CBOR.
func MarshalRecord(r Record) ([]byte, error) {
	data, err := recordEncMode.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("rtasset: marshal record: %w", err)
	}
	return data, nil
}

// UnmarshalRecord decodes a CBOR record. Malformed input fails with
// ErrCorruptPayload.
func UnmarshalRecord(data []byte) (Record, error) {
	var r Record
	if err := cbor.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrCorruptPayload, err)
	}
	return r, nil
}
