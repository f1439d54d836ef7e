// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"bytes"
	"errors"
	"testing"
)

func TestMarshalRecord_RoundTrip(t *testing.T) {
	in := Record{
		Version:  FormatRegistryVersion,
		Width:    2,
		Height:   2,
		Format:   "RGBA8",
		MipChain: true,
		Data:     bytes.Repeat([]byte{0xFF}, 16),
	}
	data, err := MarshalRecord(in)
	if err != nil {
		t.Fatalf("MarshalRecord() error = %v", err)
	}
	out, err := UnmarshalRecord(data)
	if err != nil {
		t.Fatalf("UnmarshalRecord() error = %v", err)
	}
	if out.Version != in.Version || out.Width != in.Width || out.Height != in.Height ||
		out.Format != in.Format || out.MipChain != in.MipChain || !bytes.Equal(out.Data, in.Data) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMarshalRecord_Deterministic(t *testing.T) {
	r := Record{Version: 1, Width: 1, Height: 1, Format: "R8", Data: []byte{1}}
	a, _ := MarshalRecord(r)
	b, _ := MarshalRecord(r)
	if !bytes.Equal(a, b) {
		t.Error("encoding is not deterministic")
	}
}

func TestMarshalRecord_FormatIsAName(t *testing.T) {
	data, _ := MarshalRecord(Record{Width: 1, Height: 1, Format: "RGBA16F"})
	if !bytes.Contains(data, []byte("RGBA16F")) {
		t.Error("format name not present in encoded record")
	}
}

func TestUnmarshalRecord_Corrupt(t *testing.T) {
	for _, data := range [][]byte{nil, {0xFF}, []byte("not cbor at all")} {
		if _, err := UnmarshalRecord(data); !errors.Is(err, ErrCorruptPayload) {
			t.Errorf("UnmarshalRecord(%q) error = %v, want ErrCorruptPayload", data, err)
		}
	}
}

func TestRecord_Descriptor(t *testing.T) {
	d, err := Record{Width: 3, Height: 4, Format: "R32F", MipChain: true}.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if d.Format() != FormatR32F || !d.MipChain() {
		t.Errorf("Descriptor() = %v", d)
	}
	if _, err := (Record{Width: 3, Height: 4, Format: "??"}).Descriptor(); !errors.Is(err, ErrCorruptPayload) {
		t.Errorf("unknown format error = %v", err)
	}
	if _, err := (Record{Format: "R8"}).Descriptor(); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero size error = %v", err)
	}
}
