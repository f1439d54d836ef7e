// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import "errors"

// Surface errors. Callers match them with errors.Is; returned errors usually
// wrap one of these with additional context.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("rtasset: invalid dimensions")

	// ErrInvalidFormat is returned when a descriptor names an unregistered format.
	ErrInvalidFormat = errors.New("rtasset: invalid pixel format")

	// ErrCorruptPayload is returned when persisted bytes cannot be interpreted:
	// the length does not match the descriptor, the format name is unknown,
	// or the record itself cannot be decoded.
	ErrCorruptPayload = errors.New("rtasset: corrupt payload")

	// ErrNotReady is returned when an operation needs material that has never
	// existed, such as serializing a surface that was never materialized.
	ErrNotReady = errors.New("rtasset: surface not ready")

	// ErrInvalidState indicates a broken internal invariant. It signals a bug,
	// not a data error.
	ErrInvalidState = errors.New("rtasset: invalid surface state")

	// ErrNilDevice is returned when a surface is constructed without a device.
	ErrNilDevice = errors.New("rtasset: device is nil")
)
