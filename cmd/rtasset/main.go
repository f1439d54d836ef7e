// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command rtasset creates, lists, exports and verifies render surface asset
// sets.
//
// Usage:
//
//	rtasset create --width 256 --height 256 --format RGBA8 --color 1,0,0,1
//	rtasset clear 0 --color 0,0,1
//	rtasset info
//	rtasset export 0 layer.tiff --thumb 64
//	rtasset verify
//
// Global flags may also come from rtasset.yaml in the working directory or
// from RTASSET_* environment variables (RTASSET_DIR, RTASSET_DEVICE, ...).
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
