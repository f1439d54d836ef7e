// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend

	"github.com/gogpu/rtasset"
	"github.com/gogpu/rtasset/device/halgpu"
	"github.com/gogpu/rtasset/device/soft"
)

var halBackends = map[string]gputypes.Backend{
	"vulkan": gputypes.BackendVulkan,
}

// openDevice returns the named device and a function releasing it.
func openDevice(name string) (rtasset.Device, func(), error) {
	if name == "" || name == "soft" {
		return soft.New(), func() {}, nil
	}
	backend, ok := halBackends[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown device %q", name)
	}
	dev, err := halgpu.Open(backend)
	if err != nil {
		return nil, nil, err
	}
	return dev, dev.Close, nil
}
