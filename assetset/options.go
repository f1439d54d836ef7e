// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assetset

import "github.com/gogpu/rtasset"

// Option configures a Set.
type Option func(*setOptions)

type setOptions struct {
	baseName    string
	mipChain    bool
	surfaceOpts []rtasset.Option
}

func defaultOptions() setOptions {
	return setOptions{baseName: "Surface"}
}

// WithBaseName sets the file name stem for new assets. The default is
// "Surface", giving "Surface.rtex", "Surface 1.rtex" and so on.
func WithBaseName(name string) Option {
	return func(o *setOptions) {
		if name != "" {
			o.baseName = name
		}
	}
}

// WithMipChain makes Create allocate full mip chains.
func WithMipChain(enabled bool) Option {
	return func(o *setOptions) {
		o.mipChain = enabled
	}
}

// WithSurfaceOptions passes options to every surface the set creates or
// loads. The asset path is always applied as the surface label.
func WithSurfaceOptions(opts ...rtasset.Option) Option {
	return func(o *setOptions) {
		o.surfaceOpts = append(o.surfaceOpts, opts...)
	}
}
