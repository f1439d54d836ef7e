// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rtasset/staging"
)

// Option configures a Surface during creation.
//
// Example:
//
//	s, err := rtasset.NewSurface(dev, desc,
//	    rtasset.WithLabel("heightmap"),
//	    rtasset.WithClearColor(gputypes.Color{R: 1, A: 1}),
//	)
type Option func(*surfaceOptions)

type surfaceOptions struct {
	label      string
	clearColor gputypes.Color
	pool       *staging.Pool
	observer   Observer
}

func defaultOptions() surfaceOptions {
	return surfaceOptions{
		label:    "surface",
		pool:     staging.Default(),
		observer: nopObserver{},
	}
}

// WithLabel sets the debug label passed to the device when allocating.
func WithLabel(label string) Option {
	return func(o *surfaceOptions) {
		if label != "" {
			o.label = label
		}
	}
}

// WithClearColor sets the color a freshly allocated texture is initialized to.
// The default is transparent black.
func WithClearColor(c gputypes.Color) Option {
	return func(o *surfaceOptions) {
		o.clearColor = c
	}
}

// WithStagingPool sets the pool staging images are drawn from during
// transcodes. nil selects the shared default pool.
func WithStagingPool(p *staging.Pool) Option {
	return func(o *surfaceOptions) {
		if p == nil {
			p = staging.Default()
		}
		o.pool = p
	}
}

// WithObserver registers an observer for lifecycle events.
func WithObserver(obs Observer) Option {
	return func(o *surfaceOptions) {
		if obs == nil {
			obs = nopObserver{}
		}
		o.observer = obs
	}
}
