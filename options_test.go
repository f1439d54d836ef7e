// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rtasset/staging"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.label != "surface" {
		t.Errorf("label = %q, want %q", o.label, "surface")
	}
	if o.clearColor != (gputypes.Color{}) {
		t.Errorf("clearColor = %+v, want transparent black", o.clearColor)
	}
	if o.pool != staging.Default() {
		t.Error("pool should default to the shared staging pool")
	}
	if _, ok := o.observer.(nopObserver); !ok {
		t.Errorf("observer = %T, want nopObserver", o.observer)
	}
}

func TestOptions(t *testing.T) {
	pool := staging.NewPool(1)
	var events []Event
	obs := ObserverFunc(func(ev Event, _ Descriptor, _ error) { events = append(events, ev) })

	o := defaultOptions()
	for _, opt := range []Option{
		WithLabel("albedo"),
		WithClearColor(gputypes.Color{G: 1, A: 1}),
		WithStagingPool(pool),
		WithObserver(obs),
	} {
		opt(&o)
	}

	if o.label != "albedo" {
		t.Errorf("label = %q", o.label)
	}
	if o.clearColor != (gputypes.Color{G: 1, A: 1}) {
		t.Errorf("clearColor = %+v", o.clearColor)
	}
	if o.pool != pool {
		t.Error("WithStagingPool not applied")
	}
	o.observer.Observe(EventRelease, Descriptor{}, nil)
	if len(events) != 1 || events[0] != EventRelease {
		t.Errorf("events = %v", events)
	}
}

func TestOptions_ZeroValuesKeepDefaults(t *testing.T) {
	o := defaultOptions()
	WithLabel("")(&o)
	WithStagingPool(nil)(&o)
	WithObserver(nil)(&o)

	if o.label != "surface" {
		t.Errorf("WithLabel(\"\") changed label to %q", o.label)
	}
	if o.pool != staging.Default() {
		t.Error("WithStagingPool(nil) should select the default pool")
	}
	if _, ok := o.observer.(nopObserver); !ok {
		t.Errorf("WithObserver(nil) observer = %T", o.observer)
	}
}

func TestEvent_String(t *testing.T) {
	tests := map[Event]string{
		EventAllocate:     "allocate",
		EventTranscodeIn:  "transcode_in",
		EventTranscodeOut: "transcode_out",
		EventRelease:      "release",
		Event(99):         "unknown",
	}
	for ev, want := range tests {
		if got := ev.String(); got != want {
			t.Errorf("Event(%d).String() = %q, want %q", ev, got, want)
		}
	}
}
