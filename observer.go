// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

// Event identifies a surface lifecycle event reported to an Observer.
type Event uint8

const (
	// EventAllocate is reported after a texture was allocated.
	EventAllocate Event = iota

	// EventTranscodeIn is reported after pending bytes were uploaded (or failed to).
	EventTranscodeIn

	// EventTranscodeOut is reported after a serialize readback (or its failure).
	EventTranscodeOut

	// EventRelease is reported after a texture was destroyed.
	EventRelease
)

func (e Event) String() string {
	switch e {
	case EventAllocate:
		return "allocate"
	case EventTranscodeIn:
		return "transcode_in"
	case EventTranscodeOut:
		return "transcode_out"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Observer receives lifecycle events. err is non-nil when the operation
// failed. Observers are called synchronously on the caller's goroutine.
type Observer interface {
	Observe(ev Event, desc Descriptor, err error)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event, desc Descriptor, err error)

// Observe calls f.
func (f ObserverFunc) Observe(ev Event, desc Descriptor, err error) { f(ev, desc, err) }

type nopObserver struct{}

func (nopObserver) Observe(Event, Descriptor, error) {}
