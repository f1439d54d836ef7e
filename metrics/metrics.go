// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics exports surface lifecycle events as Prometheus metrics.
//
//	rec := metrics.NewRecorder()
//	rec.MustRegister(prometheus.DefaultRegisterer)
//	s, _ := rtasset.NewSurface(dev, desc, rtasset.WithObserver(rec))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/rtasset"
)

const namespace = "rtasset"

// Transcode directions used as the "direction" label value.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Recorder is an rtasset.Observer backed by Prometheus collectors. A single
// Recorder may observe any number of surfaces.
type Recorder struct {
	allocations      prometheus.Counter
	allocationErrors prometheus.Counter
	transcodes       *prometheus.CounterVec
	transcodeErrors  *prometheus.CounterVec
	liveBytes        prometheus.Gauge
}

var _ rtasset.Observer = (*Recorder)(nil)

// NewRecorder creates an unregistered Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Number of surface textures allocated.",
		}),
		allocationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_errors_total",
			Help:      "Number of failed surface texture allocations.",
		}),
		transcodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcodes_total",
			Help:      "Number of CPU/GPU transcodes by direction.",
		}, []string{"direction"}),
		transcodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcode_errors_total",
			Help:      "Number of failed CPU/GPU transcodes by direction.",
		}, []string{"direction"}),
		liveBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_bytes",
			Help:      "Bytes held by live surface textures, all mip levels included.",
		}),
	}
}

// Collectors returns every collector of the Recorder.
func (r *Recorder) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.allocations, r.allocationErrors, r.transcodes, r.transcodeErrors, r.liveBytes}
}

// Register registers the Recorder's collectors with reg.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	for _, c := range r.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Recorder) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(r.Collectors()...)
}

// Observe implements rtasset.Observer.
func (r *Recorder) Observe(ev rtasset.Event, desc rtasset.Descriptor, err error) {
	switch ev {
	case rtasset.EventAllocate:
		if err != nil {
			r.allocationErrors.Inc()
			return
		}
		r.allocations.Inc()
		r.liveBytes.Add(float64(textureBytes(desc)))
	case rtasset.EventRelease:
		r.liveBytes.Sub(float64(textureBytes(desc)))
	case rtasset.EventTranscodeIn:
		r.transcode(DirectionIn, err)
	case rtasset.EventTranscodeOut:
		r.transcode(DirectionOut, err)
	}
}

func (r *Recorder) transcode(direction string, err error) {
	r.transcodes.WithLabelValues(direction).Inc()
	if err != nil {
		r.transcodeErrors.WithLabelValues(direction).Inc()
	}
}

// textureBytes returns the size of every mip level of desc.
func textureBytes(desc rtasset.Descriptor) int {
	bpp := desc.Format().BytesPerPixel()
	total := 0
	for i := range desc.MipLevelCount() {
		total += max(desc.Width()>>i, 1) * max(desc.Height()>>i, 1) * bpp
	}
	return total
}
