// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package staging

import "sync"

// Pool recycles staging images grouped by shape.
//
// Thread safety: all methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Image
	maxSize int // max images per bucket, 0 means unlimited
}

type poolKey struct {
	width, height, bytesPerPixel int
}

// NewPool creates a pool retaining at most maxPerBucket images per shape.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Image),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed image of the given shape, reusing a pooled one when
// available.
func (p *Pool) Get(width, height, bytesPerPixel int) (*Image, error) {
	key := poolKey{width: width, height: height, bytesPerPixel: bytesPerPixel}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		img := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()

		img.released = false
		return img, nil
	}
	p.mu.Unlock()

	return NewImage(width, height, bytesPerPixel)
}

// Put clears img and returns it to the pool. A nil image is ignored. The image
// must not be used after Put.
func (p *Pool) Put(img *Image) {
	if img == nil || img.released {
		return
	}
	img.Clear()
	img.released = true

	key := poolKey{width: img.width, height: img.height, bytesPerPixel: img.bytesPerPixel}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// Len returns the number of pooled images across all shapes.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

var defaultPool = NewPool(4)

// Default returns the package-level pool shared by surfaces that are not
// configured with their own.
func Default() *Pool { return defaultPool }
