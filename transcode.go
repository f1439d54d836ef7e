// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rtasset

import (
	"errors"
	"fmt"

	"github.com/gogpu/rtasset/staging"
)

// transcodeIn uploads raw level-0 bytes into tex through a staging image.
// The active render target is restored on every return path.
func (s *Surface) transcodeIn(tex Texture, data []byte) error {
	defer bindGuard(s.dev)()

	img, err := s.acquireStaging()
	if err != nil {
		return err
	}
	defer s.opts.pool.Put(img)

	if err := img.LoadRaw(data); err != nil {
		if errors.Is(err, staging.ErrSizeMismatch) {
			return fmt.Errorf("%w: %s: %w", ErrCorruptPayload, s.desc, err)
		}
		return fmt.Errorf("load staging image: %w", err)
	}
	if err := s.dev.Blit(img, tex); err != nil {
		return fmt.Errorf("blit staging image: %w", err)
	}
	return nil
}

// transcodeOut reads level 0 of tex back to the CPU and returns its raw bytes.
// The active render target is restored on every return path.
func (s *Surface) transcodeOut(tex Texture) ([]byte, error) {
	defer bindGuard(s.dev)()

	img, err := s.acquireStaging()
	if err != nil {
		return nil, err
	}
	defer s.opts.pool.Put(img)

	s.dev.SetActiveTarget(tex)
	if err := s.dev.ReadPixels(img); err != nil {
		return nil, fmt.Errorf("read pixels: %w", err)
	}
	return img.Raw(), nil
}

func (s *Surface) acquireStaging() (*staging.Image, error) {
	img, err := s.opts.pool.Get(s.desc.Width(), s.desc.Height(), s.desc.Format().BytesPerPixel())
	if err != nil {
		return nil, fmt.Errorf("acquire staging image: %w", err)
	}
	return img, nil
}
