// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/rtasset"
	"github.com/gogpu/rtasset/assetset"
	"github.com/gogpu/rtasset/inspect"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		width, height int
		format, color string
		mip           bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a new surface to the asset set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pf, err := rtasset.ParsePixelFormat(format)
			if err != nil {
				return err
			}
			set, done, err := a.openSet(true, assetset.WithMipChain(mip))
			if err != nil {
				return err
			}
			defer done()

			i, err := set.Create(width, height, pf)
			if err != nil {
				return err
			}
			asset, err := set.Asset(i)
			if err != nil {
				return err
			}
			if color != "" {
				c, err := parseColor(color)
				if err != nil {
					return err
				}
				if err := asset.Surface().Clear(c); err != nil {
					return err
				}
			}
			if err := set.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i, asset.Path(), asset.ID())
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&width, "width", 256, "surface width in pixels")
	f.IntVar(&height, "height", 256, "surface height in pixels")
	f.StringVar(&format, "format", rtasset.FormatRGBA8.Name(), "pixel format name")
	f.StringVar(&color, "color", "", "fill color as r,g,b[,a] in [0,1]")
	f.BoolVar(&mip, "mip", false, "allocate a full mip chain")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "clear <index>",
		Short: "Fill an asset with a solid color and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			c, err := parseColor(color)
			if err != nil {
				return err
			}
			set, done, err := a.openSet(false)
			if err != nil {
				return err
			}
			defer done()

			asset, err := set.Asset(index)
			if err != nil {
				return err
			}
			if err := asset.Surface().Clear(c); err != nil {
				return err
			}
			asset.MarkDirty()
			if err := set.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", asset.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "0,0,0,0", "fill color as r,g,b[,a] in [0,1]")
	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "List the assets of the set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, done, err := a.openSet(false)
			if err != nil {
				return err
			}
			defer done()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tID\tPATH\tDESCRIPTOR\tSTATE")
			for i := range set.Count() {
				asset, err := set.Asset(i)
				if err != nil {
					return err
				}
				s := asset.Surface()
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, asset.ID(), asset.Path(), s.Descriptor(), s.State())
			}
			return tw.Flush()
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var thumb int
	cmd := &cobra.Command{
		Use:   "export <index> <out.tiff>",
		Short: "Write level 0 of an asset as a TIFF image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			set, done, err := a.openSet(false)
			if err != nil {
				return err
			}
			defer done()

			asset, err := set.Asset(index)
			if err != nil {
				return err
			}
			rec, err := asset.Surface().Persist()
			if err != nil {
				return err
			}
			img, err := inspect.ToImage(rec)
			if err != nil {
				return err
			}
			img = inspect.Thumbnail(img, thumb)

			out, err := a.fs.Create(args[1])
			if err != nil {
				return err
			}
			if err := inspect.WriteTIFF(out, img); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			b := img.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", args[1], b.Dx(), b.Dy())
			return nil
		},
	}
	cmd.Flags().IntVar(&thumb, "thumb", 0, "scale so the longer side is at most N pixels (0 keeps full size)")
	return cmd
}

// errVerify is returned when at least one asset fails verification.
var errVerify = errors.New("verification failed")

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Upload, read back and re-load every asset and compare pixels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, done, err := a.openSet(false)
			if err != nil {
				return err
			}
			defer done()

			failed := 0
			for i := range set.Count() {
				asset, err := set.Asset(i)
				if err != nil {
					return err
				}
				status := "ok"
				if err := verifyAsset(a, asset); err != nil {
					status = err.Error()
					failed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i, asset.Path(), status)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d assets", errVerify, failed, set.Count())
			}
			return nil
		},
	}
}

// verifyAsset checks that the stored bytes survive an upload, a readback and
// a second upload unchanged.
func verifyAsset(a *app, asset *assetset.Asset) error {
	s := asset.Surface()
	stored, err := s.Persist()
	if err != nil {
		return err
	}
	if _, err := s.GetForRead(); err != nil {
		return err
	}
	first, err := s.Serialize()
	if err != nil {
		return err
	}
	if len(stored.Data) > 0 && !bytes.Equal(stored.Data, first.Data) {
		return errors.New("readback differs from stored data")
	}

	dev, closeDev, err := openDevice(a.v.GetString(keyDevice))
	if err != nil {
		return err
	}
	defer closeDev()
	again, err := rtasset.FromRecord(dev, first, rtasset.WithLabel(asset.Path()+" (verify)"))
	if err != nil {
		return err
	}
	defer again.Release()
	if _, err := again.GetForRead(); err != nil {
		return err
	}
	second, err := again.Serialize()
	if err != nil {
		return err
	}
	if !bytes.Equal(first.Data, second.Data) {
		return errors.New("round trip differs")
	}
	return nil
}

// parseColor parses "r,g,b" or "r,g,b,a". Alpha defaults to 1.
func parseColor(s string) (rtasset.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return rtasset.Color{}, fmt.Errorf("invalid color %q: want r,g,b[,a]", s)
	}
	ch := [4]float64{0, 0, 0, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return rtasset.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		ch[i] = v
	}
	return rtasset.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
