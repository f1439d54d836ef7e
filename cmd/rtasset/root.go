// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/rtasset"
	"github.com/gogpu/rtasset/assetset"
)

// Config keys shared by flags, environment and rtasset.yaml.
const (
	keyDir     = "dir"
	keyDevice  = "device"
	keyVerbose = "verbose"
	keyConfig  = "config"
)

// app carries state shared by every subcommand.
type app struct {
	fs afero.Fs
	v  *viper.Viper
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New()}

	root := &cobra.Command{
		Use:          "rtasset",
		Short:        "Manage persisted render surface asset sets",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyDir, ".", "asset set directory")
	flags.String(keyDevice, "soft", "device: soft or a HAL backend (vulkan)")
	flags.BoolP(keyVerbose, "v", false, "enable debug logging")
	flags.String(keyConfig, "", "config file (default ./rtasset.yaml)")

	root.AddCommand(
		newCreateCmd(a),
		newClearCmd(a),
		newInfoCmd(a),
		newExportCmd(a),
		newVerifyCmd(a),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	a.v.SetFs(a.fs)
	a.v.SetEnvPrefix("RTASSET")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := bindFlags(a.v, cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	if file := a.v.GetString(keyConfig); file != "" {
		a.v.SetConfigFile(file)
	} else {
		a.v.SetConfigName("rtasset")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if a.v.GetBool(keyVerbose) {
		rtasset.SetLogger(slog.New(slog.NewTextHandler(
			cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err == nil {
			err = v.BindPFlag(f.Name, f)
		}
	})
	return err
}

// openSet opens the device and loads the asset set, or starts an empty one
// when the directory has no manifest yet.
func (a *app) openSet(create bool, opts ...assetset.Option) (*assetset.Set, func(), error) {
	dev, closeDev, err := openDevice(a.v.GetString(keyDevice))
	if err != nil {
		return nil, nil, err
	}
	dir := a.v.GetString(keyDir)

	exists, err := afero.Exists(a.fs, filepath.Join(dir, assetset.ManifestName))
	if err != nil {
		closeDev()
		return nil, nil, err
	}

	var set *assetset.Set
	switch {
	case exists:
		set, err = assetset.Load(a.fs, dir, dev, opts...)
	case create:
		set = assetset.New(a.fs, dir, dev, opts...)
	default:
		err = fmt.Errorf("no %s in %s", assetset.ManifestName, dir)
	}
	if err != nil {
		closeDev()
		return nil, nil, err
	}
	return set, func() {
		set.Close()
		closeDev()
	}, nil
}
