// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/cmd/stage/config"
)

// NewRoot returns the root command of the stage tool, with all of its
// subcommands. The config is read from the --config file, falling back
// on [config.DefaultFile], and flags override its values.
func NewRoot() *cobra.Command {
	c := &config.Config{}
	var (
		file  string
		flags config.Config
	)
	root := &cobra.Command{
		Use:          "stage",
		Short:        "Inspect, run and watch presentation documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Open(file); err != nil {
				return err
			}
			pf := cmd.Flags()
			if pf.Changed("log-level") {
				c.LogLevel = flags.LogLevel
			}
			if pf.Changed("data-model") {
				c.DataModel = flags.DataModel
			}
			if pf.Changed("asset-root") {
				c.AssetRoot = flags.AssetRoot
			}
			if pf.Changed("format") {
				c.Format = flags.Format
			}
			if pf.Changed("strict") {
				c.Strict = flags.Strict
			}
			if pf.Changed("scan-images") {
				c.ScanImages = flags.ScanImages
			}
			if pf.Changed("debounce") {
				c.Watch.Debounce = flags.Watch.Debounce
			}
			c.Defaults()
			if err := c.Validate(); err != nil {
				return err
			}
			return c.SetupLogging()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&file, "config", "", "config file (default "+config.DefaultFile+" if present)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.DataModel, "data-model", "", "metadata document replacing the built in data model")
	pf.StringVar(&flags.AssetRoot, "asset-root", "", "directory documents and assets are read from")
	pf.StringVarP(&flags.Format, "format", "f", "", "output format: text, yaml or json")
	pf.BoolVar(&flags.Strict, "strict", false, "treat unknown elements and missing classes as errors")
	pf.BoolVar(&flags.ScanImages, "scan-images", false, "scan images missing from the image buffer registry")

	root.AddCommand(&cobra.Command{
		Use:   "inspect <document>",
		Short: "Print the object tree, slides and data inputs of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Inspect(c, cmd.OutOrStdout(), args[0])
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "dump <document>",
		Short: "Print a structured summary of a document as yaml or json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Dump(c, cmd.OutOrStdout(), args[0])
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "run <document> <script>",
		Short: "Run a command script against a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(c, cmd.OutOrStdout(), args[0], args[1])
		},
	})
	watch := &cobra.Command{
		Use:   "watch <document>",
		Short: "Load a document again whenever its files change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Watch(cmd.Context(), c, cmd.OutOrStdout(), args[0])
		},
	}
	watch.Flags().StringVar(&flags.Watch.Debounce, "debounce", "", "time to wait after a change before reloading")
	root.AddCommand(watch)
	root.AddCommand(&cobra.Command{
		Use:   "scan-images <dir>",
		Short: "Print the image buffer entries for the images in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ScanImages(c, cmd.OutOrStdout(), args[0])
		},
	})
	return root
}
