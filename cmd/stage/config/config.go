// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the stage tool.
package config

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/iox"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/meta"
)

// DefaultFile is the config file looked for in the current directory
// when none is given.
const DefaultFile = "stage.toml"

// Formats are the output formats of the tool.
var Formats = []string{"text", "yaml", "json"}

// Config is the configuration of the stage tool. Values come from the
// config file and are overridden by command line flags.
type Config struct {

	// LogLevel is the minimum level of log messages: debug, info, warn
	// or error.
	LogLevel string

	// DataModel is the path of a metadata document that replaces the
	// built in data model.
	DataModel string

	// AssetRoot is the directory documents and their assets are read
	// from. By default it is the directory of the document.
	AssetRoot string

	// Format is the output format: text, yaml or json.
	Format string

	// Strict makes unknown elements and missing class sources errors.
	Strict bool

	// ScanImages scans images missing from the image buffer registry
	// for transparency.
	ScanImages bool

	// Watch is the configuration of the watch command.
	Watch Watch
}

// Watch is the configuration of the watch command.
type Watch struct {

	// Debounce is the time to wait after a change before reloading,
	// as a duration such as 250ms.
	Debounce string
}

// Defaults sets the values that are not set to their defaults.
func (c *Config) Defaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "250ms"
	}
}

// Validate returns an error for values that can not be used.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if !isFormat(c.Format) {
		errs = append(errs, fmt.Errorf("config: unknown format %q (want one of %s)", c.Format, strings.Join(Formats, ", ")))
	}
	if _, err := c.Debounce(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func isFormat(f string) bool {
	for _, ff := range Formats {
		if f == ff {
			return true
		}
	}
	return false
}

// Level returns the log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Debounce returns the watch debounce time.
func (c *Config) Debounce() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("config: watch debounce %q: %w", c.Watch.Debounce, err)
	}
	return d, nil
}

// Open reads the config from the given TOML file. If the file is the
// default one and does not exist, the config is left as it is.
func (c *Config) Open(filename string) error {
	if filename == "" {
		filename = DefaultFile
	}
	err := iox.Open(c, filename, iox.NewDecoderFunc(toml.NewDecoder))
	if errors.Is(err, fs.ErrNotExist) && filename == DefaultFile {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: %s: %w", filename, err)
	}
	return nil
}

// Save writes the config to the given TOML file.
func (c *Config) Save(filename string) error {
	b, err := iox.WriteBytes(c, iox.NewEncoderFunc(toml.NewEncoder))
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}

// SetupLogging installs the default slog logger, writing text to
// stderr at the configured level.
func (c *Config) SetupLogging() error {
	l, err := c.Level()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

// LoadDataModel returns the data model given by the config: the one in
// the DataModel file, or the built in one.
func (c *Config) LoadDataModel() (*meta.DataModel, error) {
	if c.DataModel == "" {
		return meta.Default(), nil
	}
	f, err := os.Open(c.DataModel)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dm, err := meta.Load(f)
	if err != nil {
		return nil, fmt.Errorf("config: data model %s: %w", c.DataModel, err)
	}
	return dm, nil
}

// Root returns the directory the given document and its assets are
// read from: the asset root if set, and else the directory of the
// document.
func (c *Config) Root(doc string) string {
	if c.AssetRoot != "" {
		return c.AssetRoot
	}
	return filepath.Dir(doc)
}

// Document splits a document path into the file system it is read
// from and its name in that file system, using the asset root if set.
func (c *Config) Document(doc string) (fs.FS, string, error) {
	root := c.Root(doc)
	rel, err := filepath.Rel(root, doc)
	if err != nil {
		return nil, "", err
	}
	rel = filepath.ToSlash(rel)
	if !fs.ValidPath(rel) {
		return nil, "", fmt.Errorf("config: document %s is not inside the asset root %s", doc, root)
	}
	return os.DirFS(root), rel, nil
}
