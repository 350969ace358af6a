// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of the stage tool.
package cmd

import (
	"github.com/thomasgoedertier/qt3d-runtime-sub001/cmd/stage/config"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/player"
)

// Load opens the application or presentation document with the given
// path using the config.
func Load(c *config.Config, doc string, host player.Host) (*player.Application, error) {
	dm, err := c.LoadDataModel()
	if err != nil {
		return nil, err
	}
	fsys, name, err := c.Document(doc)
	if err != nil {
		return nil, err
	}
	return player.Open(fsys, name, player.Options{DataModel: dm, Strict: c.Strict, Host: host, ScanImages: c.ScanImages})
}
