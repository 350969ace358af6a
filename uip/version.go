// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uip

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
)

var (
	// PresentationVersions are the presentation document versions that
	// can be read.
	PresentationVersions = errors.Must1(semver.NewConstraint(">= 1, < 8"))

	// ApplicationVersions are the application document versions that
	// can be read.
	ApplicationVersions = errors.Must1(semver.NewConstraint(">= 1, < 3"))
)

// checkVersion checks the version attribute of a document against the
// given constraints. A missing version is accepted.
func checkVersion(version string, c *semver.Constraints) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrVersion, version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrVersion, version, c)
	}
	return nil
}
