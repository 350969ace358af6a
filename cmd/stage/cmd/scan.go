// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/cmd/stage/config"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/imagescan"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

// ScanImages scans the images under the given directory and prints
// the <BufferData> element of a presentation document for them.
func ScanImages(c *config.Config, w io.Writer, dir string) error {
	entries, err := imagescan.ScanDir(os.DirFS(dir), ".")
	if err != nil {
		return err
	}
	return WriteImageBuffers(w, entries)
}

// WriteImageBuffers writes the <BufferData> element for the entries.
func WriteImageBuffers(w io.Writer, entries []imagescan.Entry) error {
	var b strings.Builder
	b.WriteString("<BufferData>\n")
	for _, e := range entries {
		b.WriteString("\t<ImageBuffer sourcepath=\"")
		xml.EscapeText(&b, []byte(e.Path))
		b.WriteString("\" hasTransparency=\"")
		b.WriteString(props.FormatBool(e.HasTransparency))
		b.WriteString("\" />\n")
	}
	b.WriteString("</BufferData>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
