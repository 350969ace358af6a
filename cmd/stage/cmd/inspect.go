// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/iox"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/cmd/stage/config"
)

// Inspect prints the object tree, the slides and the data inputs of
// the document in the configured format.
func Inspect(c *config.Config, w io.Writer, doc string) error {
	app, err := Load(c, doc, nil)
	if err != nil {
		return err
	}
	defer app.Close()
	return WriteSummary(w, Summarize(app), c.Format)
}

// Dump prints the summary of the document as yaml, or json if the
// configured format is json.
func Dump(c *config.Config, w io.Writer, doc string) error {
	app, err := Load(c, doc, nil)
	if err != nil {
		return err
	}
	defer app.Close()
	format := c.Format
	if format != "json" {
		format = "yaml"
	}
	return WriteSummary(w, Summarize(app), format)
}

// WriteSummary writes the summary in the given format: text, yaml or json.
func WriteSummary(w io.Writer, s *Summary, format string) error {
	switch format {
	case "yaml":
		return iox.Write(s, w, iox.NewEncoderFunc(yaml.NewEncoder))
	case "json":
		return iox.Write(s, w, iox.NewEncoderFunc(func(w io.Writer) *json.Encoder {
			e := json.NewEncoder(w)
			e.SetIndent("", "  ")
			return e
		}))
	case "text", "":
		return writeText(w, s)
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeText(w io.Writer, s *Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "initial: %s\n", s.Initial)
	if len(s.DataInputs) > 0 {
		b.WriteString("data inputs:\n")
		for _, di := range s.DataInputs {
			fmt.Fprintf(&b, "  %s (%s)", di.Name, di.Type)
			if di.Min != nil {
				fmt.Fprintf(&b, " [%g, %g]", *di.Min, *di.Max)
			}
			b.WriteString("\n")
		}
	}
	for _, ps := range s.Presentations {
		fmt.Fprintf(&b, "presentation %s %dx%d, %d objects\n", ps.ID, ps.Width, ps.Height, ps.Objects)
		writeObject(&b, ps.Scene, 1)
		for _, sc := range ps.Scopes {
			fmt.Fprintf(&b, "  slides of %s (current %s):\n", sc.Scope, sc.Current)
			for _, sl := range sc.Slides {
				fmt.Fprintf(&b, "    %d %s %q %s %dms members=%d tracks=%d actions=%d\n", sl.Index, sl.ID, sl.Name,
					sl.PlayMode, sl.Duration, sl.Members, sl.Tracks, sl.Actions)
			}
		}
		for _, bd := range ps.Bound {
			fmt.Fprintf(&b, "  $%s -> %s\n", bd.DataInput, strings.Join(bd.Targets, ", "))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeObject(b *strings.Builder, ob *ObjectSummary, depth int) {
	if ob == nil {
		return
	}
	fmt.Fprintf(b, "%s%s %s #%s\n", strings.Repeat("  ", depth), ob.Kind, ob.Name, ob.ID)
	for _, c := range ob.Children {
		writeObject(b, c, depth+1)
	}
}
