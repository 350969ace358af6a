// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/cmd/stage/config"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/imagescan"
)

var demo = filepath.Join("testdata", "demo", "demo.uia")

func testConfig(format string) *config.Config {
	c := &config.Config{Format: format}
	c.Defaults()
	return c
}

func TestInspectText(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Inspect(testConfig("text"), &b, demo))
	out := b.String()
	assert.Contains(t, out, "initial: main\n")
	assert.Contains(t, out, "  Fade (Ranged Number) [0, 100]\n")
	assert.Contains(t, out, "presentation main 640x480")
	assert.Contains(t, out, "      Model Cube #Cube\n")
	assert.Contains(t, out, "  slides of Scene (current Open):\n")
	assert.Contains(t, out, `1 Open "Open" Stop at end 2000ms`)
	assert.Contains(t, out, `2 Close "Close" Looping 2000ms`)
	assert.Contains(t, out, "  $Fade -> Cube.opacity\n")
}

func TestDump(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Dump(testConfig("text"), &b, demo))
	var s Summary
	require.NoError(t, yaml.Unmarshal(b.Bytes(), &s))
	assert.Equal(t, "main", s.Initial)
	require.Len(t, s.DataInputs, 1)
	require.NotNil(t, s.DataInputs[0].Max)
	assert.Equal(t, float32(100), *s.DataInputs[0].Max)
	require.Len(t, s.Presentations, 1)
	ps := s.Presentations[0]
	assert.Equal(t, int32(640), ps.Width)
	assert.Equal(t, "Scene", ps.Scene.ID)
	require.Len(t, ps.Scene.Children, 1)
	assert.Len(t, ps.Scene.Children[0].Children, 3)
	require.Len(t, ps.Scopes, 1)
	sl := ps.Scopes[0].Slides
	require.Len(t, sl, 3)
	assert.Equal(t, "Master", sl[0].ID)
	assert.Equal(t, 3, sl[0].Actions)
	assert.Equal(t, 1, sl[1].Tracks)

	b.Reset()
	require.NoError(t, Dump(testConfig("json"), &b, demo))
	var js Summary
	require.NoError(t, json.Unmarshal(b.Bytes(), &js))
	assert.Equal(t, s, js)
}

func TestWriteSummaryFormat(t *testing.T) {
	assert.Error(t, WriteSummary(&bytes.Buffer{}, &Summary{}, "xml"))
}

func TestRun(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Run(testConfig("text"), &b, demo, filepath.Join("testdata", "demo", "script.txt")))
	want := []string{
		"main:Scene slide=Open time=0/2000 playing",
		"main:#Cube.position.x = 100",
		"Cube.opacity = 0",
		"signal main:Knob pinged",
		"behavior main:Knob turn(90)",
		"main:Scene slide=Close time=0/2000 playing",
		"#Cube.position.y = 7",
		"main:Scene slide=Open time=0/2000 playing",
	}
	assert.Equal(t, want, strings.Split(strings.TrimSpace(b.String()), "\n"))
}

func TestRunnerErrors(t *testing.T) {
	app, err := Load(testConfig("text"), demo, nil)
	require.NoError(t, err)
	defer app.Close()
	r := &Runner{App: app, Out: &bytes.Buffer{}}

	tests := []struct {
		script string
		line   int
		want   string
	}{
		{"print\nwobble", 2, "unknown command"},
		{"# comment\n\nget Cube", 3, "want 2 arguments"},
		{"set Cube 'opacity 1", 1, ""},
		{"tick soon", 1, ""},
		{"goto Nowhere", 1, "no slide"},
		{"get Missing opacity", 1, "not found"},
	}
	for _, test := range tests {
		t.Run(test.script, func(t *testing.T) {
			err := r.Run(strings.NewReader(test.script))
			var se *ScriptError
			require.True(t, errors.As(err, &se), "%v", err)
			assert.Equal(t, test.line, se.Line)
			if test.want != "" {
				assert.Contains(t, err.Error(), test.want)
			}
		})
	}
	assert.NoError(t, r.Run(strings.NewReader("next wrap\nnext wrap\nprev\npause\ntime 500\nplay")))
}

func writePNG(t *testing.T, fn string, alpha uint8) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.Set(x, y, color.NRGBA{R: 200, A: alpha})
		}
	}
	f, err := os.Create(fn)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "maps"), 0777))
	writePNG(t, filepath.Join(dir, "solid.png"), 255)
	writePNG(t, filepath.Join(dir, "maps", "glass.png"), 100)

	var b bytes.Buffer
	require.NoError(t, ScanImages(testConfig("text"), &b, dir))
	assert.Equal(t, "<BufferData>\n"+
		"\t<ImageBuffer sourcepath=\"maps/glass.png\" hasTransparency=\"True\" />\n"+
		"\t<ImageBuffer sourcepath=\"solid.png\" hasTransparency=\"False\" />\n"+
		"</BufferData>\n", b.String())

	b.Reset()
	require.NoError(t, WriteImageBuffers(&b, []imagescan.Entry{{Path: "a&b.png"}}))
	assert.Contains(t, b.String(), `sourcepath="a&amp;b.png"`)
}

func TestRoot(t *testing.T) {
	doc := filepath.Join(origDir, demo)
	t.Chdir(t.TempDir())

	root := NewRoot()
	var b bytes.Buffer
	root.SetOut(&b)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"inspect", "--format", "json", doc})
	require.NoError(t, root.Execute())
	var s Summary
	require.NoError(t, json.Unmarshal(b.Bytes(), &s))
	assert.Equal(t, "main", s.Initial)

	root = NewRoot()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"inspect", "--log-level", "loud", doc})
	assert.Error(t, root.Execute())

	require.NoError(t, os.WriteFile(config.DefaultFile, []byte("Format = 'yaml'\n"), 0666))
	root = NewRoot()
	b.Reset()
	root.SetOut(&b)
	root.SetArgs([]string{"inspect", doc})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(b.String(), "initial: main\n"))
	assert.Contains(t, b.String(), "presentations:")
}

// origDir is the package directory, before any test changes it.
var origDir = func() string {
	wd, _ := os.Getwd()
	return wd
}()

// syncBuffer is a buffer safe for concurrent use.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join("testdata", "demo"))))
	doc := filepath.Join(dir, "demo.uia")
	c := testConfig("text")
	c.Watch.Debounce = "20ms"

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- Watch(ctx, c, &out, doc) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ok, 1 presentations")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.uip"), []byte("<UIP><Project>"), 0666))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "initial presentation")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
