// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagescan

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	img.SetNRGBA(2, 2, color.NRGBA{R: 200, A: alpha})
	return img
}

func encode(t *testing.T, fn func(b *bytes.Buffer) error) *fstest.MapFile {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, fn(&b))
	return &fstest.MapFile{Data: b.Bytes()}
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"maps/opaque.png": encode(t, func(b *bytes.Buffer) error { return png.Encode(b, testImage(255)) }),
		"maps/alpha.png":  encode(t, func(b *bytes.Buffer) error { return png.Encode(b, testImage(10)) }),
		"maps/photo.jpg":  encode(t, func(b *bytes.Buffer) error { return jpeg.Encode(b, testImage(255), nil) }),
		"maps/wall.bmp":   encode(t, func(b *bytes.Buffer) error { return bmp.Encode(b, testImage(255)) }),
		"maps/fake.png":   &fstest.MapFile{Data: []byte("not really a png")},
		"notes.txt":       &fstest.MapFile{Data: []byte("hello")},
	}
}

func TestHasTransparency(t *testing.T) {
	fsys := testFS(t)
	tr, err := HasTransparency(fsys, "maps/alpha.png")
	require.NoError(t, err)
	assert.True(t, tr)

	tr, err = HasTransparency(fsys, "maps/opaque.png")
	require.NoError(t, err)
	assert.False(t, tr)

	tr, err = HasTransparency(fsys, "maps/photo.jpg")
	require.NoError(t, err)
	assert.False(t, tr)

	_, err = HasTransparency(fsys, "notes.txt")
	assert.Error(t, err)
	_, err = HasTransparency(fsys, "missing.png")
	assert.Error(t, err)
}

func TestSniff(t *testing.T) {
	fsys := testFS(t)
	f, err := Sniff(fsys["maps/wall.bmp"].Data)
	require.NoError(t, err)
	assert.Equal(t, BMP, f)
	f, err = Sniff(fsys["maps/photo.jpg"].Data)
	require.NoError(t, err)
	assert.Equal(t, JPEG, f)
	_, err = Sniff(fsys["notes.txt"].Data)
	assert.Error(t, err)
}

func TestScanner(t *testing.T) {
	fsys := testFS(t)
	s := NewScanner(fsys)
	tr, err := s.HasTransparency(`maps\alpha.png`)
	require.NoError(t, err)
	assert.True(t, tr)

	// cached results survive the file going away
	delete(fsys, "maps/alpha.png")
	tr, err = s.HasTransparency("maps/alpha.png")
	require.NoError(t, err)
	assert.True(t, tr)
}

func TestScanDir(t *testing.T) {
	entries, err := ScanDir(testFS(t), ".")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Path: "maps/alpha.png", HasTransparency: true, Format: PNG}, entries[0])
	assert.Equal(t, "maps/opaque.png", entries[1].Path)
	assert.Equal(t, Entry{Path: "maps/photo.jpg", Format: JPEG}, entries[2])
	assert.Equal(t, BMP, entries[3].Format)
}

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".TIF")
	require.NoError(t, err)
	assert.Equal(t, TIFF, f)
	_, err = ExtToFormat("psd")
	assert.Error(t, err)
	assert.Equal(t, "WebP", WebP.String())
}
