// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagescan determines whether image files have transparent
// pixels, for images that are missing from the image buffer registry
// of a presentation.
package imagescan

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats are the image formats that can be scanned.
type Formats int32

const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

var formatNames = []string{"None", "PNG", "JPEG", "GIF", "TIFF", "BMP", "WebP"}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Formats(%d)", f)
	}
	return formatNames[f]
}

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not
func ExtToFormat(ext string) (Formats, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	}
	return None, fmt.Errorf("imagescan: extension %q not recognized", ext)
}

// headerSize is the number of bytes the file type is sniffed from.
const headerSize = 262

// Sniff returns the format of the image data from its header.
func Sniff(header []byte) (Formats, error) {
	kind, err := filetype.Match(header)
	if err != nil {
		return None, err
	}
	if !filetype.IsImage(header) {
		return None, fmt.Errorf("imagescan: not an image (%s)", kind.MIME.Value)
	}
	return ExtToFormat(kind.Extension)
}

// Read reports whether the image read from r has pixels that are not
// fully opaque. JPEG images are opaque and are not decoded.
func Read(r io.Reader) (bool, Formats, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return false, None, err
	}
	header = header[:n]
	f, err := Sniff(header)
	if err != nil {
		return false, None, err
	}
	if f == JPEG {
		return false, f, nil
	}
	img, _, err := image.Decode(io.MultiReader(bytes.NewReader(header), r))
	if err != nil {
		return false, f, err
	}
	return !IsOpaque(img), f, nil
}

// IsOpaque returns whether all pixels of the image are fully opaque.
func IsOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// HasTransparency reports whether the named image of the file system
// has pixels that are not fully opaque.
func HasTransparency(fsys fs.FS, name string) (bool, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()
	t, _, err := Read(f)
	if err != nil {
		return false, fmt.Errorf("imagescan: %s: %w", name, err)
	}
	return t, nil
}

// Scanner scans the images of a file system, remembering the results.
// It is safe for concurrent use.
type Scanner struct {

	// FS is the file system image paths are relative to.
	FS fs.FS

	mu    sync.Mutex
	cache map[string]bool
}

// NewScanner returns a new scanner of the given file system.
func NewScanner(fsys fs.FS) *Scanner {
	return &Scanner{FS: fsys}
}

// HasTransparency reports whether the image at the given slash path
// has transparent pixels. Results are cached by cleaned path.
func (s *Scanner) HasTransparency(name string) (bool, error) {
	name = path.Clean(strings.ReplaceAll(name, `\`, "/"))
	s.mu.Lock()
	t, ok := s.cache[name]
	s.mu.Unlock()
	if ok {
		return t, nil
	}
	t, err := HasTransparency(s.FS, name)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	if s.cache == nil {
		s.cache = map[string]bool{}
	}
	s.cache[name] = t
	s.mu.Unlock()
	return t, nil
}

// Entry is the scan result of one image file.
type Entry struct {
	Path            string
	HasTransparency bool
	Format          Formats
}

// ScanDir scans every image below the given directory of the file
// system, in lexical order. Files that are not images are skipped;
// images that can not be decoded are logged and skipped.
func ScanDir(fsys fs.FS, dir string) ([]Entry, error) {
	var entries []Entry
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ferr := ExtToFormat(path.Ext(p)); ferr != nil {
			return nil
		}
		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		t, format, err := Read(f)
		if err != nil {
			slog.Warn("can not scan image", "path", p, "err", err)
			return nil
		}
		entries = append(entries, Entry{Path: p, HasTransparency: t, Format: format})
		return nil
	})
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })
	return entries, err
}
