// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"bytes"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLog(t *testing.T) {
	buf := captureLog(t)
	assert.NoError(t, Log(nil))
	assert.Empty(t, buf.String())

	err := New("boom")
	assert.Equal(t, err, Log(err, "id", "Cube"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "id=Cube")
}

func TestWarn(t *testing.T) {
	buf := captureLog(t)
	err := New("missing scope")
	assert.Equal(t, err, Warn(err))
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestLog1(t *testing.T) {
	buf := captureLog(t)
	assert.Equal(t, 12, Log1(strconv.Atoi("12")))
	assert.Empty(t, buf.String())
	assert.Equal(t, 0, Log1(strconv.Atoi("x")))
	assert.Contains(t, buf.String(), "invalid syntax")
}

func TestMust1(t *testing.T) {
	assert.Equal(t, 3, Must1(strconv.Atoi("3")))
	assert.Panics(t, func() { Must1(strconv.Atoi("z")) })
	assert.Equal(t, 0, Ignore1(strconv.Atoi("z")))
}

func TestCallerInfo(t *testing.T) {
	info := func() string { return CallerInfo() }()
	assert.Contains(t, info, "log_test.go")
}
