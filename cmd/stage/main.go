// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command stage inspects, runs and watches presentation documents.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/cmd/stage/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.NewRoot().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
