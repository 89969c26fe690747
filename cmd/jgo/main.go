// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"

	jgo "jgo.dev/x/jgo/cmd/jgo/cmd"
	"jgo.dev/x/jgo/pkg/launcher"
)

func main() {
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelFn()

	l := launcher.Launcher{
		Stderr: os.Stderr,
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
		ExitFn: func(exitCode int) {
			cancelFn()
			os.Exit(exitCode)
		},
		OsArgs: os.Args,
	}

	if exitCode := jgo.Execute(ctx, &l); exitCode != 0 {
		cancelFn()
		os.Exit(exitCode)
	}
}
