// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log/slog"
	"os"

	"jgo.dev/x/jgo/pkg/jgoconfig"
)

type Options struct {
	// Level overrides JGO_LOG_LEVEL if set
	Level string
	// Verbosity > 0 lowers the level to debug
	Verbosity int
	// Quiet raises the level to error
	Quiet bool
}

// Init installs the default slog logger writing to w
func Init(w io.Writer, opts Options) error {
	logLevel := "info"
	if v, ok := os.LookupEnv(jgoconfig.LogLevelEnvVar); ok {
		logLevel = v
	}
	if opts.Level != "" {
		logLevel = opts.Level
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(logLevel)); err != nil {
		return err
	}
	switch {
	case opts.Quiet:
		l = slog.LevelError
	case opts.Verbosity > 0:
		l = min(l, slog.LevelDebug)
	}

	slogHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(slogHandler))
	return nil
}
