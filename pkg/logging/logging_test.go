// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jgo.dev/x/jgo/pkg/jgoconfig"
)

func TestInit(t *testing.T) {
	ctx := context.Background()
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	var buf bytes.Buffer
	t.Setenv(jgoconfig.LogLevelEnvVar, "warn")
	require.NoError(t, Init(&buf, Options{}))
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelWarn))

	require.NoError(t, Init(&buf, Options{Verbosity: 1}))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelDebug))

	require.NoError(t, Init(&buf, Options{Quiet: true, Level: "debug"}))
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelWarn))

	require.NoError(t, Init(&buf, Options{Level: "error"}))
	slog.Error("boom")
	assert.Contains(t, buf.String(), "boom")

	assert.Error(t, Init(&buf, Options{Level: "loud"}))
}
