// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jgo.dev/x/jgo/pkg/jgoconfig"
)

func TestGenDocs(t *testing.T) {
	t.Setenv(jgoconfig.JgoHomeEnvVar, t.TempDir())

	for _, format := range []string{"md", "rst", "man"} {
		t.Run(format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			require.NoError(t, genDocs(dir, format))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.NotEmpty(t, entries)
		})
	}

	assert.Error(t, genDocs(t.TempDir(), "pdf"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "jgo cache list", title("/x/jgo_cache_list.md", ".md"))
}
