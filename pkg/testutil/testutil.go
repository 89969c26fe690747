// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"jgo.dev/x/jgo/pkg/utils"
)

// WriteJar creates a jar at path holding an optional manifest and one empty
// entry per class name (dotted form), in the given order
func WriteJar(t *testing.T, path string, mainClass string, classes ...string) {
	require.NoError(t, utils.EnsureDirs(filepath.Dir(path)))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	manifest := "Manifest-Version: 1.0\r\nCreated-By: testutil\r\n"
	if mainClass != "" {
		manifest += "Main-Class: " + mainClass + "\r\n"
	}
	mw, err := w.Create("META-INF/MANIFEST.MF")
	require.NoError(t, err)
	_, err = mw.Write([]byte(manifest + "\r\n"))
	require.NoError(t, err)

	for _, c := range classes {
		_, err := w.Create(strings.ReplaceAll(c, ".", "/") + ".class")
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

// WriteRepositoryJar places a jar at its local repository location and returns its path
func WriteRepositoryJar(t *testing.T, repoRoot, groupID, artifactID, version, mainClass string, classes ...string) string {
	p := filepath.Join(repoRoot, filepath.FromSlash(strings.ReplaceAll(groupID, ".", "/")), artifactID, version, artifactID+"-"+version+".jar")
	WriteJar(t, p, mainClass, classes...)
	return p
}

func Context(t *testing.T) context.Context {
	ctx, stopFn := context.WithCancel(context.Background())
	t.Cleanup(stopFn)
	return ctx
}

var OS = func() string {
	if runtime.GOOS == "windows" {
		return "windows"
	}
	return "unix"
}()
