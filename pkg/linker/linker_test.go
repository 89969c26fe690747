// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package linker

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/resolver"
)

var artifact = resolver.ResolvedArtifact{
	GroupID:    "org.example",
	ArtifactID: "demo",
	Version:    "1.0",
	Packaging:  "jar",
	Scope:      "compile",
}

func setup(t *testing.T) (repo, ws string) {
	repo = t.TempDir()
	ws = t.TempDir()
	src := artifact.RepositoryPath(repo)
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte("jar bytes"), 0644))
	return repo, ws
}

func crossDevice(src, dst string) error {
	return &os.LinkError{Op: "link", Old: src, New: dst, Err: syscall.EXDEV}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, Hard, s)

	for _, in := range []string{"hard", "soft", "none", "auto"} {
		s, err := ParseStrategy(in)
		require.NoError(t, err)
		assert.Equal(t, Strategy(in), s)
	}

	_, err = ParseStrategy("sideways")
	assert.Error(t, err)
}

func TestPlaceHard(t *testing.T) {
	repo, ws := setup(t)
	l := New(repo, Hard)

	dst, err := l.Place(artifact, ws)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws, "demo-1.0.jar"), dst)

	srcInfo, err := os.Stat(artifact.RepositoryPath(repo))
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, os.SameFile(srcInfo, dstInfo))
}

func TestPlaceHardFallsBackToCopy(t *testing.T) {
	repo, ws := setup(t)
	l := New(repo, Hard)
	l.Hardlink = crossDevice

	dst, err := l.Place(artifact, ws)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))

	info, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestPlaceSoft(t *testing.T) {
	repo, ws := setup(t)
	l := New(repo, Soft)

	dst, err := l.Place(artifact, ws)
	require.NoError(t, err)

	info, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	t.Run("falls back to copy", func(t *testing.T) {
		repo, ws := setup(t)
		l := New(repo, Soft)
		l.Symlink = crossDevice
		dst, err := l.Place(artifact, ws)
		require.NoError(t, err)
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "jar bytes", string(data))
	})
}

func TestPlaceAutoOrder(t *testing.T) {
	repo, ws := setup(t)
	l := New(repo, Auto)

	var calls []string
	l.Hardlink = func(src, dst string) error {
		calls = append(calls, "hard")
		return crossDevice(src, dst)
	}
	l.Symlink = func(src, dst string) error {
		calls = append(calls, "soft")
		return crossDevice(src, dst)
	}
	l.Copy = func(src, dst string) error {
		calls = append(calls, "copy")
		return os.WriteFile(dst, []byte("copied"), 0644)
	}

	_, err := l.Place(artifact, ws)
	require.NoError(t, err)
	assert.Equal(t, []string{"hard", "soft", "copy"}, calls)
}

func TestPlaceNoneCopiesOnly(t *testing.T) {
	repo, ws := setup(t)
	l := New(repo, None)
	l.Hardlink = func(src, dst string) error {
		t.Fatal("hard link must not be attempted")
		return nil
	}

	dst, err := l.Place(artifact, ws)
	require.NoError(t, err)
	srcInfo, err := os.Stat(artifact.RepositoryPath(repo))
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.False(t, os.SameFile(srcInfo, dstInfo))
}

func TestPlaceFailure(t *testing.T) {
	repo, ws := setup(t)
	l := New(repo, Hard)
	l.Hardlink = crossDevice
	l.Copy = func(src, dst string) error { return os.ErrPermission }

	_, err := l.Place(artifact, ws)
	require.Error(t, err)
	assert.True(t, jgoerrors.HasCode(err, jgoerrors.LinkFailure))
	assert.ErrorIs(t, err, os.ErrPermission)

	t.Run("missing source", func(t *testing.T) {
		l := New(t.TempDir(), Hard)
		_, err := l.Place(artifact, ws)
		assert.True(t, jgoerrors.HasCode(err, jgoerrors.LinkFailure))
	})
}

func TestPlaceOnce(t *testing.T) {
	repo, ws := setup(t)
	l := New(repo, Hard)

	count := 0
	l.Hardlink = func(src, dst string) error {
		count++
		return os.Link(src, dst)
	}
	_, err := l.Place(artifact, ws)
	require.NoError(t, err)
	_, err = l.Place(artifact, ws)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
