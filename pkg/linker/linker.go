// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package linker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/resolver"
	"jgo.dev/x/jgo/pkg/utils"
)

type Strategy string

const (
	Hard Strategy = "hard"
	Soft Strategy = "soft"
	None Strategy = "none"
	// Auto tries a hard link, then a symbolic link, then a copy
	Auto Strategy = "auto"

	DefaultStrategy = Hard
)

var Strategies = []Strategy{Hard, Soft, None, Auto}

func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return DefaultStrategy, nil
	}
	if !lo.Contains(Strategies, Strategy(s)) {
		return "", fmt.Errorf("unknown link type: %q (must be one of %v)", s, Strategies)
	}
	return Strategy(s), nil
}

// PlaceFunc puts the file src at dst
type PlaceFunc func(src, dst string) error

type step struct {
	name  string
	place PlaceFunc
}

// Linker places resolved artifacts into a workspace directory. A Linker
// remembers what it placed, so the same file name is only placed once.
type Linker struct {
	RepoRoot string
	steps    []step
	// destination -> source
	placed map[string]string

	// link operations, replaceable in tests
	Hardlink PlaceFunc
	Symlink  PlaceFunc
	Copy     PlaceFunc
}

func New(repoRoot string, strategy Strategy) *Linker {
	l := &Linker{
		RepoRoot: repoRoot,
		placed:   map[string]string{},
		Hardlink: os.Link,
		Symlink:  symlink,
		Copy:     utils.CopyFile,
	}

	hard := step{"hard link", func(src, dst string) error { return l.Hardlink(src, dst) }}
	soft := step{"symbolic link", func(src, dst string) error { return l.Symlink(src, dst) }}
	cp := step{"copy", func(src, dst string) error { return l.Copy(src, dst) }}

	switch strategy {
	case Soft:
		l.steps = []step{soft, cp}
	case None:
		l.steps = []step{cp}
	case Auto:
		l.steps = []step{hard, soft, cp}
	default:
		l.steps = []step{hard, cp}
	}
	return l
}

func symlink(src, dst string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	return os.Symlink(abs, dst)
}

// Place puts the artifact's file from the local repository into dir
func (l *Linker) Place(a resolver.ResolvedArtifact, dir string) (string, error) {
	return l.PlaceFile(a.RepositoryPath(l.RepoRoot), dir)
}

// PlaceFile puts src into dir under its base name, trying each step of the
// strategy in order
func (l *Linker) PlaceFile(src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if placedFrom, ok := l.placed[dst]; ok {
		if placedFrom != src {
			slog.Warn("skipping file, its name is taken in the workspace", "file", src, "placed", placedFrom)
		} else {
			slog.Debug("already placed", "file", dst)
		}
		return dst, nil
	}

	if _, err := os.Stat(src); err != nil {
		return "", jgoerrors.NewLinkFailure(src, dir, err)
	}

	var errs []error
	for _, s := range l.steps {
		err := s.place(src, dst)
		if err == nil {
			slog.Debug("placed artifact", "file", dst, "method", s.name)
			l.placed[dst] = src
			return dst, nil
		}
		slog.Debug("placement failed, trying next method", "file", dst, "method", s.name, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		// a failed attempt may leave a partial file behind
		if rmErr := os.Remove(dst); rmErr != nil && !os.IsNotExist(rmErr) {
			errs = append(errs, rmErr)
		}
	}
	return "", jgoerrors.NewLinkFailure(src, dir, errors.Join(errs...))
}
