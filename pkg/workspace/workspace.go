// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/utils"
)

const (
	// SentinelFileName marks a complete workspace and holds its main class
	SentinelFileName = "mainClass"

	locksDirName   = ".locks"
	stagingDirName = ".staging"
)

var (
	keySeparators = strings.NewReplacer(":", "/", "+", "/")
	keyUnsafe     = regexp.MustCompile(`[^0-9a-zA-Z/.\-]`)
)

// Key maps an endpoint string to its workspace path relative to the cache root
func Key(endpoint string) (string, error) {
	k := keyUnsafe.ReplaceAllString(keySeparators.Replace(endpoint), "_")

	segments := lo.Compact(strings.Split(k, "/"))
	if len(segments) == 0 || strings.HasPrefix(k, "/") {
		return "", jgoerrors.NewUsageError("endpoint %q does not map to a workspace", endpoint)
	}
	if lo.Contains(segments, "..") || lo.Contains(segments, ".") {
		return "", jgoerrors.NewUsageError("endpoint %q must not contain '.' or '..' path segments", endpoint)
	}
	if segments[0] == locksDirName || segments[0] == stagingDirName {
		return "", jgoerrors.NewUsageError("endpoint %q collides with a reserved cache directory", endpoint)
	}
	return filepath.Join(segments...), nil
}

type Cache struct {
	Root string
}

func New(root string) *Cache {
	return &Cache{Root: root}
}

// Entry is an opened workspace. It holds the workspace lock until Close.
type Entry struct {
	Key       string
	Path      string
	Populated bool
	MainClass string

	cache  *Cache
	unlock utils.Unlocker
}

// Open locks the workspace of endpoint and reports whether it is populated.
// With force, an existing workspace is deleted first.
func (c *Cache) Open(ctx context.Context, endpoint string, force bool) (*Entry, error) {
	key, err := Key(endpoint)
	if err != nil {
		return nil, err
	}

	unlock, err := utils.Lock(ctx, c.lockPath(key))
	if err != nil {
		return nil, fmt.Errorf("failed to lock workspace of %q: %w", endpoint, err)
	}

	e := &Entry{
		Key:    key,
		Path:   filepath.Join(c.Root, key),
		cache:  c,
		unlock: unlock,
	}

	if force {
		slog.Debug("forced update, removing workspace", "path", e.Path)
		if err := os.RemoveAll(e.Path); err != nil {
			e.Close()
			return nil, err
		}
	}

	mainClass, ok, err := readSentinel(e.Path)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.Populated = ok
	e.MainClass = mainClass
	return e, nil
}

func (c *Cache) lockPath(key string) string {
	sum := sha256.Sum256([]byte(filepath.ToSlash(key)))
	return filepath.Join(c.Root, locksDirName, hex.EncodeToString(sum[:])+".lock")
}

func readSentinel(dir string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, SentinelFileName))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Stage creates an empty directory on the cache's filesystem in which the
// workspace is assembled before Commit. The returned func removes it.
func (e *Entry) Stage() (string, func() error, error) {
	stagingRoot := filepath.Join(e.cache.Root, stagingDirName)
	if err := utils.EnsureDirs(stagingRoot); err != nil {
		return "", nil, err
	}
	return utils.MkdirTemp(stagingRoot, "ws-*")
}

// Commit writes the sentinel into staging and moves staging into place,
// replacing any previous workspace content
func (e *Entry) Commit(staging, mainClass string) error {
	if err := os.WriteFile(filepath.Join(staging, SentinelFileName), []byte(mainClass), 0644); err != nil {
		return err
	}
	if err := utils.EnsureDirs(filepath.Dir(e.Path)); err != nil {
		return err
	}

	var previous string
	if _, err := os.Lstat(e.Path); err == nil {
		if err := moveNested(e.Path, staging); err != nil {
			return fmt.Errorf("failed to keep nested workspaces: %w", err)
		}
		previous = staging + ".previous"
		if err := os.Rename(e.Path, previous); err != nil {
			return fmt.Errorf("failed to move previous workspace aside: %w", err)
		}
	}

	if err := os.Rename(staging, e.Path); err != nil {
		if previous != "" {
			err = errors.Join(err, os.Rename(previous, e.Path), moveNested(staging, e.Path))
		}
		return fmt.Errorf("failed to move workspace into place: %w", err)
	}

	if previous != "" {
		if err := os.RemoveAll(previous); err != nil {
			slog.Warn("failed to remove previous workspace", "path", previous, "error", err)
		}
	}

	e.Populated = true
	e.MainClass = mainClass
	slog.Debug("workspace committed", "path", e.Path, "mainClass", mainClass)
	return nil
}

// moveNested moves the subdirectories of from into to. A workspace holds
// only files, so its subdirectories are the workspaces of longer endpoints.
func moveNested(from, to string) error {
	entries, err := os.ReadDir(from)
	if err != nil {
		return err
	}
	for _, d := range entries {
		if !d.IsDir() {
			continue
		}
		if err := os.Rename(filepath.Join(from, d.Name()), filepath.Join(to, d.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the workspace lock
func (e *Entry) Close() {
	if e.unlock != nil {
		e.unlock()
		e.unlock = nil
	}
}
