// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"jgo.dev/x/jgo/pkg/resolver"
	"jgo.dev/x/jgo/pkg/schema"
	"jgo.dev/x/jgo/pkg/utils"
)

// MetadataFileName describes how a workspace was built. It is informational
// only; the sentinel alone decides whether a workspace is populated.
const MetadataFileName = "resolution.yaml"

var MetadataMeta = schema.New("WorkspaceResolution", "v1")

type Metadata struct {
	schema.Meta `yaml:",inline"`

	Endpoint  string                      `yaml:"endpoint"`
	MainClass string                      `yaml:"mainClass"`
	CreatedAt time.Time                   `yaml:"createdAt"`
	Artifacts []resolver.ResolvedArtifact `yaml:"artifacts,omitempty"`
}

func WriteMetadata(dir string, m *Metadata) error {
	stamped := *m
	stamped.Meta = MetadataMeta
	data, err := yaml.Marshal(&stamped)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, MetadataFileName), data, 0644)
}

func ReadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	if err != nil {
		return nil, err
	}
	m := &Metadata{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	if err := MetadataMeta.Check(m.Meta); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, MetadataFileName), err)
	}
	return m, nil
}

type Listing struct {
	Key       string
	Path      string
	MainClass string
	// nil if the workspace has no readable metadata
	Metadata *Metadata
}

// List returns the populated workspaces under the cache root, sorted by key
func (c *Cache) List() ([]*Listing, error) {
	return c.listUnder(c.Root)
}

// listUnder returns the populated workspaces at or below dir, sorted by key.
// A workspace holds only files, so endpoints extending another one (g:a and
// g:a:@Main) show up as a workspace nested in the other.
func (c *Cache) listUnder(dir string) ([]*Listing, error) {
	exists, err := utils.DirExists(dir)
	if err != nil || !exists {
		return nil, err
	}

	var listings []*Listing
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if c.reserved(path) {
			return filepath.SkipDir
		}

		mainClass, ok, err := readSentinel(path)
		if err != nil || !ok {
			return err
		}
		rel, err := filepath.Rel(c.Root, path)
		if err != nil {
			return err
		}
		l := &Listing{Key: rel, Path: path, MainClass: mainClass}
		if m, err := ReadMetadata(path); err == nil {
			l.Metadata = m
		}
		listings = append(listings, l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(listings, func(a, b *Listing) int {
		return strings.Compare(a.Key, b.Key)
	})
	return listings, nil
}

func (c *Cache) reserved(path string) bool {
	return filepath.Dir(path) == c.Root &&
		(filepath.Base(path) == locksDirName || filepath.Base(path) == stagingDirName)
}

// Remove deletes the workspace of endpoint together with the workspaces
// nested in it, each under its own lock. It reports whether anything existed.
func (c *Cache) Remove(ctx context.Context, endpoint string) (bool, error) {
	key, err := Key(endpoint)
	if err != nil {
		return false, err
	}
	path := filepath.Join(c.Root, key)

	existed, err := utils.DirExists(path)
	if err != nil || !existed {
		return false, err
	}
	if err := c.removeNested(ctx, path); err != nil {
		return true, err
	}
	return true, utils.WithLock(ctx, c.lockPath(key), func() error {
		return os.RemoveAll(path)
	})
}

// RemoveAll deletes every workspace, each under its own lock. Workspaces
// being staged by another process are left alone.
func (c *Cache) RemoveAll(ctx context.Context) error {
	if err := c.removeNested(ctx, c.Root); err != nil {
		return err
	}

	entries, err := os.ReadDir(c.Root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		path := filepath.Join(c.Root, e.Name())
		if c.reserved(path) {
			continue
		}
		if err := pruneEmpty(path); err != nil {
			return err
		}
	}
	return nil
}

// removeNested removes the populated workspaces strictly below dir, deepest first
func (c *Cache) removeNested(ctx context.Context, dir string) error {
	listings, err := c.listUnder(dir)
	if err != nil {
		return err
	}
	for _, l := range slices.Backward(listings) {
		if l.Path == dir {
			continue
		}
		err := utils.WithLock(ctx, c.lockPath(l.Key), func() error {
			slog.Debug("removing workspace", "path", l.Path)
			return os.RemoveAll(l.Path)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// pruneEmpty removes the directories left empty below and at dir
func pruneEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// not a directory, or already gone
		return nil
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := pruneEmpty(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
		slog.Debug("keeping non-empty directory", "path", dir, "error", err)
	}
	return nil
}
