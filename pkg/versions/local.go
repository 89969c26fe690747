// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versions

import (
	"encoding/xml"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
	"jgo.dev/x/jgo/pkg/utils"
	"jgo.dev/x/jgo/pkg/workspace"
)

const (
	TagLatest  = "latest"
	TagRelease = "release"

	metadataGlob = "maven-metadata*.xml"
)

// mavenMetadata is the subset of a repository's maven-metadata.xml that
// lists the versions of one artifact
type mavenMetadata struct {
	Versioning struct {
		Latest   string   `xml:"latest"`
		Release  string   `xml:"release"`
		Versions []string `xml:"versions>version"`
	} `xml:"versioning"`
}

// List gathers the versions of groupID:artifactID known locally: jars in the
// local repository, repository metadata cached next to them, and versions
// used by cached workspaces
func List(repoRoot, groupID, artifactID string, workspaces []*workspace.Listing) (Versions, error) {
	dir := ArtifactDir(repoRoot, groupID, artifactID)

	installed, err := Installed(dir, artifactID)
	if err != nil {
		return nil, err
	}
	remote, err := Remote(dir)
	if err != nil {
		return nil, err
	}
	return New(Active(workspaces, groupID, artifactID), installed, remote), nil
}

func ArtifactDir(repoRoot, groupID, artifactID string) string {
	return filepath.Join(repoRoot, filepath.FromSlash(strings.ReplaceAll(groupID, ".", "/")), artifactID)
}

// Installed returns the versions under dir whose jar or pom is present
func Installed(dir, artifactID string) ([]*semver.Version, error) {
	exists, err := utils.DirExists(dir)
	if err != nil || !exists {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var result []*semver.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		present := lo.SomeBy([]string{".jar", ".pom"}, func(ext string) bool {
			ok, _ := utils.FileExists(filepath.Join(dir, e.Name(), artifactID+"-"+e.Name()+ext))
			return ok
		})
		if !present {
			continue
		}
		if v, ok := parse(e.Name()); ok {
			result = append(result, v)
		}
	}
	return result, nil
}

// Remote reads the repository metadata files Maven caches in dir and returns
// each listed version with its tags
func Remote(dir string) (map[*semver.Version][]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, metadataGlob))
	if err != nil {
		return nil, err
	}

	byText := map[string][]string{}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		m := &mavenMetadata{}
		if err := xml.Unmarshal(data, m); err != nil {
			slog.Warn("ignoring malformed repository metadata", "file", f, "error", err)
			continue
		}
		for _, v := range m.Versioning.Versions {
			v = strings.TrimSpace(v)
			if _, ok := byText[v]; !ok {
				byText[v] = nil
			}
		}
		if r := strings.TrimSpace(m.Versioning.Release); r != "" {
			byText[r] = lo.Uniq(append(byText[r], TagRelease))
		}
		if l := strings.TrimSpace(m.Versioning.Latest); l != "" {
			byText[l] = lo.Uniq(append(byText[l], TagLatest))
		}
	}

	result := map[*semver.Version][]string{}
	for text, tags := range byText {
		if v, ok := parse(text); ok {
			result[v] = tags
		}
	}
	return result, nil
}

// Active returns the versions of groupID:artifactID resolved into cached workspaces
func Active(workspaces []*workspace.Listing, groupID, artifactID string) []*semver.Version {
	var texts []string
	for _, w := range workspaces {
		if w.Metadata == nil {
			continue
		}
		for _, a := range w.Metadata.Artifacts {
			if a.GroupID == groupID && a.ArtifactID == artifactID {
				texts = append(texts, a.Version)
			}
		}
	}
	return lo.FilterMap(lo.Uniq(texts), func(text string, _ int) (*semver.Version, bool) {
		return parse(text)
	})
}

func parse(text string) (*semver.Version, bool) {
	v, err := semver.NewVersion(text)
	if err != nil {
		slog.Debug("skipping version that does not parse", "version", text, "error", err)
		return nil, false
	}
	return v, true
}
