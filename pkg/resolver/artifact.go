// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	ScopeCompile = "compile"
	ScopeRuntime = "runtime"

	PackagingJar     = "jar"
	PackagingTestJar = "test-jar"
	ClassifierTests  = "tests"
)

type ResolvedArtifact struct {
	GroupID    string `yaml:"groupId"`
	ArtifactID string `yaml:"artifactId"`
	Version    string `yaml:"version"`
	Classifier string `yaml:"classifier,omitempty"`
	Packaging  string `yaml:"packaging"`
	Scope      string `yaml:"scope"`
}

func (a ResolvedArtifact) String() string {
	if a.Classifier != "" {
		return fmt.Sprintf("%s:%s:%s:%s:%s:%s", a.GroupID, a.ArtifactID, a.Packaging, a.Classifier, a.Version, a.Scope)
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s", a.GroupID, a.ArtifactID, a.Packaging, a.Version, a.Scope)
}

// FileName is the artifact's base name in both the local repository and the workspace
func (a ResolvedArtifact) FileName() string {
	name := a.ArtifactID + "-" + a.Version
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	return name + "." + a.Packaging
}

// RepositoryPath locates the artifact inside a local repository rooted at repoRoot
func (a ResolvedArtifact) RepositoryPath(repoRoot string) string {
	groupPath := filepath.FromSlash(strings.ReplaceAll(a.GroupID, ".", "/"))
	return filepath.Join(repoRoot, groupPath, a.ArtifactID, a.Version, a.FileName())
}

// normalize rewrites test-jar packaging to a jar with the tests classifier
func (a ResolvedArtifact) normalize() ResolvedArtifact {
	if a.Packaging == PackagingTestJar {
		a.Packaging = PackagingJar
		a.Classifier = ClassifierTests
	}
	return a
}
