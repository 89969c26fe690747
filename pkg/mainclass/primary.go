// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package mainclass

import (
	"path/filepath"

	"github.com/samber/lo"
	"jgo.dev/x/jgo/pkg/endpoint"
	"jgo.dev/x/jgo/pkg/resolver"
)

// PrimaryJar locates the jar of the primary coordinate inside the workspace.
// The resolved artifacts give the concrete version; if the coordinate is not
// among them, the workspace is searched by name. Returns "" if not found.
func PrimaryJar(workspaceDir string, primary endpoint.Coordinate, resolved []resolver.ResolvedArtifact) string {
	if a, ok := lo.Find(resolved, func(a resolver.ResolvedArtifact) bool {
		return a.GroupID == primary.GroupID &&
			a.ArtifactID == primary.ArtifactID &&
			a.Classifier == primary.Classifier &&
			a.Packaging == resolver.PackagingJar
	}); ok {
		return filepath.Join(workspaceDir, a.FileName())
	}

	pattern := primary.ArtifactID + "-*"
	if primary.Classifier != "" {
		pattern += "-" + primary.Classifier
	}
	matches, err := filepath.Glob(filepath.Join(workspaceDir, pattern+jarSuffix))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}
