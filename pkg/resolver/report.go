// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

var logLevelPrefixes = []string{"[INFO]", "[DEBUG]", "[WARNING]"}

// ParseReport extracts the compile and runtime scoped artifacts from the
// line-oriented report printed by the resolver. Lines look like
//
//	[INFO]    org.scijava:scijava-common:jar:2.97.0:compile
//	[INFO]    org.scijava:parsington:jar:tests:3.1.0:runtime -- module parsington
//
// and anything that doesn't parse as such is ignored.
func ParseReport(r io.Reader) ([]ResolvedArtifact, error) {
	var artifacts []ResolvedArtifact

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		a, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		artifacts = append(artifacts, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func parseLine(line string) (ResolvedArtifact, bool) {
	line = strings.TrimSpace(line)
	for _, p := range logLevelPrefixes {
		line = strings.TrimSpace(strings.TrimPrefix(line, p))
	}

	// drop trailing annotations such as " -- module foo" or " (optional)"
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ResolvedArtifact{}, false
	}
	coords := strings.Split(fields[0], ":")

	var a ResolvedArtifact
	switch len(coords) {
	case 5:
		a = ResolvedArtifact{
			GroupID:    coords[0],
			ArtifactID: coords[1],
			Packaging:  coords[2],
			Version:    coords[3],
			Scope:      coords[4],
		}
	case 6:
		a = ResolvedArtifact{
			GroupID:    coords[0],
			ArtifactID: coords[1],
			Packaging:  coords[2],
			Classifier: coords[3],
			Version:    coords[4],
			Scope:      coords[5],
		}
	default:
		return ResolvedArtifact{}, false
	}

	if !lo.Contains([]string{ScopeCompile, ScopeRuntime}, a.Scope) {
		return ResolvedArtifact{}, false
	}
	if lo.Contains([]string{a.GroupID, a.ArtifactID, a.Packaging, a.Version}, "") {
		slog.Debug("skipping malformed resolver line", "line", line)
		return ResolvedArtifact{}, false
	}
	return a.normalize(), true
}
