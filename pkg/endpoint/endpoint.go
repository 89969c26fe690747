// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"jgo.dev/x/jgo/pkg/jgoerrors"
)

const (
	Separator      = "+"
	FieldSeparator = ":"

	VersionRelease = "RELEASE"
	VersionLatest  = "LATEST"
	VersionManaged = "MANAGED"
)

// versionLike decides whether the third field of g:a:X is a version or a main class
var versionLike = regexp.MustCompile(`^[0-9a-f]`)

type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
	MainClass  string
}

func (c Coordinate) IsManaged() bool {
	return c.Version == VersionManaged
}

func (c Coordinate) String() string {
	s := c.GroupID + FieldSeparator + c.ArtifactID
	if c.Version != "" {
		s += FieldSeparator + c.Version
	}
	if c.Classifier != "" {
		s += FieldSeparator + c.Classifier
	}
	return s
}

type Endpoint []Coordinate

// Primary is the first coordinate, the one whose jar manifest is consulted
// when no main class is given explicitly.
func (e Endpoint) Primary() Coordinate {
	return e[0]
}

// MainClass returns the last non-empty main class override
func (e Endpoint) MainClass() (string, bool) {
	c, _, ok := lo.FindLastIndexOf(e, func(c Coordinate) bool {
		return c.MainClass != ""
	})
	if !ok {
		return "", false
	}
	return c.MainClass, true
}

func (e Endpoint) String() string {
	return strings.Join(lo.Map(e, func(c Coordinate, _ int) string { return c.String() }), Separator)
}

type segmentKind int

const (
	segmentEmpty segmentKind = iota
	segmentTooFewFields
	segmentTooManyFields
	segmentFields
)

// Segment is the classified form of one '+'-separated part of an endpoint
type Segment struct {
	kind   segmentKind
	Raw    string
	Fields []string
}

// Classify splits raw on ':' and tags the result by field count
func Classify(raw string) Segment {
	if raw == "" {
		return Segment{kind: segmentEmpty, Raw: raw}
	}
	fields := strings.Split(raw, FieldSeparator)
	switch {
	case len(fields) < 2:
		return Segment{kind: segmentTooFewFields, Raw: raw, Fields: fields}
	case len(fields) > 5:
		return Segment{kind: segmentTooManyFields, Raw: raw, Fields: fields}
	default:
		return Segment{kind: segmentFields, Raw: raw, Fields: fields}
	}
}

func (s Segment) Coordinate() (Coordinate, error) {
	switch s.kind {
	case segmentEmpty:
		return Coordinate{}, jgoerrors.NewUsageError("empty coordinate")
	case segmentTooFewFields:
		return Coordinate{}, jgoerrors.NewUsageError("coordinate %q needs at least groupId:artifactId", s.Raw)
	case segmentTooManyFields:
		return Coordinate{}, jgoerrors.NewUsageError("coordinate %q has %d fields, at most 5 are allowed", s.Raw, len(s.Fields))
	}

	f := s.Fields
	if f[0] == "" || f[1] == "" {
		return Coordinate{}, jgoerrors.NewUsageError("coordinate %q has an empty groupId or artifactId", s.Raw)
	}
	c := Coordinate{GroupID: f[0], ArtifactID: f[1], Version: VersionRelease}
	switch len(f) {
	case 3:
		if isVersion(f[2]) {
			c.Version = f[2]
		} else {
			c.MainClass = f[2]
		}
	case 4:
		c.Version = f[2]
		c.MainClass = f[3]
	case 5:
		c.Version = f[2]
		c.Classifier = f[3]
		c.MainClass = f[4]
	}
	return c, nil
}

func isVersion(s string) bool {
	return versionLike.MatchString(s) || lo.Contains([]string{VersionRelease, VersionLatest, VersionManaged}, s)
}

// Parse turns an (already shortcut-expanded) endpoint into its coordinates
func Parse(s string) (Endpoint, error) {
	if strings.TrimSpace(s) == "" {
		return nil, jgoerrors.NewUsageError("endpoint must not be empty")
	}

	var e Endpoint
	for _, raw := range strings.Split(s, Separator) {
		c, err := Classify(raw).Coordinate()
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint %q: %w", s, err)
		}
		e = append(e, c)
	}
	return e, nil
}
