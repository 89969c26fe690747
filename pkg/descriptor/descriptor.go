// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"jgo.dev/x/jgo/pkg/endpoint"
)

const (
	ImportType  = "pom"
	ImportScope = "import"
)

type Dependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version,omitempty"`
	Classifier string `xml:"classifier,omitempty"`
	Type       string `xml:"type,omitempty"`
	Scope      string `xml:"scope,omitempty"`
}

// Descriptor is what the external resolver is asked to resolve
type Descriptor struct {
	Dependencies []Dependency
	// Managed is only populated in dependency-management mode
	Managed []Dependency
}

// Build accumulates one dependency record per coordinate. When managed is
// set, every coordinate carrying a version is also imported as a bill of
// materials so that MANAGED coordinates can pick their version from it.
func Build(e endpoint.Endpoint, managed bool) *Descriptor {
	d := &Descriptor{}
	for _, c := range e {
		d = d.With(c, managed)
	}
	return d
}

// With returns a copy of d with c appended
func (d *Descriptor) With(c endpoint.Coordinate, managed bool) *Descriptor {
	next := &Descriptor{
		Dependencies: append([]Dependency{}, d.Dependencies...),
		Managed:      append([]Dependency{}, d.Managed...),
	}

	dep := Dependency{
		GroupID:    c.GroupID,
		ArtifactID: c.ArtifactID,
		Classifier: c.Classifier,
	}
	if !c.IsManaged() {
		dep.Version = c.Version
	}
	next.Dependencies = append(next.Dependencies, dep)

	if managed && !c.IsManaged() {
		next.Managed = append(next.Managed, Dependency{
			GroupID:    c.GroupID,
			ArtifactID: c.ArtifactID,
			Version:    c.Version,
			Classifier: c.Classifier,
			Type:       ImportType,
			Scope:      ImportScope,
		})
	}
	return next
}
