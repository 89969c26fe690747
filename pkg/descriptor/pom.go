// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"encoding/xml"

	"github.com/samber/lo"
)

const (
	pomNamespace    = "http://maven.apache.org/POM/4.0.0"
	pomModelVersion = "4.0.0"

	bootstrapGroupID    = "jgo.dev"
	bootstrapArtifactID = "jgo-bootstrapper"
	bootstrapVersion    = "0.0.0"
)

type Repository struct {
	ID  string `xml:"id"`
	URL string `xml:"url"`
}

type dependencyList struct {
	Dependencies []Dependency `xml:"dependency"`
}

type dependencyManagement struct {
	Dependencies dependencyList `xml:"dependencies"`
}

type repositoryList struct {
	Repositories []Repository `xml:"repository"`
}

type pom struct {
	XMLName              xml.Name              `xml:"project"`
	Xmlns                string                `xml:"xmlns,attr"`
	ModelVersion         string                `xml:"modelVersion"`
	GroupID              string                `xml:"groupId"`
	ArtifactID           string                `xml:"artifactId"`
	Version              string                `xml:"version"`
	DependencyManagement *dependencyManagement `xml:"dependencyManagement,omitempty"`
	Dependencies         dependencyList        `xml:"dependencies"`
	Repositories         *repositoryList       `xml:"repositories,omitempty"`
}

// Render synthesizes the build manifest handed to the external resolver
func Render(d *Descriptor, repositories []Repository) ([]byte, error) {
	p := pom{
		Xmlns:        pomNamespace,
		ModelVersion: pomModelVersion,
		GroupID:      bootstrapGroupID,
		ArtifactID:   bootstrapArtifactID,
		Version:      bootstrapVersion,
		Dependencies: dependencyList{Dependencies: d.Dependencies},
	}
	if len(d.Managed) > 0 {
		p.DependencyManagement = &dependencyManagement{
			Dependencies: dependencyList{Dependencies: d.Managed},
		}
	}
	repos := lo.Filter(repositories, func(r Repository, _ int) bool {
		return r.ID != "" && r.URL != ""
	})
	if len(repos) > 0 {
		p.Repositories = &repositoryList{Repositories: repos}
	}

	data, err := xml.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}
