// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versions

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

// Version is one version of an artifact and the places it was seen
type Version struct {
	Version *semver.Version `json:"version"`
	// jar or pom present in the local repository
	Installed bool `json:"installed,omitempty"`
	// listed by the maven-metadata of a repository
	Remote bool `json:"remote,omitempty"`
	// resolved into at least one cached workspace
	Active bool `json:"active,omitempty"`
	// release/latest markers of the repository metadata
	Tags []string `json:"tags,omitempty"`
}

// Versions are ordered oldest first
type Versions []*Version

// New merges what the local repository, the repository metadata and the
// workspaces know about an artifact. Versions are identified by their
// literal text, so "1.0" and "1.0.0" stay apart.
func New(active []*semver.Version, installed []*semver.Version, remote map[*semver.Version][]string) Versions {
	byText := map[string]*Version{}
	get := func(v *semver.Version) *Version {
		e, ok := byText[v.Original()]
		if !ok {
			e = &Version{Version: v}
			byText[v.Original()] = e
		}
		return e
	}

	for _, v := range active {
		get(v).Active = true
	}
	for _, v := range installed {
		get(v).Installed = true
	}
	for v, tags := range remote {
		e := get(v)
		e.Remote = true
		e.Tags = lo.Uniq(append(e.Tags, tags...))
		slices.Sort(e.Tags)
	}

	r := Versions(lo.Values(byText))
	slices.SortFunc(r, compare)
	return r
}

func compare(a, b *Version) int {
	if c := a.Version.Compare(b.Version); c != 0 {
		return c
	}
	return strings.Compare(a.Version.Original(), b.Version.Original())
}

// Table renders newest first: versions used by a workspace are marked with
// '*', versions only known from repository metadata are dimmed
func (v Versions) Table() string {
	active := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	notDownloaded := lipgloss.NewStyle().Faint(true).Italic(true)

	rows := make([][]string, 0, len(v))
	for _, e := range slices.Backward(v) {
		marker, text := "", e.Version.Original()
		switch {
		case e.Active:
			marker, text = "*", active.Render(text)
		case !e.Installed:
			text = notDownloaded.Render(text)
		}
		rows = append(rows, []string{marker, text, strings.Join(e.Tags, ", ")})
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Rows(rows...).
		String()
}
