// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcher

import (
	"slices"
	"strings"

	"github.com/samber/lo"
	"jgo.dev/x/jgo/pkg/descriptor"
	"jgo.dev/x/jgo/pkg/endpoint"
	"jgo.dev/x/jgo/pkg/jgoconfig"
	"jgo.dev/x/jgo/pkg/resolver"
	"jgo.dev/x/jgo/pkg/shortcut"
)

// Options are the per-invocation choices made on the command line
type Options struct {
	Endpoint            string
	AdditionalEndpoints []string
	AdditionalJars      []string
	JvmArgs             []string
	ProgramArgs         []string

	Verbosity          int
	Quiet              bool
	UpdateCache        bool
	ForceUpdate        bool
	ManageDependencies bool
	Offline            bool
}

// RefreshWorkspace reports whether an existing workspace must be rebuilt.
// Forcing a remote update implies rebuilding the workspace.
func (o Options) RefreshWorkspace() bool {
	return o.UpdateCache || o.ForceUpdate
}

// ResolutionContext carries everything known about one resolution. Each
// pipeline step returns a new context instead of modifying the one it got.
type ResolutionContext struct {
	Options Options
	Config  *jgoconfig.Config

	// CacheKey is the endpoint text as given by the user
	CacheKey   string
	Endpoint   endpoint.Endpoint
	Descriptor *descriptor.Descriptor
	Resolved   []resolver.ResolvedArtifact
}

// NewResolutionContext expands shortcuts and parses the endpoint (plus any
// additional endpoints, each expanded on its own)
func NewResolutionContext(config *jgoconfig.Config, opts Options) (ResolutionContext, error) {
	raw := append([]string{opts.Endpoint}, opts.AdditionalEndpoints...)
	raw = lo.Filter(raw, func(s string, i int) bool { return i == 0 || s != "" })

	shortcuts := config.ShortcutList()
	expanded := lo.Map(raw, func(s string, _ int) string {
		return shortcut.Expand(s, shortcuts)
	})

	e, err := endpoint.Parse(strings.Join(expanded, endpoint.Separator))
	if err != nil {
		return ResolutionContext{}, err
	}

	return ResolutionContext{
		Options:  opts,
		Config:   config,
		CacheKey: strings.Join(raw, endpoint.Separator),
		Endpoint: e,
	}, nil
}

func (rc ResolutionContext) WithDescriptor(d *descriptor.Descriptor) ResolutionContext {
	rc.Descriptor = d
	return rc
}

func (rc ResolutionContext) WithResolved(resolved []resolver.ResolvedArtifact) ResolutionContext {
	rc.Resolved = slices.Clone(resolved)
	return rc
}
