// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"

	"jgo.dev/x/jgo/pkg/descriptor"
)

// Resolver turns a dependency descriptor into the artifacts needed at runtime.
// Implementations must have the files present in the local repository once
// Resolve returns.
type Resolver interface {
	Resolve(ctx context.Context, d *descriptor.Descriptor) ([]ResolvedArtifact, error)
}

// Func adapts a function to the Resolver interface
type Func func(ctx context.Context, d *descriptor.Descriptor) ([]ResolvedArtifact, error)

func (f Func) Resolve(ctx context.Context, d *descriptor.Descriptor) ([]ResolvedArtifact, error) {
	return f(ctx, d)
}

var _ Resolver = (*Maven)(nil)
var _ Resolver = Func(nil)
