// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package jgoversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Cleanup(func() { JgoVersion, Build, BuildDate = "", "", "" })

	JgoVersion, Build, BuildDate = "1.2.3", "abc", "2026-01-01"
	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc", info.Build)
	assert.Equal(t, "2026-01-01", info.BuildDate)
	assert.Contains(t, info.String(), "version: 1.2.3")

	JgoVersion, Build, BuildDate = "", "", ""
	assert.Equal(t, "unknown", Get().Build)
	assert.Equal(t, "unknown", Get().BuildDate)
}
