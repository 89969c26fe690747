// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	m := New("Thing", "v1")
	assert.Equal(t, "jgo.dev/v1", m.APIVersion)
	assert.NoError(t, m.Check(m))

	err := m.Check(Meta{})
	assert.ErrorContains(t, err, "'kind'")
	assert.ErrorContains(t, err, "'apiVersion'")

	assert.ErrorContains(t, m.Check(Meta{Kind: "Other", APIVersion: "jgo.dev/v1"}), `unsupported kind "Other"`)
	assert.ErrorContains(t, m.Check(Meta{Kind: "Thing", APIVersion: "example.com/v1"}), "not in group")
	assert.ErrorContains(t, m.Check(Meta{Kind: "Thing", APIVersion: "jgo.dev/v2"}), "unsupported apiVersion")
}
