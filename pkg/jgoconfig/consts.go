// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package jgoconfig

import "time"

const (
	JgoConfigFileName = "jgo-config.yaml"

	DefaultRepositoryID  = "scijava.public"
	DefaultRepositoryURL = "https://maven.scijava.org/content/groups/public"

	DefaultResolveTimeout = 30 * time.Minute
)
