// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package shortcut

import (
	"strings"
)

type Shortcut struct {
	Key   string
	Value string
}

// Expand rewrites the leading part of raw using the configured shortcuts.
// Shortcuts are visited once each, in order, and every visit sees the string
// as rewritten by the shortcuts before it. Expansion is not repeated until a
// fixed point is reached.
func Expand(raw string, shortcuts []Shortcut) string {
	s := raw
	for _, sc := range shortcuts {
		if sc.Key == "" {
			continue
		}
		if strings.HasPrefix(s, sc.Key) {
			s = sc.Value + strings.TrimPrefix(s, sc.Key)
		}
	}
	return s
}
