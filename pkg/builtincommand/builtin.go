// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package builtincommand

import (
	"strings"

	"github.com/samber/lo"
)

type BuiltinCommand string

const (
	Versions   BuiltinCommand = "versions"
	Cache      BuiltinCommand = "cache"
	CacheList  BuiltinCommand = "list"
	CacheClean BuiltinCommand = "clean"
	Help       BuiltinCommand = "help"
	Completion BuiltinCommand = "completion"
)

// TopLevel are the commands that may directly follow the binary name
var TopLevel = []BuiltinCommand{Versions, Cache, Help, Completion}

// IsBuiltinCommand reports whether the first positional argument after the
// binary name selects a builtin command instead of an endpoint. Endpoints
// always contain a ':' so the two never collide. takesValue reports whether
// a flag (long name or shorthand) consumes the argument following it.
func IsBuiltinCommand(args []string, takesValue func(flag string) bool) bool {
	if len(args) < 2 {
		return false
	}
	rest := args[1:]
	for len(rest) > 0 {
		a := rest[0]
		rest = rest[1:]
		switch {
		case a == "--":
			return false
		case strings.HasPrefix(a, "--"):
			if !strings.Contains(a, "=") && takesValue(a[2:]) && len(rest) > 0 {
				rest = rest[1:]
			}
		case strings.HasPrefix(a, "-") && len(a) > 1:
			// -rVALUE carries its own value
			if len(a) == 2 && takesValue(a[1:]) && len(rest) > 0 {
				rest = rest[1:]
			}
		default:
			return lo.Contains(TopLevel, BuiltinCommand(a))
		}
	}
	return false
}
