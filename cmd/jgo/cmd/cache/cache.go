// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"github.com/spf13/cobra"
	"jgo.dev/x/jgo/pkg/builtincommand"
	"jgo.dev/x/jgo/pkg/jgoconfig"
)

func Cmd(loadConfig jgoconfig.Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(builtincommand.Cache),
		Short: "inspect and clean cached workspaces",
	}

	cmd.AddCommand(listCmd(loadConfig))
	cmd.AddCommand(cleanCmd(loadConfig))

	return cmd
}
