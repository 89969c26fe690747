// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"jgo.dev/x/jgo/pkg/builtincommand"
	"jgo.dev/x/jgo/pkg/jgoconfig"
	"jgo.dev/x/jgo/pkg/workspace"
)

func cleanCmd(loadConfig jgoconfig.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.CacheClean) + " [endpoint...]",
		Short: "remove cached workspaces",
		Long: `remove cached workspaces

	without arguments every workspace is removed. endpoints must be given
	exactly as they were when launched.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			c := workspace.New(config.CachePath)
			removed := color.New(color.FgGreen)
			missing := color.New(color.FgYellow)

			if len(args) == 0 {
				if err := c.RemoveAll(cmd.Context()); err != nil {
					return err
				}
				_, _ = removed.Fprintf(cmd.OutOrStdout(), "removed all workspaces in %s\n", config.CachePath)
				return nil
			}

			for _, e := range args {
				ok, err := c.Remove(cmd.Context(), e)
				if err != nil {
					return err
				}
				if ok {
					_, _ = removed.Fprintf(cmd.OutOrStdout(), "removed %s\n", e)
				} else {
					_, _ = missing.Fprintf(cmd.OutOrStdout(), "no workspace for %s\n", e)
				}
			}
			return nil
		},
	}
}
