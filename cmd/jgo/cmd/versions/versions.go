// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package versions

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"jgo.dev/x/jgo/pkg/builtincommand"
	"jgo.dev/x/jgo/pkg/endpoint"
	"jgo.dev/x/jgo/pkg/jgoconfig"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/versions"
	"jgo.dev/x/jgo/pkg/workspace"
)

func Cmd(loadConfig jgoconfig.Loader) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   string(builtincommand.Versions) + " <groupId:artifactId>",
		Short: "show locally known versions of an artifact",
		Long: `show locally known versions of an artifact

	versions are gathered from the local repository and from the repository
	metadata Maven cached there; no remote repository is contacted.
	versions used by cached workspaces are marked with '*'.
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return jgoerrors.NewUsageError("expected exactly one groupId:artifactId, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			e, err := endpoint.Parse(args[0])
			if err != nil {
				return err
			}
			primary := e.Primary()

			listings, err := workspace.New(config.CachePath).List()
			if err != nil {
				return err
			}

			v, err := versions.List(config.M2RepoPath, primary.GroupID, primary.ArtifactID, listings)
			if err != nil {
				return err
			}

			switch output {
			case "table":
				if len(v) == 0 {
					cmd.Printf("no versions of %s:%s found in %s\n", primary.GroupID, primary.ArtifactID, config.M2RepoPath)
					return nil
				}
				cmd.Println(v.Table())
			case "json":
				data, err := json.MarshalIndent(v, "", "    ")
				if err != nil {
					return err
				}

				cmd.Println(string(data))
			default:
				return jgoerrors.NewUsageError("output format not supported: %s", output)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: json, table")
	return cmd
}
