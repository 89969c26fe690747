// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"jgo.dev/x/jgo/pkg/builtincommand"
	"jgo.dev/x/jgo/pkg/jgoconfig"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/workspace"
)

type listEntry struct {
	Endpoint  string    `yaml:"endpoint"`
	Path      string    `yaml:"path"`
	MainClass string    `yaml:"mainClass"`
	CreatedAt time.Time `yaml:"createdAt,omitempty"`
	Artifacts int       `yaml:"artifacts"`
}

func listCmd(loadConfig jgoconfig.Loader) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   string(builtincommand.CacheList),
		Short: "list cached workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			listings, err := workspace.New(config.CachePath).List()
			if err != nil {
				return err
			}
			entries := lo.Map(listings, func(l *workspace.Listing, _ int) *listEntry {
				e := &listEntry{Endpoint: l.Key, Path: l.Path, MainClass: l.MainClass}
				if l.Metadata != nil {
					e.Endpoint = l.Metadata.Endpoint
					e.CreatedAt = l.Metadata.CreatedAt
					e.Artifacts = len(l.Metadata.Artifacts)
				}
				return e
			})

			switch output {
			case "table":
				if len(entries) == 0 {
					cmd.Printf("no cached workspaces in %s\n", config.CachePath)
					return nil
				}
				cmd.Println(renderTable(entries))
			case "yaml":
				data, err := yaml.Marshal(entries)
				if err != nil {
					return err
				}
				cmd.Print(string(data))
			default:
				return jgoerrors.NewUsageError("output format not supported: %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, yaml")
	return cmd
}

func renderTable(entries []*listEntry) string {
	header := lipgloss.NewStyle().Bold(true)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return lipgloss.NewStyle()
		}).
		Headers("ENDPOINT", "MAIN CLASS", "ARTIFACTS", "CREATED").
		Rows(lo.Map(entries, func(e *listEntry, _ int) []string {
			created := ""
			if !e.CreatedAt.IsZero() {
				created = e.CreatedAt.Local().Format(time.DateTime)
			}
			return []string{e.Endpoint, e.MainClass, strconv.Itoa(e.Artifacts), created}
		})...).
		String()
}
