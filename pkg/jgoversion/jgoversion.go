// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package jgoversion

import (
	"runtime/debug"

	"github.com/goccy/go-yaml"
)

// To be populated at build-time, e.g.:
// go build -ldflags "-X 'jgo.dev/x/jgo/pkg/jgoversion.JgoVersion=1.2.3'"
var (
	JgoVersion string
	Build      string
	BuildDate  string
)

type VersionInfo struct {
	Version   string `yaml:"version" json:"version"`
	Build     string `yaml:"build" json:"build"`
	BuildDate string `yaml:"buildDate" json:"buildDate"`
	GoVersion string `yaml:"goVersion" json:"goVersion"`
}

func defaultUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func Get() VersionInfo {
	info := VersionInfo{
		Version:   defaultUnknown(JgoVersion),
		Build:     defaultUnknown(Build),
		BuildDate: defaultUnknown(BuildDate),
		GoVersion: "unknown",
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if JgoVersion == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}
	return info
}

func GetJgoVersion() string {
	return Get().Version
}

// String renders the version info as yaml
func (v VersionInfo) String() string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return v.Version
	}
	return string(b)
}
