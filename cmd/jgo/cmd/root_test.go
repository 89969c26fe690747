// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"jgo.dev/x/jgo/pkg/descriptor"
	"jgo.dev/x/jgo/pkg/jgoconfig"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/launcher"
	"jgo.dev/x/jgo/pkg/resolver"
	"jgo.dev/x/jgo/pkg/testutil"
)

type MainSuite struct {
	suite.Suite
	m2Repo  string
	bin     string
	calls   int
	failing bool
	lastOpt launcher.Options
}

func TestSuite(t *testing.T) {
	suite.Run(t, &MainSuite{})
}

func (s *MainSuite) SetupTest() {
	t := s.T()
	s.m2Repo = t.TempDir()
	s.bin = t.TempDir()
	s.calls = 0
	s.failing = false

	t.Setenv(jgoconfig.JgoHomeEnvVar, t.TempDir())
	t.Setenv(jgoconfig.M2RepoEnvVar, s.m2Repo)
	t.Setenv(jgoconfig.LinksEnvVar, "auto")
	for _, v := range []string{jgoconfig.CacheDirEnvVar, jgoconfig.LogLevelEnvVar, jgoconfig.OfflineEnvVar, jgoconfig.JavaHomeEnvVar} {
		t.Setenv(v, "")
		s.Require().NoError(os.Unsetenv(v))
	}

	testutil.WriteRepositoryJar(t, s.m2Repo, "org.example", "tool", "1.0", "org.example.Tool", "org.example.Tool", "org.example.Other")
	// java echoes its arguments and fails if asked to
	s.Require().NoError(os.WriteFile(filepath.Join(s.bin, "java"), []byte("#!/bin/sh\necho \"$@\"\nfor a in \"$@\"; do [ \"$a\" = fail ] && exit 7; done\nexit 0\n"), 0755))
}

type result struct {
	stdout, stderr string
	code           int
	exited         bool
}

func (s *MainSuite) run(args ...string) result {
	if testutil.OS == "windows" {
		s.T().Skip("fake java is a shell script")
	}

	var stdout, stderr bytes.Buffer
	r := result{}
	l := &launcher.Launcher{
		Stdout: &stdout,
		Stderr: &stderr,
		Stdin:  strings.NewReader(""),
		ExitFn: func(code int) { r.code, r.exited = code, true },
		OsArgs: append([]string{JgoName}, args...),
		LookPath: func(file string) (string, error) {
			return filepath.Join(s.bin, filepath.Base(file)), nil
		},
		NewResolver: func(_ *jgoconfig.Config, opts launcher.Options, _ string) resolver.Resolver {
			s.lastOpt = opts
			return resolver.Func(func(_ context.Context, d *descriptor.Descriptor) ([]resolver.ResolvedArtifact, error) {
				s.calls++
				if s.failing {
					return nil, jgoerrors.NewResolutionFailure(errors.New("mvn exited with 1"), "[ERROR] Failed to collect dependencies")
				}
				return []resolver.ResolvedArtifact{{GroupID: "org.example", ArtifactID: "tool", Version: "1.0", Packaging: "jar", Scope: "compile"}}, nil
			})
		},
	}

	code := Execute(context.Background(), l)
	if !r.exited {
		r.code = code
	}
	r.stdout, r.stderr = stdout.String(), stderr.String()
	return r
}

func (s *MainSuite) TestLaunch() {
	r := s.run("-J", "-Xmx64m", "org.example:tool", "--foo", "-v")
	s.Equal(0, r.code, r.stderr)
	s.Equal(1, s.calls)

	ws := filepath.Join(os.Getenv(jgoconfig.JgoHomeEnvVar), "cache", "org.example", "tool")
	s.Equal("-Xmx64m -cp "+filepath.Join(ws, "*")+" org.example.Tool --foo -v\n", r.stdout)
	s.Zero(s.lastOpt.Verbosity)

	// cached
	r = s.run("org.example:tool:@Other", "fail")
	s.Equal(7, r.code)
	s.Contains(r.stdout, "org.example.Other fail")
	s.Equal(2, s.calls)

	r = s.run("org.example:tool")
	s.Equal(0, r.code)
	s.Equal(2, s.calls)

	r = s.run("-u", "org.example:tool")
	s.Equal(0, r.code)
	s.Equal(3, s.calls)
}

func (s *MainSuite) TestFlagsReachTheResolver() {
	r := s.run("-m", "-o", "-U", "-vv", "--additional-endpoints", "org.example:other", "org.example:tool")
	s.Equal(0, r.code, r.stderr)
	s.True(s.lastOpt.ManageDependencies)
	s.True(s.lastOpt.Offline)
	s.True(s.lastOpt.ForceUpdate)
	s.Equal(2, s.lastOpt.Verbosity)
	s.Equal([]string{"org.example:other"}, s.lastOpt.AdditionalEndpoints)
}

func (s *MainSuite) TestResolutionFailure() {
	s.failing = true

	r := s.run("org.example:missing")
	s.Equal(jgoerrors.ExitResolution, r.code)
	s.Contains(r.stderr, jgoerrors.ResolutionFailure)
	s.Contains(r.stderr, "-v")
	s.NotContains(r.stderr, "Failed to collect dependencies")
	s.NotContains(r.stderr, "Usage:")

	r = s.run("-v", "org.example:missing")
	s.Equal(jgoerrors.ExitResolution, r.code)
	s.Contains(r.stderr, "Failed to collect dependencies")
}

func (s *MainSuite) TestUsageErrors() {
	tests := map[string][]string{
		"no endpoint":      {},
		"empty endpoint":   {""},
		"bad endpoint":     {"justone"},
		"too many fields":  {"g:a:b:c:d:e"},
		"bad link type":    {"--link-type", "weird", "g:a"},
		"bad repository":   {"-r", "noequals", "g:a"},
		"unknown flag":     {"--nope", "g:a"},
		"versions no args": {"versions"},
	}
	for name, args := range tests {
		s.Run(name, func() {
			r := s.run(args...)
			s.Equal(jgoerrors.ExitUsage, r.code)
			s.Contains(r.stderr, jgoerrors.UsageError)
			s.Contains(r.stderr, "Usage:")
			s.Empty(r.stdout)
		})
	}
	s.Zero(s.calls)
}

func (s *MainSuite) TestUsageOfSubcommand() {
	r := s.run("--link-type", "soft", "versions")
	s.Equal(jgoerrors.ExitUsage, r.code)
	s.Contains(r.stderr, JgoName+" versions <groupId:artifactId>")
}

func (s *MainSuite) TestToolMissing() {
	s.Require().NoError(os.Remove(filepath.Join(s.bin, "java")))
	t := s.T()
	var stderr bytes.Buffer
	l := &launcher.Launcher{
		Stdout: &bytes.Buffer{}, Stderr: &stderr, Stdin: strings.NewReader(""),
		ExitFn: func(int) { t.Fatal("must not launch") },
		OsArgs: []string{JgoName, "org.example:tool"},
		LookPath: func(file string) (string, error) {
			if file == "java" {
				return "", exec.ErrNotFound
			}
			return filepath.Join(s.bin, file), nil
		},
	}
	s.Equal(jgoerrors.ExitUsage, Execute(context.Background(), l))
	s.Contains(stderr.String(), jgoerrors.ToolMissing)
}

func (s *MainSuite) TestCacheAndVersions() {
	r := s.run("cache", "list")
	s.Equal(0, r.code, r.stderr)
	s.Contains(r.stdout, "no cached workspaces")

	s.Equal(0, s.run("org.example:tool").code)

	r = s.run("cache", "list")
	s.Equal(0, r.code, r.stderr)
	s.Contains(r.stdout, "org.example:tool")
	s.Contains(r.stdout, "org.example.Tool")

	r = s.run("cache", "list", "-o", "yaml")
	s.Equal(0, r.code, r.stderr)
	s.Contains(r.stdout, "endpoint: org.example:tool")

	r = s.run("versions", "org.example:tool")
	s.Equal(0, r.code, r.stderr)
	s.Contains(r.stdout, "1.0")
	s.Contains(r.stdout, "*")

	r = s.run("versions", "-o", "json", "org.example:tool")
	s.Equal(0, r.code, r.stderr)
	s.Contains(r.stdout, `"installed": true`)

	r = s.run("cache", "clean", "org.example:tool", "org.example:nope")
	s.Equal(0, r.code, r.stderr)
	s.Contains(r.stdout, "removed org.example:tool")
	s.Contains(r.stdout, "no workspace for org.example:nope")

	s.Equal(0, s.run("org.example:tool").code)
	r = s.run("cache", "clean")
	s.Equal(0, r.code, r.stderr)
	s.Contains(s.run("cache", "list").stdout, "no cached workspaces")
}

func (s *MainSuite) TestVersionFlag() {
	r := s.run("--version")
	s.Equal(0, r.code)
	s.Contains(r.stdout, "version:")
	s.Zero(s.calls)
}
