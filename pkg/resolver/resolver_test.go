// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jgo.dev/x/jgo/pkg/descriptor"
	"jgo.dev/x/jgo/pkg/endpoint"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/testutil"
)

const report = `[INFO] Scanning for projects...
[INFO] --- dependency:3.6.1:resolve (default-cli) @ jgo-bootstrapper ---
[INFO]
[INFO] The following files have been resolved:
[INFO]    org.scijava:scijava-common:jar:2.97.0:compile -- module org.scijava.common
[INFO]    org.scijava:parsington:test-jar:3.1.0:runtime
[INFO]    org.lwjgl:lwjgl:jar:natives-linux:3.3.1:runtime
[INFO]    junit:junit:jar:4.13.2:test
[INFO]    org.slf4j:slf4j-api:jar:2.0.9:provided
[INFO]    com.google.guava:guava:jar:32.1.2-jre:compile (optional)
[INFO] BUILD SUCCESS
`

func TestParseReport(t *testing.T) {
	artifacts, err := ParseReport(strings.NewReader(report))
	require.NoError(t, err)

	assert.Equal(t, []ResolvedArtifact{
		{GroupID: "org.scijava", ArtifactID: "scijava-common", Version: "2.97.0", Packaging: "jar", Scope: "compile"},
		{GroupID: "org.scijava", ArtifactID: "parsington", Version: "3.1.0", Classifier: "tests", Packaging: "jar", Scope: "runtime"},
		{GroupID: "org.lwjgl", ArtifactID: "lwjgl", Version: "3.3.1", Classifier: "natives-linux", Packaging: "jar", Scope: "runtime"},
		{GroupID: "com.google.guava", ArtifactID: "guava", Version: "32.1.2-jre", Packaging: "jar", Scope: "compile"},
	}, artifacts)
}

func TestTestJarNormalization(t *testing.T) {
	testJar, ok := parseLine("g:a:test-jar:1.0:compile")
	require.True(t, ok)
	jar, ok := parseLine("g:a:jar:tests:1.0:compile")
	require.True(t, ok)

	assert.Equal(t, jar, testJar)
	assert.Equal(t, "a-1.0-tests.jar", testJar.FileName())
	assert.Equal(t, jar.RepositoryPath("/repo"), testJar.RepositoryPath("/repo"))
}

func TestRepositoryPath(t *testing.T) {
	a := ResolvedArtifact{GroupID: "org.scijava", ArtifactID: "scijava-common", Version: "2.97.0", Packaging: "jar"}
	assert.Equal(t, filepath.Join("/m2", "org", "scijava", "scijava-common", "2.97.0", "scijava-common-2.97.0.jar"), a.RepositoryPath("/m2"))

	a.Classifier = "sources"
	assert.Equal(t, "scijava-common-2.97.0-sources.jar", a.FileName())
}

func TestRenderSettings(t *testing.T) {
	dir := t.TempDir()
	netrcPath := filepath.Join(dir, ".netrc")
	require.NoError(t, os.WriteFile(netrcPath, []byte("machine maven.example.com\n  login alice\n  password s3cret\n"), 0600))

	repos := []descriptor.Repository{
		{ID: "private", URL: "https://maven.example.com/releases"},
		{ID: "public", URL: "https://repo.example.org/maven2"},
	}

	data, err := renderSettings(netrcPath, repos)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, "<id>private</id>")
	assert.Contains(t, s, "<username>alice</username>")
	assert.Contains(t, s, "<password>s3cret</password>")
	assert.NotContains(t, s, "public")

	t.Run("missing netrc", func(t *testing.T) {
		data, err := renderSettings(filepath.Join(dir, "nope"), repos)
		require.NoError(t, err)
		assert.Nil(t, data)
	})
}

func fakeMaven(t *testing.T, script string) string {
	if runtime.GOOS == "windows" {
		t.Skip("fake resolver is a shell script")
	}
	p := filepath.Join(t.TempDir(), "mvn")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+script), 0755))
	return p
}

func TestMavenResolve(t *testing.T) {
	ctx := testutil.Context(t)
	e, err := endpoint.Parse("org.scijava:scijava-common:2.97.0")
	require.NoError(t, err)

	argsFile := filepath.Join(t.TempDir(), "args")
	m := &Maven{
		Executable:      fakeMaven(t, "echo \"$@\" > "+argsFile+"\ncat <<'EOF'\n"+report+"EOF\n"),
		LocalRepository: "/tmp/m2",
		ForceUpdate:     true,
	}

	artifacts, err := m.Resolve(ctx, descriptor.Build(e, false))
	require.NoError(t, err)
	assert.Len(t, artifacts, 4)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "-Dmaven.repo.local=/tmp/m2")
	assert.Contains(t, string(args), "-U")
	assert.Contains(t, string(args), "dependency:resolve")
	assert.NotContains(t, string(args), " -o ")
}

func TestMavenResolveFailure(t *testing.T) {
	ctx := testutil.Context(t)
	e, err := endpoint.Parse("g:a")
	require.NoError(t, err)

	m := &Maven{Executable: fakeMaven(t, "echo 'Could not resolve dependencies'\nexit 1\n")}
	_, err = m.Resolve(ctx, descriptor.Build(e, false))
	require.Error(t, err)

	jErr := jgoerrors.Standardize(err)
	assert.Equal(t, jgoerrors.ResolutionFailure, jErr.Code)
	assert.Contains(t, jErr.Log, "Could not resolve dependencies")
	assert.Equal(t, 2, jgoerrors.ExitCode(err))
}

func TestMavenResolveTimeout(t *testing.T) {
	ctx := testutil.Context(t)
	e, err := endpoint.Parse("g:a")
	require.NoError(t, err)

	m := &Maven{
		Executable: fakeMaven(t, "exec sleep 10\n"),
		Timeout:    200 * time.Millisecond,
	}
	start := time.Now()
	_, err = m.Resolve(ctx, descriptor.Build(e, false))
	require.Error(t, err)
	assert.True(t, jgoerrors.HasCode(err, jgoerrors.ResolutionFailure))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestMavenMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	e, err := endpoint.Parse("g:a")
	require.NoError(t, err)

	_, err = (&Maven{}).Resolve(testutil.Context(t), descriptor.Build(e, false))
	assert.True(t, jgoerrors.HasCode(err, jgoerrors.ToolMissing))
}

func TestMavenCredentialsKeepUserSettings(t *testing.T) {
	ctx := testutil.Context(t)
	e, err := endpoint.Parse("g:a")
	require.NoError(t, err)

	dir := t.TempDir()
	netrcPath := filepath.Join(dir, ".netrc")
	require.NoError(t, os.WriteFile(netrcPath, []byte("machine maven.scijava.org login alice password s3cret\n"), 0600))

	argsFile := filepath.Join(dir, "args")
	m := &Maven{
		Executable:   fakeMaven(t, "echo \"$@\" > "+argsFile+"\n"),
		Repositories: []descriptor.Repository{{ID: "scijava.public", URL: "https://maven.scijava.org/content/groups/public"}},
		NetrcPath:    netrcPath,
	}
	_, err = m.Resolve(ctx, descriptor.Build(e, false))
	require.NoError(t, err)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	args := strings.Fields(string(data))
	assert.Contains(t, args, "-gs")
	assert.NotContains(t, args, "-s")
}
