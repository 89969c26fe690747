// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"jgo.dev/x/jgo/pkg/descriptor"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/utils"
)

const (
	MavenExecutable = "mvn"

	pomFileName      = "pom.xml"
	settingsFileName = "settings.xml"
)

// Maven resolves descriptors by running `mvn dependency:resolve` on a
// synthesized pom and parsing its report
type Maven struct {
	// Executable is the mvn binary; looked up on PATH if empty
	Executable      string
	LocalRepository string
	Repositories    []descriptor.Repository
	ForceUpdate     bool
	Offline         bool
	// Timeout bounds the subprocess; zero means no bound beyond ctx
	Timeout time.Duration
	// NetrcPath is consulted for repository credentials; ignored if missing
	NetrcPath string
}

func (m *Maven) Resolve(ctx context.Context, d *descriptor.Descriptor) ([]ResolvedArtifact, error) {
	executable := m.Executable
	if executable == "" {
		p, err := exec.LookPath(MavenExecutable)
		if err != nil {
			return nil, jgoerrors.NewToolMissingError(MavenExecutable, err)
		}
		executable = p
	}

	dir, cleanup, err := utils.MkdirTemp("", "jgo-resolve-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Warn("failed to remove resolver work dir", "dir", dir, "error", err)
		}
	}()

	args, err := m.prepare(dir, d)
	if err != nil {
		return nil, err
	}

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Dir = dir
	cmd.Stdout = &out
	cmd.Stderr = &out

	slog.Debug("running resolver", "cmd", executable, "args", args)
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, jgoerrors.NewResolutionFailure(fmt.Errorf("resolver did not finish: %w", ctxErr), out.String())
		}
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return nil, jgoerrors.NewResolutionFailure(err, out.String())
		}
		return nil, fmt.Errorf("failed to spawn resolver subprocess. %w", err)
	}

	artifacts, err := ParseReport(&out)
	if err != nil {
		return nil, err
	}
	slog.Debug("resolved artifacts", "count", len(artifacts))
	return artifacts, nil
}

// prepare writes the pom (and global settings, if credentials are known) into dir
// and returns the mvn arguments
func (m *Maven) prepare(dir string, d *descriptor.Descriptor) ([]string, error) {
	pom, err := descriptor.Render(d, m.Repositories)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, pomFileName), pom, 0644); err != nil {
		return nil, err
	}

	args := []string{"-B", "-f", filepath.Join(dir, pomFileName)}

	settings, err := renderSettings(m.NetrcPath, m.Repositories)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		settingsPath := filepath.Join(dir, settingsFileName)
		if err := os.WriteFile(settingsPath, settings, 0600); err != nil {
			return nil, err
		}
		// global settings rank below the user's, whose mirrors and profiles stay in effect
		args = append(args, "-gs", settingsPath)
	}

	if m.LocalRepository != "" {
		args = append(args, "-Dmaven.repo.local="+m.LocalRepository)
	}
	if m.ForceUpdate {
		args = append(args, "-U")
	}
	if m.Offline {
		args = append(args, "-o")
	}
	return append(args, "dependency:resolve"), nil
}
