// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"jgo.dev/x/jgo/pkg/descriptor"
	"jgo.dev/x/jgo/pkg/jgoconfig"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/linker"
	"jgo.dev/x/jgo/pkg/mainclass"
	"jgo.dev/x/jgo/pkg/resolver"
	"jgo.dev/x/jgo/pkg/utils"
	"jgo.dev/x/jgo/pkg/workspace"
)

type Launcher struct {
	Stderr, Stdout io.Writer
	Stdin          io.Reader
	ExitFn         func(exitCode int)
	// must contain at least one argument, namely the jgo binary name, similar to os.Args
	OsArgs []string

	// LookPath finds external tools; exec.LookPath if nil
	LookPath func(file string) (string, error)
	// NewResolver builds the resolver for one invocation; a Maven resolver if nil
	NewResolver func(config *jgoconfig.Config, opts Options, mvnPath string) resolver.Resolver
}

// Prepared is a populated workspace ready to launch
type Prepared struct {
	WorkspaceDir string
	MainClass    string
	// FromCache is true if no resolution was needed
	FromCache bool
}

func (l *Launcher) SetOutputStreams(cmd *cobra.Command) {
	cmd.SetOut(l.Stdout)
	cmd.SetErr(l.Stderr)
	cmd.SetIn(l.Stdin)

	lo.ForEach(cmd.Commands(), func(sub *cobra.Command, _ int) {
		l.SetOutputStreams(sub)
	})
}

// Run prepares the workspace of opts.Endpoint and runs its main class,
// returning the exit code of the JVM
func (l *Launcher) Run(ctx context.Context, config *jgoconfig.Config, opts Options) (int, error) {
	tools, err := l.checkTools()
	if err != nil {
		return 0, err
	}

	p, err := l.Prepare(ctx, config, opts, l.resolverFor(config, opts, tools.mvn))
	if err != nil {
		return 0, err
	}
	return l.Launch(ctx, tools.java, p, opts)
}

type toolPaths struct {
	mvn, java string
}

// checkTools fails fast if mvn or java cannot be found
func (l *Launcher) checkTools() (*toolPaths, error) {
	lookPath := lo.Ternary(l.LookPath != nil, l.LookPath, exec.LookPath)

	mvn, err := lookPath(resolver.MavenExecutable)
	if err != nil {
		return nil, jgoerrors.NewToolMissingError(resolver.MavenExecutable, err)
	}
	java, err := lookPath(jgoconfig.JavaExecutable())
	if err != nil {
		return nil, jgoerrors.NewToolMissingError("java", err)
	}
	return &toolPaths{mvn: mvn, java: java}, nil
}

func (l *Launcher) resolverFor(config *jgoconfig.Config, opts Options, mvnPath string) resolver.Resolver {
	if l.NewResolver != nil {
		return l.NewResolver(config, opts, mvnPath)
	}
	return &resolver.Maven{
		Executable:      mvnPath,
		LocalRepository: config.M2RepoPath,
		Repositories:    config.RepositoryList(),
		ForceUpdate:     opts.ForceUpdate,
		Offline:         opts.Offline || config.Settings.Offline,
		Timeout:         config.ResolveTimeout,
		NetrcPath:       config.NetrcPath,
	}
}

// Prepare returns the workspace of opts.Endpoint, building it with r if it
// is not cached. The workspace lock is held only for the duration of Prepare.
func (l *Launcher) Prepare(ctx context.Context, config *jgoconfig.Config, opts Options, r resolver.Resolver) (*Prepared, error) {
	rc, err := NewResolutionContext(config, opts)
	if err != nil {
		return nil, err
	}

	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	entry, err := workspace.New(config.CachePath).Open(ctx, rc.CacheKey, opts.RefreshWorkspace())
	if err != nil {
		return nil, err
	}
	defer entry.Close()

	if entry.Populated {
		slog.Debug("using cached workspace", "path", entry.Path, "mainClass", entry.MainClass)
		return &Prepared{WorkspaceDir: entry.Path, MainClass: entry.MainClass, FromCache: true}, nil
	}

	rc = rc.WithDescriptor(descriptor.Build(rc.Endpoint, opts.ManageDependencies))
	slog.Debug("resolving", "endpoint", rc.Endpoint.String(), "managed", opts.ManageDependencies)
	resolved, err := r.Resolve(ctx, rc.Descriptor)
	if err != nil {
		return nil, err
	}
	rc = rc.WithResolved(resolved)

	staging, cleanup, err := entry.Stage()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Warn("failed to remove staging dir", "dir", staging, "error", err)
		}
	}()

	mainClass, err := l.populate(rc, staging)
	if err != nil {
		return nil, err
	}

	if err := workspace.WriteMetadata(staging, &workspace.Metadata{
		Endpoint:  rc.CacheKey,
		MainClass: mainClass,
		CreatedAt: time.Now().UTC(),
		Artifacts: rc.Resolved,
	}); err != nil {
		return nil, err
	}

	if err := entry.Commit(staging, mainClass); err != nil {
		return nil, err
	}
	return &Prepared{WorkspaceDir: entry.Path, MainClass: mainClass}, nil
}

// populate places the resolved artifacts and additional jars into dir and
// determines the main class
func (l *Launcher) populate(rc ResolutionContext, dir string) (string, error) {
	lnk := linker.New(rc.Config.M2RepoPath, rc.Config.LinkStrategy)
	for _, a := range rc.Resolved {
		if _, err := lnk.Place(a, dir); err != nil {
			return "", err
		}
	}

	for _, jar := range rc.Options.AdditionalJars {
		src, err := utils.ExpandHome(jar)
		if err != nil {
			return "", err
		}
		if src, err = filepath.Abs(src); err != nil {
			return "", err
		}
		if _, err := os.Lstat(filepath.Join(dir, filepath.Base(src))); err == nil {
			return "", jgoerrors.NewUsageError("additional jar %s has the same file name as a jar already in the workspace", jar)
		}
		if _, err := lnk.PlaceFile(src, dir); err != nil {
			return "", err
		}
	}

	primaryJar := mainclass.PrimaryJar(dir, rc.Endpoint.Primary(), rc.Resolved)
	mainClass, err := mainclass.Resolve(rc.Endpoint, primaryJar)
	if err != nil {
		return "", err
	}
	return mainclass.Complete(mainClass, dir)
}

// Launch runs the JVM on a prepared workspace
func (l *Launcher) Launch(ctx context.Context, java string, p *Prepared, opts Options) (int, error) {
	return l.execJava(ctx, java, JavaArgs(p, opts))
}

// JavaArgs builds the JVM command line, excluding the java binary itself
func JavaArgs(p *Prepared, opts Options) []string {
	var args []string
	args = append(args, opts.JvmArgs...)
	args = append(args, "-cp", filepath.Join(p.WorkspaceDir, "*"), p.MainClass)
	args = append(args, opts.ProgramArgs...)
	return args
}

func (l *Launcher) execJava(ctx context.Context, path string, args []string) (int, error) {
	slog.Debug("launching", "java", path, "args", args)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return exitError.ExitCode(), nil
		} else {
			return 0, fmt.Errorf("failed to spawn java subprocess. %w", err)
		}
	}
	return 0, nil
}

// ReportError writes err to the launcher's stderr. The resolver's log is shown
// for resolution failures when verbose; otherwise a hint says how to see it.
func (l *Launcher) ReportError(err error, opts Options) {
	if err == nil {
		return
	}
	jErr := jgoerrors.Standardize(err)
	_, _ = fmt.Fprintf(l.Stderr, "Error: %s\n", jErr.Error())

	if jErr.Code != jgoerrors.ResolutionFailure {
		return
	}
	if opts.Verbosity > 0 && jErr.Log != "" {
		_, _ = fmt.Fprintln(l.Stderr, jErr.Log)
		return
	}
	hint := color.New(color.FgYellow)
	_, _ = hint.Fprintln(l.Stderr, "Re-run with -v to see the output of the resolver")
}
