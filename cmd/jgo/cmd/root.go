// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"jgo.dev/x/jgo/cmd/jgo/cmd/cache"
	"jgo.dev/x/jgo/cmd/jgo/cmd/versions"
	"jgo.dev/x/jgo/pkg/builtincommand"
	"jgo.dev/x/jgo/pkg/jgoconfig"
	"jgo.dev/x/jgo/pkg/jgoerrors"
	"jgo.dev/x/jgo/pkg/jgoversion"
	"jgo.dev/x/jgo/pkg/launcher"
	"jgo.dev/x/jgo/pkg/linker"
	"jgo.dev/x/jgo/pkg/logging"
)

const JgoName = "jgo"

type rootFlags struct {
	verbosity    int
	quiet        bool
	logLevel     string
	ignoreConfig bool

	updateCache         bool
	forceUpdate         bool
	manageDependencies  bool
	offline             bool
	linkType            string
	repositories        []string
	additionalEndpoints []string
	additionalJars      []string
	jvmArgs             []string
}

func (f *rootFlags) options(args []string) launcher.Options {
	opts := launcher.Options{
		AdditionalEndpoints: f.additionalEndpoints,
		AdditionalJars:      f.additionalJars,
		JvmArgs:             f.jvmArgs,
		Verbosity:           f.verbosity,
		Quiet:               f.quiet,
		UpdateCache:         f.updateCache,
		ForceUpdate:         f.forceUpdate,
		ManageDependencies:  f.manageDependencies,
		Offline:             f.offline,
	}
	if len(args) > 0 {
		opts.Endpoint = args[0]
		opts.ProgramArgs = args[1:]
	}
	return opts
}

// loadConfig reads the config and applies the flags that override it
func (f *rootFlags) loadConfig() (*jgoconfig.Config, error) {
	home, err := jgoconfig.GetJgoHomePath()
	if err != nil {
		return nil, err
	}
	config, err := jgoconfig.GetWithCustomJgoHome(home, f.ignoreConfig)
	if err != nil {
		return nil, err
	}

	if f.linkType != "" {
		if config.LinkStrategy, err = linker.ParseStrategy(f.linkType); err != nil {
			return nil, jgoerrors.NewUsageError("--link-type: %s", err)
		}
	}

	for _, r := range f.repositories {
		id, url, ok := strings.Cut(r, "=")
		if !ok || id == "" || url == "" {
			return nil, jgoerrors.NewUsageError("--repository must be of the form id=url, got %q", r)
		}
		config.AddRepository(id, url)
	}
	return config, nil
}

// RootCmd builds the jgo command. Executing it runs the endpoint given as
// first positional argument; everything after the endpoint goes to the program.
func RootCmd(l *launcher.Launcher) (*cobra.Command, error) {
	cmd, _, err := newRootCmd(l)
	return cmd, err
}

func newRootCmd(l *launcher.Launcher) (*cobra.Command, *rootFlags, error) {
	if len(l.OsArgs) == 0 {
		return nil, nil, fmt.Errorf("Launcher.OsArgs must contain at least one entry similar to os.Args")
	}

	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   JgoName + " [flags] <endpoint> [program args...]",
		Short: "Launch Java programs from Maven coordinates",
		Long: `Launch Java programs from Maven coordinates.

An endpoint is one or more coordinates joined with '+':

  groupId:artifactId[:version][:classifier][:mainClass]

The first coordinate is the primary one; its jar's manifest names the main
class unless one is given. A main class starting with '@' is completed
against the classes on the classpath.`,
		Example: `  jgo org.scijava:scijava-common:@ScriptREPL
  jgo -J -Xmx2g net.imagej:imagej+org.scijava:scripting-jython
  jgo -r imagej=https://maven.imagej.net/content/groups/public net.imagej:imagej:2.16.0 --headless`,
		Args:          endpointArgs,
		SilenceErrors: true,
		// usage goes to stderr, see Execute
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(cmd.ErrOrStderr(), logging.Options{
				Level:     flags.logLevel,
				Verbosity: flags.verbosity,
				Quiet:     flags.quiet,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := flags.loadConfig()
			if err != nil {
				return err
			}
			exitCode, err := l.Run(cmd.Context(), config, flags.options(args))
			if err != nil {
				return err
			}
			l.ExitFn(exitCode)
			return nil
		},
	}

	defer l.SetOutputStreams(cmd)
	cmd.SetArgs(l.OsArgs[1:])
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return jgoerrors.NewUsageError("%s", err)
	})

	pf := cmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", "verbose output; shows the resolver's output on failure")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "only log errors")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides "+jgoconfig.LogLevelEnvVar+")")
	pf.BoolVar(&flags.ignoreConfig, "ignore-config", false, "ignore "+jgoconfig.JgoConfigFileName)
	pf.StringVar(&flags.linkType, "link-type", "", "how to place jars into the workspace: "+strategies())
	pf.StringArrayVarP(&flags.repositories, "repository", "r", nil, "add a repository as id=url (repeatable)")

	f := cmd.Flags()
	f.SetInterspersed(false)
	f.BoolVarP(&flags.updateCache, "update-cache", "u", false, "rebuild the cached workspace")
	f.BoolVarP(&flags.forceUpdate, "force-update", "U", false, "force update from remote repositories (implies -u)")
	f.BoolVarP(&flags.manageDependencies, "manage-dependencies", "m", false, "import coordinates as bills of materials to align versions")
	f.BoolVarP(&flags.offline, "offline", "o", false, "do not contact remote repositories")
	f.StringSliceVar(&flags.additionalEndpoints, "additional-endpoints", nil, "endpoints to add to the classpath")
	f.StringArrayVar(&flags.additionalJars, "additional-jars", nil, "local jars to add to the classpath (repeatable)")
	f.StringArrayVarP(&flags.jvmArgs, "jvm-arg", "J", nil, "argument passed to the JVM (repeatable)")

	cmd.AddCommand(
		versions.Cmd(flags.loadConfig),
		cache.Cmd(flags.loadConfig),
	)

	cmd.Version = jgoversion.Get().String()
	cmd.SetVersionTemplate("{{.Version}}")

	return cmd, flags, nil
}

// Execute runs jgo with the launcher's arguments and returns the process exit
// code for anything that did not already exit through the launcher
func Execute(ctx context.Context, l *launcher.Launcher) int {
	cmd, flags, err := newRootCmd(l)
	if err != nil {
		_, _ = fmt.Fprintln(l.Stderr, err.Error())
		return jgoerrors.ExitUsage
	}
	if err := logging.Init(l.Stderr, logging.Options{}); err != nil {
		_, _ = fmt.Fprintln(l.Stderr, err.Error())
		return jgoerrors.ExitUsage
	}

	executed, err := cmd.ExecuteContextC(ctx)
	if err != nil {
		// a failing launch is not a usage problem unless the invocation itself is wrong
		builtin := builtincommand.IsBuiltinCommand(l.OsArgs, flagTakesValue(cmd))
		if executed != nil && (builtin || jgoerrors.HasCode(err, jgoerrors.UsageError)) {
			_, _ = fmt.Fprint(l.Stderr, executed.UsageString())
		}
		l.ReportError(err, flags.options(nil))
		return jgoerrors.ExitCode(err)
	}
	return 0
}

// flagTakesValue reports whether a flag of cmd, given by long name or
// shorthand, consumes the next argument
func flagTakesValue(cmd *cobra.Command) func(string) bool {
	return func(name string) bool {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.PersistentFlags().Lookup(name)
		}
		if f == nil && len(name) == 1 {
			if f = cmd.Flags().ShorthandLookup(name); f == nil {
				f = cmd.PersistentFlags().ShorthandLookup(name)
			}
		}
		return f != nil && f.NoOptDefVal == ""
	}
}

func endpointArgs(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return jgoerrors.NewUsageError("an endpoint is required, see '%s --help'", JgoName)
	}
	return nil
}

func strategies() string {
	return strings.Join(lo.Map(linker.Strategies, func(s linker.Strategy, _ int) string {
		return string(s)
	}), ", ")
}
