// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package mainclass

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"jgo.dev/x/jgo/pkg/endpoint"
	"jgo.dev/x/jgo/pkg/jgoerrors"
)

const (
	AutocompleteMarker = "@"

	manifestPath       = "META-INF/MANIFEST.MF"
	mainClassAttr      = "Main-Class"
	classSuffix        = ".class"
	jarSuffix          = ".jar"
	jarPathSeparator   = "/"
	classNameSeparator = "."
)

// Resolve determines the entry point of e. An explicit override wins,
// otherwise the Main-Class of primaryJar's manifest is used. The result may
// still carry the autocomplete marker; see Complete.
func Resolve(e endpoint.Endpoint, primaryJar string) (string, error) {
	if m, ok := e.MainClass(); ok {
		slog.Debug("using explicit main class", "mainClass", m)
		return m, nil
	}

	if primaryJar == "" {
		return "", jgoerrors.NewMainClassNotFound(fmt.Errorf("no jar found for %s and no main class given", e.Primary()))
	}
	m, err := ManifestMainClass(primaryJar)
	if err != nil {
		return "", jgoerrors.NewMainClassNotFound(err)
	}
	if m == "" {
		return "", jgoerrors.NewMainClassNotFound(fmt.Errorf("%s has no %s in its manifest; specify one in the endpoint", filepath.Base(primaryJar), mainClassAttr))
	}
	slog.Debug("inferred main class from manifest", "jar", primaryJar, "mainClass", m)
	return m, nil
}

// Complete expands an autocomplete pattern ("@Name") against the classes
// found in the workspace jars. Other values are returned unchanged.
func Complete(mainClass, workspaceDir string) (string, error) {
	pattern, ok := strings.CutPrefix(mainClass, AutocompleteMarker)
	if !ok {
		return mainClass, nil
	}

	classes, err := WorkspaceClasses(workspaceDir)
	if err != nil {
		return "", err
	}
	m, err := Autocomplete(pattern, classes)
	if err != nil {
		return "", err
	}
	slog.Info("autocompleted main class", "pattern", pattern, "mainClass", m)
	return m, nil
}

// Autocomplete picks the first class whose dotted suffix is pattern, or
// failing that, the first class containing pattern
func Autocomplete(pattern string, classes []string) (string, error) {
	if c, ok := lo.Find(classes, func(c string) bool {
		return c == pattern || strings.HasSuffix(c, classNameSeparator+pattern)
	}); ok {
		return c, nil
	}
	if c, ok := lo.Find(classes, func(c string) bool {
		return strings.Contains(c, pattern)
	}); ok {
		return c, nil
	}
	return "", jgoerrors.NewAutocompleteNoMatch(pattern)
}

// WorkspaceClasses lists the classes of every jar in dir, in directory order
// and then in each jar's entry order
func WorkspaceClasses(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var classes []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), jarSuffix) {
			continue
		}
		c, err := JarClasses(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to list classes of %s: %w", e.Name(), err)
		}
		classes = append(classes, c...)
	}
	return classes, nil
}

func JarClasses(jarPath string) ([]string, error) {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return lo.FilterMap(r.File, func(f *zip.File, _ int) (string, bool) {
		name, ok := strings.CutSuffix(f.Name, classSuffix)
		if !ok {
			return "", false
		}
		return strings.ReplaceAll(name, jarPathSeparator, classNameSeparator), true
	}), nil
}

// ManifestMainClass reads the Main-Class attribute of a jar, "" if absent
func ManifestMainClass(jarPath string) (string, error) {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	f, ok := lo.Find(r.File, func(f *zip.File) bool {
		return f.Name == manifestPath
	})
	if !ok {
		return "", nil
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	attrs, err := parseManifest(rc)
	if err != nil {
		return "", err
	}
	return attrs[mainClassAttr], nil
}

// parseManifest reads the main section of a jar manifest. Lines starting
// with a single space continue the previous line.
func parseManifest(r io.Reader) (map[string]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			// end of main section
			break
		}
		if strings.HasPrefix(line, " ") && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	attrs := map[string]string{}
	for _, l := range lines {
		k, v, ok := strings.Cut(l, ":")
		if !ok {
			continue
		}
		attrs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return attrs, nil
}
