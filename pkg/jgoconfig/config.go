// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package jgoconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"jgo.dev/x/jgo/pkg/descriptor"
	"jgo.dev/x/jgo/pkg/linker"
	"jgo.dev/x/jgo/pkg/shortcut"
	"jgo.dev/x/jgo/pkg/utils"
)

type Settings struct {
	CacheDir       string `yaml:"cacheDir,omitempty"`
	M2Repo         string `yaml:"m2Repo,omitempty"`
	Links          string `yaml:"links,omitempty"`
	ResolveTimeout string `yaml:"resolveTimeout,omitempty"`
	Offline        bool   `yaml:"offline,omitempty"`
}

type Config struct {
	JgoHomePath string `yaml:"-"`

	Settings Settings `yaml:"settings,omitempty"`
	// id -> url, in declaration order
	Repositories yaml.MapSlice `yaml:"repositories,omitempty"`
	// prefix -> replacement, in declaration order
	Shortcuts yaml.MapSlice `yaml:"shortcuts,omitempty"`

	// dir under which one workspace per endpoint is kept
	CachePath string `yaml:"-"`
	// local maven repository
	M2RepoPath     string          `yaml:"-"`
	LinkStrategy   linker.Strategy `yaml:"-"`
	ResolveTimeout time.Duration   `yaml:"-"`
	NetrcPath      string          `yaml:"-"`
}

func (c *Config) EnsureDirs() error {
	return utils.EnsureDirs(c.JgoHomePath, c.CachePath)
}

func (c *Config) ShortcutList() []shortcut.Shortcut {
	return lo.Map(c.Shortcuts, func(item yaml.MapItem, _ int) shortcut.Shortcut {
		return shortcut.Shortcut{Key: fmt.Sprint(item.Key), Value: fmt.Sprint(item.Value)}
	})
}

func (c *Config) RepositoryList() []descriptor.Repository {
	return lo.Map(c.Repositories, func(item yaml.MapItem, _ int) descriptor.Repository {
		return descriptor.Repository{ID: fmt.Sprint(item.Key), URL: fmt.Sprint(item.Value)}
	})
}

// AddRepository appends a repository, replacing the url of an existing one with the same id
func (c *Config) AddRepository(id, url string) {
	_, i, ok := lo.FindIndexOf(c.Repositories, func(item yaml.MapItem) bool {
		return fmt.Sprint(item.Key) == id
	})
	if ok {
		c.Repositories[i].Value = url
		return
	}
	c.Repositories = append(c.Repositories, yaml.MapItem{Key: id, Value: url})
}

// Loader defers loading the config until command line flags are parsed
type Loader func() (*Config, error)

func Get() (*Config, error) {
	jgoHomePath, err := GetJgoHomePath()
	if err != nil {
		return nil, err
	}
	return GetWithCustomJgoHome(jgoHomePath, false)
}

// GetWithCustomJgoHome loads the config of jgoHomePath. With ignoreFile,
// jgo-config.yaml is not read and only defaults and env vars apply.
func GetWithCustomJgoHome(jgoHomePath string, ignoreFile bool) (*Config, error) {
	config := Config{}

	// jgo-config.yaml is optional
	configFilePath := filepath.Join(jgoHomePath, JgoConfigFileName)
	if !ignoreFile {
		if err := readConfigFile(configFilePath, &config); err != nil {
			return nil, err
		}
	}
	if config.Repositories == nil {
		config.Repositories = yaml.MapSlice{{Key: DefaultRepositoryID, Value: DefaultRepositoryURL}}
	}

	if err := applyEnv(&config, jgoHomePath); err != nil {
		return nil, err
	}
	config.JgoHomePath = jgoHomePath
	return &config, nil
}

func readConfigFile(configFilePath string, config *Config) error {
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%q is directory and not a file", configFilePath)
	}

	bytes, err := os.ReadFile(configFilePath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(bytes, config); err != nil {
		return fmt.Errorf("malformed %s: %w", configFilePath, err)
	}
	return nil
}

func applyEnv(config *Config, jgoHomePath string) error {
	if v, ok := os.LookupEnv(CacheDirEnvVar); ok {
		config.Settings.CacheDir = v
	}
	if v, ok := os.LookupEnv(M2RepoEnvVar); ok {
		config.Settings.M2Repo = v
	}
	if v, ok := os.LookupEnv(LinksEnvVar); ok {
		config.Settings.Links = v
	}
	if v, ok := os.LookupEnv(ResolveTimeoutEnvVar); ok {
		config.Settings.ResolveTimeout = v
	}
	offline, ok, err := utils.BoolEnvVar(OfflineEnvVar)
	if err != nil {
		return err
	}
	if ok {
		config.Settings.Offline = offline
	}

	cachePath := lo.Ternary(config.Settings.CacheDir != "", config.Settings.CacheDir, filepath.Join(jgoHomePath, "cache"))
	if config.CachePath, err = utils.ExpandHome(cachePath); err != nil {
		return err
	}

	m2Repo := config.Settings.M2Repo
	if m2Repo == "" {
		m2Repo = "~/.m2/repository"
	}
	if config.M2RepoPath, err = utils.ExpandHome(m2Repo); err != nil {
		return err
	}

	if config.LinkStrategy, err = linker.ParseStrategy(config.Settings.Links); err != nil {
		return err
	}

	config.ResolveTimeout = DefaultResolveTimeout
	if config.Settings.ResolveTimeout != "" {
		if config.ResolveTimeout, err = time.ParseDuration(config.Settings.ResolveTimeout); err != nil {
			return fmt.Errorf("invalid resolveTimeout: %w", err)
		}
	}

	netrcPath, ok := os.LookupEnv(NetrcEnvVar)
	if !ok {
		netrcPath = "~/.netrc"
	}
	config.NetrcPath, err = utils.ExpandHome(netrcPath)
	return err
}

func GetJgoHomePath() (string, error) {
	if v, ok := os.LookupEnv(JgoHomeEnvVar); ok {
		return v, nil
	}

	return getAppUserDataDirectory("jgo")
}

func getAppUserDataDirectory(appName string) (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, ok := os.LookupEnv("APPDATA")
		if !ok {
			return "", fmt.Errorf("APPDATA environment variable is not set")
		}
		return filepath.Join(dir, appName), nil
	default:
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return filepath.Join(dir, "."+appName), nil
	}
}

// JavaExecutable returns $JAVA_HOME/bin/java if JAVA_HOME is set, or "java"
func JavaExecutable() string {
	if home, ok := os.LookupEnv(JavaHomeEnvVar); ok && home != "" {
		return filepath.Join(home, "bin", lo.Ternary(runtime.GOOS == "windows", "java.exe", "java"))
	}
	return "java"
}
