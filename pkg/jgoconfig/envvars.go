// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package jgoconfig

const envVarPrefix = "JGO_"

const (
	// JgoHomeEnvVar
	// JGO_HOME is the absolute path to the `jgo` home directory, holding jgo-config.yaml
	// 	Default: ~/.jgo
	JgoHomeEnvVar = envVarPrefix + "HOME"

	// CacheDirEnvVar
	// JGO_CACHE_DIR overrides the directory under which workspaces are created
	CacheDirEnvVar = envVarPrefix + "CACHE_DIR"

	// M2RepoEnvVar
	// M2_REPO overrides the local maven repository the resolver downloads into
	// 	Default: ~/.m2/repository
	M2RepoEnvVar = "M2_REPO"

	// LinksEnvVar
	// JGO_LINKS sets how artifacts are placed into workspaces.
	// 	Possible values: hard soft none auto
	LinksEnvVar = envVarPrefix + "LINKS"

	// LogLevelEnvVar
	// JGO_LOG_LEVEL sets the log level.
	// 	Default: info
	//  Possible values: debug info warn error
	LogLevelEnvVar = envVarPrefix + "LOG_LEVEL"

	// ResolveTimeoutEnvVar
	// JGO_RESOLVE_TIMEOUT bounds how long the external resolver may run, e.g. "10m"
	ResolveTimeoutEnvVar = envVarPrefix + "RESOLVE_TIMEOUT"

	// OfflineEnvVar
	// JGO_OFFLINE makes the resolver work from the local repository only
	OfflineEnvVar = envVarPrefix + "OFFLINE"

	// NetrcEnvVar
	// NETRC overrides the netrc file used for repository credentials
	// 	Default: ~/.netrc
	NetrcEnvVar = "NETRC"

	// JavaHomeEnvVar
	// JAVA_HOME selects the JVM used to launch; falls back to java on PATH
	JavaHomeEnvVar = "JAVA_HOME"
)
