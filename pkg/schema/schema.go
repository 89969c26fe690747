// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"
)

const APIGroup = "jgo.dev"

// Meta identifies the format of a yaml document written by jgo
type Meta struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

func New(kind, version string) Meta {
	return Meta{APIVersion: APIGroup + "/" + version, Kind: kind}
}

// Check reports every way doc differs from the expected format m
func (m Meta) Check(doc Meta) error {
	var errs []error
	switch {
	case doc.Kind == "":
		errs = append(errs, fmt.Errorf("missing required field 'kind'"))
	case doc.Kind != m.Kind:
		errs = append(errs, fmt.Errorf("unsupported kind %q, expected %q", doc.Kind, m.Kind))
	}

	switch {
	case doc.APIVersion == "":
		errs = append(errs, fmt.Errorf("missing required field 'apiVersion'"))
	case !strings.HasPrefix(doc.APIVersion, APIGroup+"/"):
		errs = append(errs, fmt.Errorf("apiVersion %q is not in group %q", doc.APIVersion, APIGroup))
	case doc.APIVersion != m.APIVersion:
		errs = append(errs, fmt.Errorf("unsupported apiVersion %q, expected %q", doc.APIVersion, m.APIVersion))
	}
	return errors.Join(errs...)
}
