// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package jgoerrors

import (
	"errors"
	"fmt"
)

const (
	UsageError          = "USAGE_ERROR"
	ToolMissing         = "TOOL_MISSING"
	ResolutionFailure   = "RESOLUTION_FAILURE"
	LinkFailure         = "LINK_FAILURE"
	MainClassNotFound   = "MAIN_CLASS_NOT_FOUND"
	AutocompleteNoMatch = "AUTOCOMPLETE_NO_MATCH"
	UnknownError        = "UNKNOWN_ERROR"
)

const (
	ExitUsage      = 1
	ExitResolution = 2
)

type JgoError struct {
	Code  string
	Cause error

	// Log holds diagnostic output of an external tool, if any
	Log string
}

func (e *JgoError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Cause.Error()
	}
	return e.Code
}

func (e *JgoError) Unwrap() error {
	return e.Cause
}

// Is matches any *JgoError carrying the same code, so callers can write
// errors.Is(err, jgoerrors.New(jgoerrors.UsageError, nil))
func (e *JgoError) Is(target error) bool {
	var t *JgoError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var _ error = (*JgoError)(nil)

func New(code string, cause error) *JgoError {
	return &JgoError{Code: code, Cause: cause}
}

func NewUsageError(format string, a ...any) *JgoError {
	return New(UsageError, fmt.Errorf(format, a...))
}

func NewToolMissingError(tool string, cause error) *JgoError {
	return New(ToolMissing, fmt.Errorf("required tool %q not found: %w", tool, cause))
}

func NewResolutionFailure(cause error, log string) *JgoError {
	return &JgoError{Code: ResolutionFailure, Cause: cause, Log: log}
}

func NewLinkFailure(src, dst string, cause error) *JgoError {
	return New(LinkFailure, fmt.Errorf("could not place %s into %s: %w", src, dst, cause))
}

func NewMainClassNotFound(cause error) *JgoError {
	return New(MainClassNotFound, cause)
}

func NewAutocompleteNoMatch(pattern string) *JgoError {
	return New(AutocompleteNoMatch, fmt.Errorf("no class matching %q", pattern))
}

// HasCode reports whether err wraps a *JgoError with the given code
func HasCode(err error, code string) bool {
	var jErr *JgoError
	if errors.As(err, &jErr) {
		return jErr.Code == code
	}
	return false
}

func Standardize(err error) *JgoError {
	if err == nil {
		return nil
	}

	var jErr *JgoError
	if errors.As(err, &jErr) {
		return jErr
	}

	return New(UnknownError, err)
}

// ExitCode maps an error to the process exit code. Resolution failures exit
// with 2; everything else that reaches the top level exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if HasCode(err, ResolutionFailure) {
		return ExitResolution
	}
	return ExitUsage
}
