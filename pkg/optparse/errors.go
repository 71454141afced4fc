// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import "fmt"

// ErrorKind classifies a ValidationError.
type ErrorKind int

const (
	MissingRequiredValue ErrorKind = iota + 1
	MissingRequiredOption
	MissingArgument
	CustomValidationFailure
	UnexpectedArguments
)

func (k ErrorKind) String() string {
	switch k {
	case MissingRequiredValue:
		return "missing required value"
	case MissingRequiredOption:
		return "missing required option"
	case MissingArgument:
		return "missing argument"
	case CustomValidationFailure:
		return "custom validation failure"
	case UnexpectedArguments:
		return "unexpected arguments"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ValidationError is the single failure reported for a parse.
type ValidationError struct {
	Kind    ErrorKind
	Name    string // slot or option the failure is about, if any
	Message string // user-facing message
	Err     error  // underlying error from a custom validator
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
