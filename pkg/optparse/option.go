// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"
	"strings"
)

// DefaultDelimiter separates the elements of an array value.
const DefaultDelimiter = ';'

// Option declares a recognized command-line option.
//
// Two options are the same option when both Short and Long match. A zero
// Short or empty Long means the option has no name of that form.
type Option struct {
	Short       rune
	Long        string
	Aliases     []string // additional long names
	Type        Type
	Required    bool
	Delimiter   rune // array element separator, DefaultDelimiter when zero
	MaxElements int  // upper bound on array elements, unlimited when zero
	Default     any
	Description string

	// Set receives the parsed value once the whole command line validated.
	Set func(value any) error
}

// RequiresArgument reports whether the option consumes a value. Scalar
// booleans are switches and never do.
func (o *Option) RequiresArgument() bool {
	return o.Type.Kind != KindBool || o.Type.Array
}

// Equal reports whether o and other name the same option.
func (o *Option) Equal(other *Option) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.Short == other.Short && o.Long == other.Long
}

// Name returns the long name if set, else the short name.
func (o *Option) Name() string {
	if o.Long != "" {
		return o.Long
	}
	if o.Short != 0 {
		return string(o.Short)
	}
	return ""
}

// Flags renders the option the way help lists it, e.g. "-n, --number".
func (o *Option) Flags() string {
	var parts []string
	if o.Short != 0 {
		parts = append(parts, "-"+string(o.Short))
	}
	if o.Long != "" {
		parts = append(parts, "--"+o.Long)
	}
	return strings.Join(parts, ", ")
}

func (o *Option) String() string {
	return o.Name()
}

func (o *Option) delimiter() rune {
	if o.Delimiter == 0 {
		return DefaultDelimiter
	}
	return o.Delimiter
}

func (o *Option) matchesLong(name string) bool {
	if name == "" {
		return false
	}
	if o.Long == name {
		return true
	}
	for _, a := range o.Aliases {
		if a == name {
			return true
		}
	}
	return false
}

// Slot declares a positional value. Slots are filled in the order they
// were added to the Parser.
type Slot struct {
	Name        string
	Required    bool
	Description string

	// Set receives the bound text once the whole command line validated.
	Set func(value string) error
}

// DuplicateOptionError is returned when an option reuses a name that is
// already registered.
type DuplicateOptionError struct {
	Name     string
	Existing *Option
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("option name %q already used by %s", e.Name, e.Existing.Flags())
}
