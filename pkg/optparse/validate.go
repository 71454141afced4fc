// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"
)

// Validate checks res and returns the first failure found, or nil. The
// checks run in a fixed order: required slots, required options, options
// missing their value, the custom validator and finally unexpected input.
func (p *Parser) Validate(res *Result) *ValidationError {
	for _, v := range res.Values {
		if v.Slot.Required && !v.Set {
			return &ValidationError{
				Kind:    MissingRequiredValue,
				Name:    v.Slot.Name,
				Message: fmt.Sprintf("Required value '%s' is missing.", v.Slot.Name),
			}
		}
	}

	for _, o := range p.options {
		if !o.Required || res.has(o) {
			continue
		}
		return &ValidationError{
			Kind:    MissingRequiredOption,
			Name:    o.Name(),
			Message: fmt.Sprintf("Required option '%s' is missing.", o.Name()),
		}
	}

	for _, occ := range res.Options {
		if occ.HasValue || !occ.Option.RequiresArgument() {
			continue
		}
		return &ValidationError{
			Kind:    MissingArgument,
			Name:    occ.Option.Name(),
			Message: fmt.Sprintf("Option '%s' requires parameter of type '%s'", occ.Option.Name(), occ.Option.Type),
			Err:     ErrNoValue,
		}
	}

	if p.cfg.Validate != nil {
		if err := p.cfg.Validate(res); err != nil {
			return &ValidationError{
				Kind:    CustomValidationFailure,
				Message: err.Error(),
				Err:     err,
			}
		}
	}

	if !p.cfg.AllowUnexpected && len(res.Unexpected) > 0 {
		return &ValidationError{
			Kind:    UnexpectedArguments,
			Message: fmt.Sprintf("Unexpected options detected: %s", res.Residual()),
		}
	}
	return nil
}

func (r *Result) has(o *Option) bool {
	for _, occ := range r.Options {
		if occ.Option.Equal(o) {
			return true
		}
	}
	return false
}
