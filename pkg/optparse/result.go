// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

// Occurrence records one appearance of a registered option.
type Occurrence struct {
	Option     *Option
	Descriptor Descriptor
	Value      any
	HasValue   bool
	// ValueIndex is the index of a separate argument consumed as the
	// value, or -1 when the value was inline or absent.
	ValueIndex int
}

// SlotValue is the state of a positional slot after a parse.
type SlotValue struct {
	Slot       *Slot
	Value      string
	Set        bool
	Descriptor Descriptor
}

// UnexpectedKind classifies an Unexpected entry.
type UnexpectedKind int

const (
	UnexpectedShort UnexpectedKind = iota
	UnexpectedLong
	UnexpectedValue
)

// Unexpected is input that matched no option or slot.
type Unexpected struct {
	Kind       UnexpectedKind
	Short      rune
	Long       string
	Text       string
	Descriptor Descriptor
}

func (u Unexpected) String() string {
	switch u.Kind {
	case UnexpectedShort:
		return "-" + string(u.Short)
	case UnexpectedLong:
		return "--" + u.Long
	}
	return u.Text
}

// Result is the outcome of matching one argument list.
type Result struct {
	Args       []string
	Options    []Occurrence
	Values     []SlotValue
	Unexpected []Unexpected

	// EscapeIndex is the index of the "--" marker, or -1.
	EscapeIndex int
	// HelpRequested is set when the generated help option was given.
	HelpRequested bool

	registry []*Option
}

// Residual rebuilds the part of the command line that no option or slot
// consumed.
func (r *Result) Residual() string {
	var descs []Descriptor
	var skip []int
	if r.EscapeIndex >= 0 {
		skip = append(skip, r.EscapeIndex)
	}
	for _, occ := range r.Options {
		descs = append(descs, occ.Descriptor)
		if occ.ValueIndex >= 0 {
			skip = append(skip, occ.ValueIndex)
		}
	}
	for _, v := range r.Values {
		if v.Set {
			descs = append(descs, v.Descriptor)
		}
	}
	return Reconstruct(r.Args, descs, skip)
}

// option finds a registered option by long name, alias or single-character
// short name.
func (r *Result) option(name string) *Option {
	for _, o := range r.registry {
		if o.matchesLong(name) {
			return o
		}
	}
	for _, o := range r.registry {
		if o.Short != 0 && string(o.Short) == name {
			return o
		}
	}
	return nil
}

// Has reports whether the named option appeared on the command line.
func (r *Result) Has(name string) bool {
	o := r.option(name)
	return o != nil && r.has(o)
}

// Lookup returns the value of the named option: the last parsed
// occurrence, else the option default.
func (r *Result) Lookup(name string) (any, bool) {
	o := r.option(name)
	if o == nil {
		return nil, false
	}
	for i := len(r.Options) - 1; i >= 0; i-- {
		occ := r.Options[i]
		if occ.Option.Equal(o) && occ.HasValue {
			return occ.Value, true
		}
	}
	if o.Default != nil {
		return o.Default, true
	}
	return nil, false
}

// Value returns the text bound to the named slot.
func (r *Result) Value(slot string) (string, bool) {
	for _, v := range r.Values {
		if v.Slot.Name == slot {
			return v.Value, v.Set
		}
	}
	return "", false
}

// Get returns the named option value converted to T.
func Get[T any](r *Result, name string) (T, bool) {
	var zero T
	v, ok := r.Lookup(name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
