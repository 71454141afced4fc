// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"unicode/utf8"

	"github.com/yeetrun/optparse/pkg/optparse"
	"tailscale.com/util/mak"
)

// Values receives what the setters of a built parser were given. It is
// filled only when Parse succeeds.
type Values struct {
	Options map[string]any    // keyed by Option.Name
	Slots   map[string]string // keyed by slot name
}

// Option returns the value stored for an option.
func (v *Values) Option(name string) (any, bool) {
	val, ok := v.Options[name]
	return val, ok
}

// Slot returns the text stored for a positional slot.
func (v *Values) Slot(name string) (string, bool) {
	val, ok := v.Slots[name]
	return val, ok
}

// Build registers every option and slot of doc on a new parser. Settings
// from the document are merged into cfg, and cfg.App is taken from the
// document when the caller left it empty.
func Build(doc *Document, cfg optparse.Config) (*optparse.Parser, *Values, error) {
	cfg.AllowUnexpected = cfg.AllowUnexpected || doc.Settings.AllowUnexpected
	cfg.Strict = cfg.Strict || doc.Settings.Strict
	cfg.GenerateHelp = cfg.GenerateHelp || doc.Settings.Help
	if cfg.App == (optparse.AppInfo{}) {
		cfg.App = optparse.AppInfo{
			Name:      doc.App.Name,
			Version:   doc.App.Version,
			Copyright: doc.App.Copyright,
			Binary:    doc.App.Binary,
		}
	}

	p := optparse.New(cfg)
	vals := &Values{}
	for i, od := range doc.Options {
		o, err := buildOption(od, cfg.Values)
		if err != nil {
			return nil, nil, fmt.Errorf("options[%d]: %w", i, err)
		}
		key := o.Name()
		o.Set = func(v any) error {
			mak.Set(&vals.Options, key, v)
			return nil
		}
		if err := p.AddOption(o); err != nil {
			return nil, nil, fmt.Errorf("options[%d]: %w", i, err)
		}
	}

	for i, pd := range doc.Values {
		name := pd.Name
		s := &optparse.Slot{
			Name:        name,
			Required:    pd.Required,
			Description: pd.Description,
			Set: func(v string) error {
				mak.Set(&vals.Slots, name, v)
				return nil
			},
		}
		if err := p.AddSlot(s); err != nil {
			return nil, nil, fmt.Errorf("values[%d]: %w", i, err)
		}
	}
	return p, vals, nil
}

func buildOption(od OptionDoc, vp optparse.ValueParser) (*optparse.Option, error) {
	typ, err := ParseType(od.Type, od.Choices)
	if err != nil {
		return nil, err
	}
	o := &optparse.Option{
		Long:        od.Long,
		Aliases:     od.Aliases,
		Type:        typ,
		Required:    od.Required,
		MaxElements: od.MaxElements,
		Description: od.Description,
	}
	if od.Short != "" {
		if utf8.RuneCountInString(od.Short) != 1 {
			return nil, fmt.Errorf("short name %q is not a single character", od.Short)
		}
		o.Short, _ = utf8.DecodeRuneInString(od.Short)
	}
	if od.Delimiter != "" {
		if utf8.RuneCountInString(od.Delimiter) != 1 {
			return nil, fmt.Errorf("delimiter %q is not a single character", od.Delimiter)
		}
		o.Delimiter, _ = utf8.DecodeRuneInString(od.Delimiter)
	}
	if od.Default != "" {
		v, err := optparse.Convert(vp, o, od.Default)
		if err != nil {
			return nil, fmt.Errorf("default of %s: %w", o.Flags(), err)
		}
		o.Default = v
	}
	return o, nil
}
