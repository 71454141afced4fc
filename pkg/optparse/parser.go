// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tailscale.com/util/set"
)

// Config controls parsing and validation.
type Config struct {
	// AllowUnexpected accepts unknown options and surplus values.
	AllowUnexpected bool
	// Strict makes Parse return validation failures as errors instead of
	// printing them together with the help page.
	Strict bool
	// GenerateHelp registers -h/--help.
	GenerateHelp bool
	// Output receives help and lenient-mode messages. Defaults to os.Stdout.
	Output io.Writer
	// Values converts option text. Defaults to DefaultValueParser.
	Values ValueParser
	// Validate runs after the built-in checks have passed.
	Validate func(*Result) error
	// App is shown in the help header.
	App AppInfo
	// UsageLine, if set, rewrites the generated usage line.
	UsageLine func(line string) string
	// OptionEntry, if set, renders an option's entry in the help page in
	// place of the default column layout.
	OptionEntry func(*Option) string
	// Footer, if set, is printed after the option list.
	Footer func() string
	// Logf receives trace output about matching decisions.
	Logf func(format string, args ...any)
}

// Parser holds a registry of options and positional slots.
type Parser struct {
	cfg     Config
	options []*Option
	slots   []*Slot
	help    *Option
}

// New returns a Parser with an empty registry.
func New(cfg Config) *Parser {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Values == nil {
		cfg.Values = DefaultValueParser
	}
	p := &Parser{cfg: cfg}
	if cfg.GenerateHelp {
		p.help = &Option{
			Short:       'h',
			Long:        "help",
			Type:        Bool,
			Description: "Display this help page.",
		}
		p.options = append(p.options, p.help)
	}
	return p
}

// Options returns the registered options in registration order.
func (p *Parser) Options() []*Option {
	return p.options
}

// Slots returns the positional slots in declaration order.
func (p *Parser) Slots() []*Slot {
	return p.slots
}

// AddOption registers o. It fails when o has no name or shares a name
// with an option that is already registered.
func (p *Parser) AddOption(o *Option) error {
	if o.Short == 0 && o.Long == "" {
		return errors.New("option needs a short or long name")
	}
	if o.Short == '-' {
		return errors.New("'-' cannot be a short option name")
	}
	for _, name := range append([]string{o.Long}, o.Aliases...) {
		if strings.ContainsAny(name, "= ") || strings.HasPrefix(name, "-") {
			return fmt.Errorf("invalid long option name %q", name)
		}
	}
	for _, existing := range p.options {
		if existing.Equal(o) {
			return &DuplicateOptionError{Name: o.Name(), Existing: existing}
		}
		if o.Short != 0 && existing.Short == o.Short {
			return &DuplicateOptionError{Name: string(o.Short), Existing: existing}
		}
		if existing.matchesLong(o.Long) {
			return &DuplicateOptionError{Name: o.Long, Existing: existing}
		}
		for _, a := range o.Aliases {
			if existing.matchesLong(a) {
				return &DuplicateOptionError{Name: a, Existing: existing}
			}
		}
	}
	p.options = append(p.options, o)
	return nil
}

// AddSlot appends a positional slot.
func (p *Parser) AddSlot(s *Slot) error {
	if s.Name == "" {
		return errors.New("slot needs a name")
	}
	for _, existing := range p.slots {
		if existing.Name == s.Name {
			return fmt.Errorf("slot %q already declared", s.Name)
		}
	}
	p.slots = append(p.slots, s)
	return nil
}

func (p *Parser) logf(format string, args ...any) {
	if p.cfg.Logf != nil {
		p.cfg.Logf(format, args...)
	}
}

func (p *Parser) lookupLong(name string) *Option {
	for _, o := range p.options {
		if o.matchesLong(name) {
			return o
		}
	}
	return nil
}

func (p *Parser) lookupShort(r rune) *Option {
	for _, o := range p.options {
		if o.Short != 0 && o.Short == r {
			return o
		}
	}
	return nil
}

// Parse matches args, validates the result and, when validation passes,
// hands every value to its setter. The boolean reports whether the caller
// should continue: it is false when help was requested or validation
// failed. In strict mode a validation failure is also returned as a
// *ValidationError; otherwise the message and help page are written to
// Config.Output.
func (p *Parser) Parse(args []string) (*Result, bool, error) {
	res := p.Scan(args)
	verr := p.Validate(res)
	if verr != nil && p.cfg.Strict {
		return res, false, verr
	}
	if verr != nil || res.HelpRequested {
		if verr != nil && !res.HelpRequested {
			fmt.Fprintln(p.cfg.Output, verr.Error())
			fmt.Fprintln(p.cfg.Output)
		}
		if err := p.WriteHelp(p.cfg.Output); err != nil {
			return res, false, fmt.Errorf("failed to write help: %w", err)
		}
		return res, false, nil
	}
	if err := p.apply(res); err != nil {
		return res, false, err
	}
	return res, true, nil
}

// Scan runs the matching loop without validating.
func (p *Parser) Scan(args []string) *Result {
	res := &Result{
		Args:     args,
		Values:   make([]SlotValue, len(p.slots)),
		registry: p.options,
	}
	for i, s := range p.slots {
		res.Values[i].Slot = s
	}

	tz := NewTokenizer(args)
	filled := 0
	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		switch tok := tok.(type) {
		case PositionalToken:
			if !tok.Attached && filled < len(res.Values) {
				res.Values[filled].Value = tok.Text
				res.Values[filled].Set = true
				res.Values[filled].Descriptor = tok.Desc
				filled++
				continue
			}
			p.logf("optparse: unexpected value %q at argument %d", tok.Text, tok.Desc.Index)
			res.Unexpected = append(res.Unexpected, Unexpected{Kind: UnexpectedValue, Text: tok.Text, Descriptor: tok.Desc})

		case LongToken:
			o := p.lookupLong(tok.Name)
			if o == nil {
				p.logf("optparse: unknown option --%s", tok.Name)
				res.Unexpected = append(res.Unexpected, Unexpected{Kind: UnexpectedLong, Long: tok.Name, Descriptor: tok.Desc})
				continue
			}
			occ := Occurrence{Option: o, Descriptor: tok.Desc, ValueIndex: -1}
			switch {
			case o.RequiresArgument():
				p.readValue(tz, &occ, tok.Assigned, false)
			case tok.Assigned:
				// A switch given as --name=value takes the value as a bool.
				p.readValue(tz, &occ, true, false)
				if !occ.HasValue {
					occ.Value, occ.HasValue = true, true
				}
			default:
				occ.Value, occ.HasValue = true, true
			}
			p.record(res, occ)

		case ShortToken:
			o := p.lookupShort(tok.Name)
			if o == nil {
				p.logf("optparse: unknown option -%c", tok.Name)
				res.Unexpected = append(res.Unexpected, Unexpected{Kind: UnexpectedShort, Short: tok.Name, Descriptor: tok.Desc})
				continue
			}
			occ := Occurrence{Option: o, Descriptor: tok.Desc, ValueIndex: -1}
			if o.RequiresArgument() {
				p.readValue(tz, &occ, false, true)
			} else {
				occ.Value, occ.HasValue = true, true
			}
			p.record(res, occ)
		}
	}
	res.EscapeIndex = tz.EscapeIndex()
	return res
}

func (p *Parser) record(res *Result, occ Occurrence) {
	if p.help != nil && occ.Option == p.help {
		res.HelpRequested = true
	}
	res.Options = append(res.Options, occ)
}

// readValue fetches and converts the value of occ. The inline remainder of
// the current argument is tried first; when it is empty and not assigned
// the next argument is used. A failed conversion restores the cursor so the
// text is tokenized again, except for an empty assignment whose "=" is
// consumed by the option.
func (p *Parser) readValue(tz *Tokenizer, occ *Occurrence, assigned, short bool) {
	mark := tz.MarkPosition()
	text, ok := tz.ReadUntilTheEndOfString()
	extra := 0
	if assigned {
		extra = 1
	}
	if short && strings.HasPrefix(text, "=") {
		text = text[1:]
		extra, assigned = 1, true
	}

	valueIndex := -1
	if !assigned && text == "" {
		tz.MoveToTheNextString()
		if tz.AtEscapeMarker() {
			ok = false
		} else {
			valueIndex = mark.arg + 1
			text, ok = tz.ReadUntilTheEndOfString()
		}
	}
	if !ok {
		tz.ResetPosition(mark)
		return
	}

	v, err := Convert(p.cfg.Values, occ.Option, text)
	if err != nil {
		p.logf("optparse: %s: %v", occ.Option.Flags(), err)
		if assigned && text == "" {
			// A bare "=" has nothing left to tokenize; it stays with the option.
			occ.Descriptor = occ.Descriptor.WithLengthChangedBy(extra)
			return
		}
		tz.ResetPosition(mark)
		return
	}
	occ.Value, occ.HasValue = v, true
	if valueIndex >= 0 {
		occ.ValueIndex = valueIndex
		return
	}
	occ.Descriptor = occ.Descriptor.WithLengthChangedBy(extra + len(text))
}

// apply hands defaults, option values and slot values to their setters.
func (p *Parser) apply(res *Result) error {
	seen := make(set.Set[*Option])
	for _, occ := range res.Options {
		seen.Add(occ.Option)
	}
	for _, o := range p.options {
		if seen.Contains(o) || o.Default == nil || o.Set == nil {
			continue
		}
		if err := o.Set(o.Default); err != nil {
			return fmt.Errorf("failed to set default of %s: %w", o.Flags(), err)
		}
	}
	for _, occ := range res.Options {
		if occ.Option.Set == nil || !occ.HasValue {
			continue
		}
		if err := occ.Option.Set(occ.Value); err != nil {
			return fmt.Errorf("failed to set %s: %w", occ.Option.Flags(), err)
		}
	}
	for _, v := range res.Values {
		if !v.Set || v.Slot.Set == nil {
			continue
		}
		if err := v.Slot.Set(v.Value); err != nil {
			return fmt.Errorf("failed to set %s: %w", v.Slot.Name, err)
		}
	}
	return nil
}
