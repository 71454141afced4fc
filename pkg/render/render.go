// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render prints the outcome of a parse as text, JSON or an
// environment file.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/optparse/pkg/env"
	"github.com/yeetrun/optparse/pkg/optparse"
	"github.com/yeetrun/optparse/pkg/tui"
)

type Format int

const (
	Text Format = iota
	JSON
	Env
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "env":
		return Env, nil
	}
	return 0, fmt.Errorf("unknown output format %q", s)
}

// Report is the printable view of a parse.
type Report struct {
	OK         bool          `json:"ok"`
	Options    []OptionEntry `json:"options"`
	Values     []SlotEntry   `json:"values"`
	Unexpected []string      `json:"unexpected,omitempty"`
	Residual   string        `json:"residual"`
	Error      string        `json:"error,omitempty"`
}

type OptionEntry struct {
	Name  string `json:"name"`
	Flags string `json:"flags"`
	Value string `json:"value"`
	Given bool   `json:"given"`
}

type SlotEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Set   bool   `json:"set"`
}

// NewReport collects the options that have a value (given or default),
// every slot and the leftovers of res. err is the validation failure, if
// any.
func NewReport(p *optparse.Parser, res *optparse.Result, err error) *Report {
	rep := &Report{
		OK:       err == nil && !res.HelpRequested,
		Options:  []OptionEntry{},
		Values:   []SlotEntry{},
		Residual: res.Residual(),
	}
	if err != nil {
		rep.Error = err.Error()
	}
	for _, o := range p.Options() {
		v, ok := res.Lookup(o.Name())
		if !ok {
			continue
		}
		rep.Options = append(rep.Options, OptionEntry{
			Name:  o.Name(),
			Flags: o.Flags(),
			Value: optparse.FormatValue(v),
			Given: res.Has(o.Name()),
		})
	}
	for _, v := range res.Values {
		rep.Values = append(rep.Values, SlotEntry{Name: v.Slot.Name, Value: v.Value, Set: v.Set})
	}
	for _, u := range res.Unexpected {
		rep.Unexpected = append(rep.Unexpected, u.String())
	}
	return rep
}

// Write prints rep to w. The colorizer only affects Text.
func Write(w io.Writer, rep *Report, f Format, c tui.Colorizer) error {
	switch f {
	case Text:
		return writeText(w, rep, c)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case Env:
		return writeEnv(w, rep)
	}
	return fmt.Errorf("unknown output format %d", f)
}

func writeText(w io.Writer, rep *Report, c tui.Colorizer) error {
	if rep.Error != "" {
		fmt.Fprintln(w, c.Wrap(tui.StyleError, rep.Error))
		fmt.Fprintln(w)
	}
	if len(rep.Options) > 0 {
		fmt.Fprintln(w, "Options")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, o := range rep.Options {
			source := "default"
			if o.Given {
				source = "given"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Wrap(tui.StyleName, o.Flags), c.Wrap(tui.StyleValue, o.Value), c.Wrap(tui.StyleDim, source))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if len(rep.Values) > 0 {
		fmt.Fprintln(w, "Values")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, v := range rep.Values {
			value := c.Wrap(tui.StyleValue, v.Value)
			if !v.Set {
				value = c.Wrap(tui.StyleDim, "-")
			}
			fmt.Fprintf(tw, "  %s\t%s\n", c.Wrap(tui.StyleName, v.Name), value)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if len(rep.Unexpected) > 0 {
		fmt.Fprintf(w, "Unexpected: %s\n", c.Wrap(tui.StyleWarn, strings.Join(rep.Unexpected, " ")))
	}
	if rep.Residual != "" {
		fmt.Fprintf(w, "Residual: %s\n", rep.Residual)
	}
	return nil
}

// writeEnv prints one KEY=value line per option and slot. Option keys are
// prefixed with OPT_ and slot keys with ARG_.
func writeEnv(w io.Writer, rep *Report) error {
	var vars []env.Var
	for _, o := range rep.Options {
		vars = append(vars, env.Var{Key: env.Key("OPT_", o.Name), Value: o.Value})
	}
	for _, v := range rep.Values {
		if v.Set {
			vars = append(vars, env.Var{Key: env.Key("ARG_", v.Name), Value: v.Value})
		}
	}
	if rep.Residual != "" {
		vars = append(vars, env.Var{Key: "RESIDUAL", Value: rep.Residual})
	}
	return env.Write(w, vars)
}
