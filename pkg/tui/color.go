// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Style names a role in rendered output.
type Style int

const (
	StyleName Style = iota
	StyleValue
	StyleWarn
	StyleError
	StyleDim
)

var styleAttrs = map[Style][]color.Attribute{
	StyleName:  {color.FgCyan, color.Bold},
	StyleValue: {color.FgGreen},
	StyleWarn:  {color.FgYellow},
	StyleError: {color.FgRed},
	StyleDim:   {color.FgHiBlack},
}

var isTerminalFn = term.IsTerminal

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer for output written to f. Colors stay
// off unless enabled is set, NO_COLOR is unset, TERM names a real terminal
// and f is a terminal.
func NewColorizer(enabled bool, f *os.File) Colorizer {
	if !enabled || f == nil {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	if !isTerminalFn(int(f.Fd())) {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(s Style, text string) string {
	attrs, ok := styleAttrs[s]
	if !c.Enabled || !ok {
		return text
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(text)
}
