// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"
	"io"
	"strings"
)

// AppInfo describes the program in the help header.
type AppInfo struct {
	Name      string
	Version   string
	Copyright string
	Binary    string // name used in the usage line
}

const optionColumn = 30

// Usage returns the usage line, e.g. "usage: tool [options] SRC [DST]",
// passed through Config.UsageLine when set.
func (p *Parser) Usage() string {
	var b strings.Builder
	for _, s := range p.slots {
		if s.Required {
			b.WriteString(" " + s.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", s.Name)
		}
	}
	binary := p.cfg.App.Binary
	if binary == "" {
		binary = p.cfg.App.Name
	}
	line := fmt.Sprintf("usage: %s [options]%s", binary, b.String())
	if p.cfg.UsageLine != nil {
		return p.cfg.UsageLine(line)
	}
	return line
}

// Help renders the full help page.
func (p *Parser) Help() string {
	var b strings.Builder

	app := p.cfg.App
	if strings.TrimSpace(app.Name) != "" {
		b.WriteString(app.Name)
		if strings.TrimSpace(app.Version) != "" {
			b.WriteString(" " + app.Version)
		}
		b.WriteString("\n")
		if strings.TrimSpace(app.Copyright) != "" {
			b.WriteString(app.Copyright + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(p.Usage())
	b.WriteString("\n\n")

	if len(p.slots) > 0 {
		b.WriteString("Values:\n\n")
		for _, s := range p.slots {
			entry := fmt.Sprintf("  %-*s", optionColumn-2, s.Name)
			if s.Required {
				entry += "(required)"
			}
			if s.Description != "" {
				entry += "   " + s.Description
			}
			b.WriteString(strings.TrimRight(entry, " "))
			b.WriteString("\n\n")
		}
	}

	b.WriteString("Options:\n\n")
	entry := optionEntry
	if p.cfg.OptionEntry != nil {
		entry = p.cfg.OptionEntry
	}
	for _, o := range p.options {
		b.WriteString(entry(o))
		b.WriteString("\n\n")
	}

	if p.cfg.Footer != nil {
		b.WriteString(p.cfg.Footer())
		b.WriteString("\n")
	}
	return b.String()
}

// WriteHelp writes the help page to w.
func (p *Parser) WriteHelp(w io.Writer) error {
	_, err := io.WriteString(w, p.Help())
	return err
}

func optionEntry(o *Option) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %-*s", optionColumn-2, o.Flags()))
	b.WriteString(strings.ToUpper(o.Type.String()))
	if o.Required {
		b.WriteString(" (required)")
	}
	if o.Description != "" {
		b.WriteString("   ")
		b.WriteString(o.Description)
	}
	if o.Type.Kind == KindEnum && len(o.Type.Choices) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(o.Type.Choices, "|"))
	}
	if len(o.Aliases) > 0 {
		fmt.Fprintf(&b, " (aliases: --%s)", strings.Join(o.Aliases, ", --"))
	}
	if o.Default != nil {
		fmt.Fprintf(&b, " (default: %s)", FormatValue(o.Default))
	}
	return b.String()
}
