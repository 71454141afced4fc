// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func helpParser(t *testing.T) *Parser {
	t.Helper()
	p := New(Config{
		GenerateHelp: true,
		App: AppInfo{
			Name:      "copier",
			Version:   "1.2.0",
			Copyright: "Copyright (c) 2025 AUTHORS",
			Binary:    "copier",
		},
	})
	for _, o := range []*Option{
		{Short: 'n', Long: "number", Type: Int, Required: true, Description: "How many."},
		{Long: "mode", Aliases: []string{"speed"}, Type: Enum("fast", "slow"), Default: "fast", Description: "Output mode."},
		{Short: 't', Long: "tag", Type: ArrayOf(String)},
	} {
		if err := p.AddOption(o); err != nil {
			t.Fatalf("AddOption: %v", err)
		}
	}
	if err := p.AddSlot(&Slot{Name: "SRC", Required: true}); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if err := p.AddSlot(&Slot{Name: "DST", Description: "Target directory."}); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	return p
}

func TestUsage(t *testing.T) {
	p := helpParser(t)
	if got, want := p.Usage(), "usage: copier [options] SRC [DST]"; got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}

	bare := New(Config{App: AppInfo{Name: "tool"}})
	if got, want := bare.Usage(), "usage: tool [options]"; got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}
}

func TestHelp(t *testing.T) {
	want := strings.Join([]string{
		"copier 1.2.0",
		"Copyright (c) 2025 AUTHORS",
		"",
		"usage: copier [options] SRC [DST]",
		"",
		"Values:",
		"",
		"  SRC                         (required)",
		"",
		"  DST                            Target directory.",
		"",
		"Options:",
		"",
		"  -h, --help                  BOOL   Display this help page.",
		"",
		"  -n, --number                INT (required)   How many.",
		"",
		"  --mode                      ENUM   Output mode. [fast|slow] (aliases: --speed) (default: fast)",
		"",
		"  -t, --tag                   []STRING",
		"",
		"",
	}, "\n")
	if diff := cmp.Diff(want, helpParser(t).Help()); diff != "" {
		t.Errorf("Help() mismatch (-want +got):\n%s", diff)
	}
}

func TestHelpWithoutHeader(t *testing.T) {
	p := New(Config{App: AppInfo{Binary: "tool"}})
	got := p.Help()
	if !strings.HasPrefix(got, "usage: tool [options]\n\nOptions:\n\n") {
		t.Errorf("Help() = %q", got)
	}
}

func TestHelpFooter(t *testing.T) {
	p := New(Config{Footer: func() string { return "See the manual." }})
	var buf bytes.Buffer
	if err := p.WriteHelp(&buf); err != nil {
		t.Fatalf("WriteHelp: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "See the manual.\n") {
		t.Errorf("help does not end with footer: %q", buf.String())
	}
}

func TestHelpCustomLines(t *testing.T) {
	p := New(Config{
		App: AppInfo{Binary: "tool"},
		UsageLine: func(line string) string {
			return line + " -- COMMAND..."
		},
		OptionEntry: func(o *Option) string {
			return "* " + o.Flags()
		},
	})
	for _, o := range []*Option{
		{Short: 'v', Long: "verbose", Type: Bool},
		{Long: "count", Type: Int, Description: "ignored by the custom entry"},
	} {
		if err := p.AddOption(o); err != nil {
			t.Fatalf("AddOption: %v", err)
		}
	}

	if got, want := p.Usage(), "usage: tool [options] -- COMMAND..."; got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}
	want := "usage: tool [options] -- COMMAND...\n" +
		"\n" +
		"Options:\n" +
		"\n" +
		"* -v, --verbose\n" +
		"\n" +
		"* --count\n" +
		"\n"
	if diff := cmp.Diff(want, p.Help()); diff != "" {
		t.Errorf("Help() mismatch (-want +got):\n%s", diff)
	}
}
