// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/yeetrun/optparse/pkg/optparse"
)

func buildCopier(t *testing.T, cfg optparse.Config) (*optparse.Parser, *Values) {
	t.Helper()
	doc, err := Decode([]byte(copierTOML), TOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Output == nil {
		cfg.Output = &bytes.Buffer{}
	}
	p, vals, err := Build(doc, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p, vals
}

func TestBuildParse(t *testing.T) {
	p, vals := buildCopier(t, optparse.Config{Strict: true})
	_, ok, err := p.Parse([]string{"-r", "--exclude=a,b", "--speed", "SAFE", "src", "dst"})
	if err != nil || !ok {
		t.Fatalf("Parse = (%v, %v), want success", ok, err)
	}

	want := map[string]any{
		"recursive": true,
		"exclude":   []string{"a", "b"},
		"jobs":      int64(4),
		"mode":      "safe",
	}
	if !reflect.DeepEqual(vals.Options, want) {
		t.Errorf("Options = %#v, want %#v", vals.Options, want)
	}
	if got, _ := vals.Slot("SRC"); got != "src" {
		t.Errorf("SRC = %q", got)
	}
	if got, _ := vals.Slot("DST"); got != "dst" {
		t.Errorf("DST = %q", got)
	}
}

func TestBuildFailedParseLeavesValuesEmpty(t *testing.T) {
	p, vals := buildCopier(t, optparse.Config{Strict: true})
	if _, ok, err := p.Parse([]string{"-r"}); ok || err == nil {
		t.Fatalf("Parse = (%v, %v), want missing SRC", ok, err)
	}
	if vals.Options != nil || vals.Slots != nil {
		t.Errorf("values filled after failed parse: %+v", vals)
	}
	if _, ok := vals.Option("recursive"); ok {
		t.Errorf("Option(recursive) found")
	}
}

func TestBuildAppInfo(t *testing.T) {
	p, _ := buildCopier(t, optparse.Config{})
	help := p.Help()
	if !strings.HasPrefix(help, "copier 2.1.0\n") {
		t.Errorf("help header = %q", help)
	}
	if !strings.Contains(help, "usage: copier [options] SRC [DST]") {
		t.Errorf("help lacks usage line:\n%s", help)
	}

	p, _ = buildCopier(t, optparse.Config{App: optparse.AppInfo{Binary: "other"}})
	if got := p.Usage(); got != "usage: other [options] SRC [DST]" {
		t.Errorf("Usage() = %q", got)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "long short name",
			doc:  Document{Options: []OptionDoc{{Short: "ab"}}},
			want: "not a single character",
		},
		{
			name: "bad default",
			doc:  Document{Options: []OptionDoc{{Long: "n", Type: "int", Default: "many"}}},
			want: "default of --n",
		},
		{
			name: "bad type",
			doc:  Document{Options: []OptionDoc{{Long: "n", Type: "number"}}},
			want: `unknown type "number"`,
		},
		{
			name: "duplicate option",
			doc:  Document{Options: []OptionDoc{{Long: "n"}, {Short: "x", Long: "n"}}},
			want: "options[1]",
		},
		{
			name: "duplicate value",
			doc:  Document{Values: []PositionalDoc{{Name: "A"}, {Name: "A"}}},
			want: `values[1]: slot "A" already declared`,
		},
		{
			name: "nameless option",
			doc:  Document{Options: []OptionDoc{{Type: "bool"}}},
			want: "needs a short or long name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Build(&tt.doc, optparse.Config{})
			if err == nil {
				t.Fatalf("Build succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Build error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
