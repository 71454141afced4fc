// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/optparse/pkg/codecutil"
	"github.com/yeetrun/optparse/pkg/optparse"
)

const copierTOML = `
version = "1.0.0"

[app]
name = "copier"
version = "2.1.0"
binary = "copier"

[settings]
help = true

[[options]]
short = "r"
long = "recursive"
type = "bool"
description = "Copy directories."

[[options]]
long = "exclude"
type = "[]string"
delimiter = ","

[[options]]
short = "j"
long = "jobs"
type = "int"
default = "4"

[[options]]
long = "mode"
type = "enum"
choices = ["fast", "safe"]
aliases = ["speed"]

[[values]]
name = "SRC"
required = true

[[values]]
name = "DST"
`

const copierYAML = `
version: "1.0.0"
app:
  name: copier
  version: 2.1.0
  binary: copier
settings:
  help: true
options:
  - short: r
    long: recursive
    type: bool
    description: Copy directories.
  - long: exclude
    type: "[]string"
    delimiter: ","
  - short: j
    long: jobs
    type: int
    default: "4"
  - long: mode
    type: enum
    choices: [fast, safe]
    aliases: [speed]
values:
  - name: SRC
    required: true
  - name: DST
`

func TestDecodeFormatsAgree(t *testing.T) {
	fromTOML, err := Decode([]byte(copierTOML), TOML)
	if err != nil {
		t.Fatalf("Decode(TOML): %v", err)
	}
	fromYAML, err := Decode([]byte(copierYAML), YAML)
	if err != nil {
		t.Fatalf("Decode(YAML): %v", err)
	}
	if diff := cmp.Diff(fromTOML, fromYAML); diff != "" {
		t.Errorf("TOML and YAML documents differ (-toml +yaml):\n%s", diff)
	}
	if len(fromTOML.Options) != 4 || fromTOML.Options[2].Default != "4" {
		t.Errorf("options = %+v", fromTOML.Options)
	}
}

func TestDecodeZstd(t *testing.T) {
	compressed, err := codecutil.ZstdCompress([]byte(copierTOML))
	if err != nil {
		t.Fatalf("ZstdCompress: %v", err)
	}
	doc, err := Decode(compressed, TOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.App.Name != "copier" {
		t.Errorf("App.Name = %q, want %q", doc.App.Name, "copier")
	}
}

func TestDecodeRejectsVersion(t *testing.T) {
	_, err := Decode([]byte(`version = "2.0.0"`), TOML)
	var verr *VersionError
	if !errors.As(err, &verr) {
		t.Fatalf("Decode error = %v, want *VersionError", err)
	}
	if verr.Version != "2.0.0" {
		t.Errorf("Version = %q", verr.Version)
	}

	if _, err := Decode([]byte("[app]\nversion = \"latest\"\n"), TOML); err == nil {
		t.Errorf("invalid app version accepted")
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"optparse.toml":     TOML,
		"optparse.yaml":     YAML,
		"dir/OPTS.YML":      YAML,
		"optparse.yaml.zst": YAML,
		"schema":            TOML,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		choices []string
		want    optparse.Type
		wantErr bool
	}{
		{name: "", want: optparse.String},
		{name: "int", want: optparse.Int},
		{name: "[]duration", want: optparse.ArrayOf(optparse.Duration)},
		{name: "uuid[]", want: optparse.ArrayOf(optparse.UUID)},
		{name: "enum", choices: []string{"a", "b"}, want: optparse.Enum("a", "b")},
		{name: "enum", wantErr: true},
		{name: "int", choices: []string{"1"}, wantErr: true},
		{name: "complex", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.name, tt.choices)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseType(%q, %v) succeeded", tt.name, tt.choices)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseType(%q): %v", tt.name, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseType(%q) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	want := filepath.Join(root, "a", "optparse.yaml")
	if err := os.WriteFile(want, []byte(copierYAML), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}

	doc, err := Load(got)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if doc.App.Binary != "copier" {
		t.Errorf("App.Binary = %q", doc.App.Binary)
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"optparse.toml", "optparse.yaml", "optparse.yaml.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			doc := Starter("demo")
			if err := Save(path, doc, false); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			if err := Save(path, doc, false); err == nil {
				t.Errorf("Save replaced an existing file without force")
			}
			if err := Save(path, doc, true); err != nil {
				t.Errorf("Save with force: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if diff := cmp.Diff(doc, loaded); diff != "" {
				t.Errorf("document changed on round trip (-saved +loaded):\n%s", diff)
			}
		})
	}
}

func TestEncodeTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Starter("demo"), TOML); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	for _, want := range []string{`version = "1.0.0"`, "[app]", "[[options]]", "[[values]]"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("encoded TOML lacks %q:\n%s", want, buf.String())
		}
	}
}
