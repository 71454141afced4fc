// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema describes an option parser in a TOML or YAML document and
// builds an optparse.Parser from it.
package schema

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/optparse/pkg/optparse"
)

const (
	// FormatVersion is written into new documents.
	FormatVersion = "1.0.0"
	// supportedVersions is the range of document versions Validate accepts.
	supportedVersions = "^1"
)

type Document struct {
	Version  string          `toml:"version,omitempty" yaml:"version,omitempty"`
	App      AppDoc          `toml:"app" yaml:"app"`
	Settings SettingsDoc     `toml:"settings" yaml:"settings"`
	Options  []OptionDoc     `toml:"options,omitempty" yaml:"options,omitempty"`
	Values   []PositionalDoc `toml:"values,omitempty" yaml:"values,omitempty"`
}

type AppDoc struct {
	Name      string `toml:"name,omitempty" yaml:"name,omitempty"`
	Version   string `toml:"version,omitempty" yaml:"version,omitempty"`
	Copyright string `toml:"copyright,omitempty" yaml:"copyright,omitempty"`
	Binary    string `toml:"binary,omitempty" yaml:"binary,omitempty"`
}

type SettingsDoc struct {
	AllowUnexpected bool `toml:"allow_unexpected,omitempty" yaml:"allow_unexpected,omitempty"`
	Strict          bool `toml:"strict,omitempty" yaml:"strict,omitempty"`
	Help            bool `toml:"help,omitempty" yaml:"help,omitempty"`
}

type OptionDoc struct {
	Short       string   `toml:"short,omitempty" yaml:"short,omitempty"`
	Long        string   `toml:"long,omitempty" yaml:"long,omitempty"`
	Aliases     []string `toml:"aliases,omitempty" yaml:"aliases,omitempty"`
	Type        string   `toml:"type,omitempty" yaml:"type,omitempty"`
	Choices     []string `toml:"choices,omitempty" yaml:"choices,omitempty"`
	Required    bool     `toml:"required,omitempty" yaml:"required,omitempty"`
	Delimiter   string   `toml:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	MaxElements int      `toml:"max_elements,omitempty" yaml:"max_elements,omitempty"`
	Default     string   `toml:"default,omitempty" yaml:"default,omitempty"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty"`
}

type PositionalDoc struct {
	Name        string `toml:"name" yaml:"name"`
	Required    bool   `toml:"required,omitempty" yaml:"required,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
}

// VersionError is returned for a document whose version is outside the
// supported range.
type VersionError struct {
	Version    string
	Constraint string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("schema version %s is not supported (want %s)", e.Version, e.Constraint)
}

// Validate checks the document version and the application version. Option
// declarations are checked by Build.
func (d *Document) Validate() error {
	if d.Version != "" {
		v, err := semver.NewVersion(d.Version)
		if err != nil {
			return fmt.Errorf("invalid schema version %q: %w", d.Version, err)
		}
		c, err := semver.NewConstraint(supportedVersions)
		if err != nil {
			return err
		}
		if !c.Check(v) {
			return &VersionError{Version: d.Version, Constraint: supportedVersions}
		}
	}
	if d.App.Version != "" {
		if _, err := semver.NewVersion(d.App.Version); err != nil {
			return fmt.Errorf("invalid app version %q: %w", d.App.Version, err)
		}
	}
	return nil
}

// ParseType maps a type name such as "int", "[]string" or "duration[]" to
// an optparse.Type. An empty name is a string. Choices are required for
// "enum" and rejected for every other kind.
func ParseType(name string, choices []string) (optparse.Type, error) {
	name = strings.TrimSpace(name)
	array := false
	switch {
	case strings.HasPrefix(name, "[]"):
		name, array = name[2:], true
	case strings.HasSuffix(name, "[]"):
		name, array = strings.TrimSuffix(name, "[]"), true
	}
	if name == "" {
		name = optparse.KindString.String()
	}
	k, ok := optparse.ParseKind(name)
	if !ok {
		return optparse.Type{}, fmt.Errorf("unknown type %q", name)
	}
	if k == optparse.KindEnum && len(choices) == 0 {
		return optparse.Type{}, fmt.Errorf("enum type needs choices")
	}
	if k != optparse.KindEnum && len(choices) > 0 {
		return optparse.Type{}, fmt.Errorf("choices given for %s type", k)
	}
	return optparse.Type{Kind: k, Array: array, Choices: choices}, nil
}

// Starter returns a small document for a new program.
func Starter(name string) *Document {
	return &Document{
		Version: FormatVersion,
		App: AppDoc{
			Name:    name,
			Version: "0.1.0",
			Binary:  name,
		},
		Settings: SettingsDoc{Help: true},
		Options: []OptionDoc{
			{Short: "v", Long: "verbose", Type: "bool", Description: "Print more output."},
			{Short: "n", Long: "count", Type: "int", Default: "1", Description: "Number of runs."},
		},
		Values: []PositionalDoc{
			{Name: "FILE", Required: true, Description: "Input file."},
		},
	}
}
