// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/optparse/pkg/codecutil"
	"gopkg.in/yaml.v3"
)

// Format is a schema file encoding.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps "toml", "yaml" or "yml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("unknown schema format %q", s)
}

// FileNames are looked up, in order, by Find.
var FileNames = []string{"optparse.toml", "optparse.yaml", "optparse.yml"}

// ErrNotFound is returned by Find when no schema file exists in the
// directory or any of its parents.
var ErrNotFound = errors.New("no schema file found")

// FormatOf guesses the format from a file name. A trailing ".zst" is
// ignored. Names without a known extension are TOML.
func FormatOf(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	base = strings.TrimSuffix(base, ".zst")
	switch filepath.Ext(base) {
	case ".yaml", ".yml":
		return YAML
	}
	return TOML
}

// Decode parses a document in the given format. Zstd-compressed input is
// decompressed first.
func Decode(data []byte, f Format) (*Document, error) {
	if codecutil.IsZstd(data) {
		var err error
		if data, err = codecutil.ZstdDecompress(data); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
	}

	var doc Document
	switch f {
	case TOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown schema format %v", f)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and decodes the schema file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Find walks from startDir up to the filesystem root and returns the first
// schema file it sees.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Encode writes doc to w.
func Encode(w io.Writer, doc *Document, f Format) error {
	switch f {
	case TOML:
		return toml.NewEncoder(w).Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown schema format %v", f)
}

// Save writes doc to path, choosing the format from the file name and
// compressing when the name ends in ".zst". It refuses to replace an
// existing file unless force is set.
func Save(path string, doc *Document, force bool) error {
	if doc.Version == "" {
		doc.Version = FormatVersion
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, FormatOf(path)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data := buf.Bytes()
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		var err error
		if data, err = codecutil.ZstdCompress(data); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
