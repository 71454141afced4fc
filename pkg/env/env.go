// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package env

import (
	"fmt"
	"io"
	"strings"
)

// Var is one KEY=value line.
type Var struct {
	Key   string
	Value string
}

// Key builds an environment variable name from prefix and name. Letters
// are upper-cased and anything outside [A-Z0-9] becomes '_'.
func Key(prefix, name string) string {
	return prefix + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, name)
}

// Quote single-quotes s for a POSIX shell when it holds characters the
// shell would interpret.
func Quote(s string) string {
	if !strings.ContainsAny(s, " \t\n\"'$\\;`&|<>(){}*?#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Write writes vars as KEY=value lines, skipping empty keys.
func Write(w io.Writer, vars []Var) error {
	for _, v := range vars {
		if v.Key == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", v.Key, Quote(v.Value)); err != nil {
			return fmt.Errorf("failed to write %s: %w", v.Key, err)
		}
	}
	return nil
}
