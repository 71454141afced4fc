// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"slices"
	"strings"
)

// Reconstruct removes the described ranges from args and joins what is
// left into a single command line. Arguments listed in skip contribute
// nothing.
//
// Leftovers are re-quoted: embedded double quotes are escaped and any
// leftover containing a space is wrapped in double quotes. An argument
// emptied by removal, or reduced to a bare "-", is dropped. An argument
// that was empty to begin with and had nothing removed is kept as "", so
// the residual still passes it on; a plain space join would lose it.
func Reconstruct(args []string, descs []Descriptor, skip []int) string {
	byIndex := make(map[int][]Descriptor)
	for _, d := range descs {
		byIndex[d.Index] = append(byIndex[d.Index], d)
	}

	var b strings.Builder
	for i, arg := range args {
		if slices.Contains(skip, i) {
			continue
		}
		ds := byIndex[i]
		slices.SortStableFunc(ds, func(a, b Descriptor) int {
			return a.Position - b.Position
		})

		rest := arg
		shift := 0
		for _, d := range ds {
			start := d.Position - shift
			end := start + d.Length
			if start < 0 || end > len(rest) || start > end {
				continue
			}
			rest = rest[:start] + rest[end:]
			shift += d.Length
		}

		if len(ds) > 0 && (rest == "" || rest == "-") {
			continue
		}
		b.WriteString(quote(rest))
		b.WriteByte(' ')
	}
	return strings.TrimSuffix(b.String(), " ")
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	s = strings.ReplaceAll(s, `"`, `\"`)
	if strings.Contains(s, " ") {
		return `"` + s + `"`
	}
	return s
}
