// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import "fmt"

// Descriptor locates a token, and any value it consumed, inside the raw
// argument list. Position and Length are byte offsets into Args[Index].
//
// Descriptors are values; WithLengthChangedBy returns a new one.
type Descriptor struct {
	Index    int
	Position int
	Length   int
}

// WithLengthChangedBy returns a copy of d whose length is grown by n.
func (d Descriptor) WithLengthChangedBy(n int) Descriptor {
	d.Length += n
	return d
}

// End returns the offset just past the described range.
func (d Descriptor) End() int {
	return d.Position + d.Length
}

// Overlaps reports whether d and o cover a common byte of the same argument.
func (d Descriptor) Overlaps(o Descriptor) bool {
	if d.Index != o.Index || d.Length == 0 || o.Length == 0 {
		return false
	}
	return d.Position < o.End() && o.Position < d.End()
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%d:[%d,%d)", d.Index, d.Position, d.End())
}
