// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

// Token is a classified piece of the raw argument list. The concrete types
// are PositionalToken, LongToken and ShortToken.
type Token interface {
	Descriptor() Descriptor
	token()
}

// PositionalToken is a plain value. Attached is set for the unconsumed tail
// of a "--name=value" argument; attached tails never fill a slot.
type PositionalToken struct {
	Text     string
	Desc     Descriptor
	Attached bool
}

// LongToken is a "--name" option. Desc covers the dashes and the name.
// Assigned reports that the name was followed by '='.
type LongToken struct {
	Name     string
	Desc     Descriptor
	Assigned bool
}

// ShortToken is a single option character out of a "-abc" cluster.
type ShortToken struct {
	Name rune
	Desc Descriptor
}

func (t PositionalToken) Descriptor() Descriptor { return t.Desc }
func (t LongToken) Descriptor() Descriptor       { return t.Desc }
func (t ShortToken) Descriptor() Descriptor      { return t.Desc }

func (PositionalToken) token() {}
func (LongToken) token()       {}
func (ShortToken) token()      {}
