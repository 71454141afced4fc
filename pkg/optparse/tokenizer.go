// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"strings"
	"unicode/utf8"
)

// EscapeMarker ends option processing. Every argument after it is positional.
const EscapeMarker = "--"

type scanMode uint8

const (
	modeNew   scanMode = iota // at the start of an argument
	modeShort                 // inside a "-abc" cluster
	modeLong                  // after "--name=" of a long option
	modeDone                  // argument fully consumed
)

// Cursor is a snapshot of the tokenizer state. It is returned by
// MarkPosition and restored with ResetPosition.
type Cursor struct {
	arg     int
	pos     int
	mode    scanMode
	escaped bool
	escape  int
}

// Tokenizer walks a raw argument list and produces Tokens. It is not safe
// for concurrent use.
type Tokenizer struct {
	args []string
	cur  Cursor
}

// NewTokenizer returns a Tokenizer positioned at the first argument.
func NewTokenizer(args []string) *Tokenizer {
	return &Tokenizer{
		args: args,
		cur:  Cursor{escape: -1},
	}
}

// Finished reports whether every argument has been visited.
func (t *Tokenizer) Finished() bool {
	return t.cur.arg >= len(t.args)
}

// EscapeIndex returns the argument index of the escape marker, or -1.
func (t *Tokenizer) EscapeIndex() int {
	return t.cur.escape
}

// AtEscapeMarker reports whether the cursor sits at the start of an
// argument that would be recognized as the escape marker.
func (t *Tokenizer) AtEscapeMarker() bool {
	return !t.Finished() &&
		!t.cur.escaped &&
		t.cur.mode == modeNew &&
		t.args[t.cur.arg] == EscapeMarker
}

// MarkPosition snapshots the cursor.
func (t *Tokenizer) MarkPosition() Cursor {
	return t.cur
}

// ResetPosition restores a cursor returned by MarkPosition.
func (t *Tokenizer) ResetPosition(c Cursor) {
	t.cur = c
}

// MoveToTheNextString moves the cursor to the start of the next argument.
func (t *Tokenizer) MoveToTheNextString() {
	t.cur.arg++
	t.cur.pos = 0
	t.cur.mode = modeNew
}

// ReadUntilTheEndOfString returns the rest of the current argument and
// leaves the cursor at its end. It returns "" when the cursor is already at
// the end and false when there are no arguments left.
func (t *Tokenizer) ReadUntilTheEndOfString() (string, bool) {
	if t.Finished() {
		return "", false
	}
	s := t.args[t.cur.arg]
	rest := ""
	if t.cur.pos < len(s) {
		rest = s[t.cur.pos:]
	}
	t.cur.pos = len(s)
	t.cur.mode = modeDone
	return rest, true
}

// Next returns the next token, or false once the arguments are exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	for !t.Finished() {
		s := t.args[t.cur.arg]
		if t.cur.mode == modeNew {
			if tok, ok := t.classify(s); ok {
				return tok, true
			}
			continue
		}
		if t.cur.pos >= len(s) {
			t.MoveToTheNextString()
			continue
		}
		switch t.cur.mode {
		case modeShort:
			return t.short(s), true
		case modeLong:
			d := Descriptor{Index: t.cur.arg, Position: t.cur.pos, Length: len(s) - t.cur.pos}
			tok := PositionalToken{Text: s[t.cur.pos:], Desc: d, Attached: true}
			t.cur.pos = len(s)
			t.cur.mode = modeDone
			return tok, true
		default:
			t.MoveToTheNextString()
		}
	}
	return nil, false
}

// classify applies the start-of-argument rules. It returns false when the
// argument produced no token (the escape marker).
func (t *Tokenizer) classify(s string) (Token, bool) {
	idx := t.cur.arg
	switch {
	case !t.cur.escaped && s == EscapeMarker:
		t.cur.escaped = true
		t.cur.escape = idx
		t.MoveToTheNextString()
		return nil, false

	case t.cur.escaped, s == "-", !strings.HasPrefix(s, "-"):
		t.cur.pos = len(s)
		t.cur.mode = modeDone
		return PositionalToken{Text: s, Desc: Descriptor{Index: idx, Length: len(s)}}, true

	case strings.HasPrefix(s, "--"):
		name, _, assigned := strings.Cut(s[2:], "=")
		tok := LongToken{
			Name:     name,
			Desc:     Descriptor{Index: idx, Length: len(name) + 2},
			Assigned: assigned,
		}
		t.cur.mode = modeLong
		t.cur.pos = len(s)
		if assigned {
			t.cur.pos = len(name) + 3
		}
		return tok, true

	default:
		t.cur.mode = modeShort
		t.cur.pos = 1
		return t.short(s), true
	}
}

func (t *Tokenizer) short(s string) Token {
	r, w := utf8.DecodeRuneInString(s[t.cur.pos:])
	tok := ShortToken{Name: r, Desc: Descriptor{Index: t.cur.arg, Position: t.cur.pos, Length: w}}
	t.cur.pos += w
	return tok
}
