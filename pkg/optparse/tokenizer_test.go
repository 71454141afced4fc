// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func drain(tz *Tokenizer) []Token {
	var toks []Token
	for {
		tok, ok := tz.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestTokenizerClassification(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []Token
	}{
		{
			name: "single dash is positional",
			args: []string{"-"},
			want: []Token{PositionalToken{Text: "-", Desc: Descriptor{Index: 0, Position: 0, Length: 1}}},
		},
		{
			name: "long name",
			args: []string{"--verbose"},
			want: []Token{LongToken{Name: "verbose", Desc: Descriptor{Index: 0, Position: 0, Length: 9}}},
		},
		{
			name: "long name with unread assignment",
			args: []string{"--long=val"},
			want: []Token{
				LongToken{Name: "long", Desc: Descriptor{Index: 0, Position: 0, Length: 6}, Assigned: true},
				PositionalToken{Text: "val", Desc: Descriptor{Index: 0, Position: 7, Length: 3}, Attached: true},
			},
		},
		{
			name: "long name with empty assignment",
			args: []string{"--long="},
			want: []Token{LongToken{Name: "long", Desc: Descriptor{Index: 0, Position: 0, Length: 6}, Assigned: true}},
		},
		{
			name: "short cluster",
			args: []string{"-abc"},
			want: []Token{
				ShortToken{Name: 'a', Desc: Descriptor{Index: 0, Position: 1, Length: 1}},
				ShortToken{Name: 'b', Desc: Descriptor{Index: 0, Position: 2, Length: 1}},
				ShortToken{Name: 'c', Desc: Descriptor{Index: 0, Position: 3, Length: 1}},
			},
		},
		{
			name: "multibyte short name",
			args: []string{"-é"},
			want: []Token{ShortToken{Name: 'é', Desc: Descriptor{Index: 0, Position: 1, Length: 2}}},
		},
		{
			name: "plain and empty values",
			args: []string{"plain", ""},
			want: []Token{
				PositionalToken{Text: "plain", Desc: Descriptor{Index: 0, Position: 0, Length: 5}},
				PositionalToken{Text: "", Desc: Descriptor{Index: 1, Position: 0, Length: 0}},
			},
		},
		{
			name: "escape marker",
			args: []string{"-a", "--", "-b", "--c", "--"},
			want: []Token{
				ShortToken{Name: 'a', Desc: Descriptor{Index: 0, Position: 1, Length: 1}},
				PositionalToken{Text: "-b", Desc: Descriptor{Index: 2, Position: 0, Length: 2}},
				PositionalToken{Text: "--c", Desc: Descriptor{Index: 3, Position: 0, Length: 3}},
				PositionalToken{Text: "--", Desc: Descriptor{Index: 4, Position: 0, Length: 2}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := drain(NewTokenizer(tt.args))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizerEscapeIndex(t *testing.T) {
	tz := NewTokenizer([]string{"x", "--", "--"})
	if tz.EscapeIndex() != -1 {
		t.Fatalf("EscapeIndex before scan = %d, want -1", tz.EscapeIndex())
	}
	drain(tz)
	if got := tz.EscapeIndex(); got != 1 {
		t.Errorf("EscapeIndex = %d, want 1", got)
	}
	if !tz.Finished() {
		t.Errorf("Finished = false after draining")
	}
}

func TestTokenizerReadUntilTheEndOfString(t *testing.T) {
	tz := NewTokenizer([]string{"-n123", "x"})
	tok, ok := tz.Next()
	if !ok {
		t.Fatalf("Next returned no token")
	}
	if got, want := tok, Token(ShortToken{Name: 'n', Desc: Descriptor{Index: 0, Position: 1, Length: 1}}); got != want {
		t.Fatalf("Next = %#v, want %#v", got, want)
	}

	steps := []struct {
		move   bool
		want   string
		wantOK bool
	}{
		{want: "123", wantOK: true},
		{want: "", wantOK: true},
		{move: true, want: "x", wantOK: true},
		{move: true, want: "", wantOK: false},
	}
	for i, step := range steps {
		if step.move {
			tz.MoveToTheNextString()
		}
		got, ok := tz.ReadUntilTheEndOfString()
		if got != step.want || ok != step.wantOK {
			t.Errorf("step %d: ReadUntilTheEndOfString = (%q, %v), want (%q, %v)", i, got, ok, step.want, step.wantOK)
		}
	}
}

func TestTokenizerMarkAndReset(t *testing.T) {
	tz := NewTokenizer([]string{"-ab", "c"})
	if _, ok := tz.Next(); !ok {
		t.Fatalf("Next returned no token")
	}
	mark := tz.MarkPosition()
	tz.MoveToTheNextString()
	if got, _ := tz.ReadUntilTheEndOfString(); got != "c" {
		t.Fatalf("ReadUntilTheEndOfString = %q, want %q", got, "c")
	}
	tz.ResetPosition(mark)

	want := []Token{
		ShortToken{Name: 'b', Desc: Descriptor{Index: 0, Position: 2, Length: 1}},
		PositionalToken{Text: "c", Desc: Descriptor{Index: 1, Position: 0, Length: 1}},
	}
	if diff := cmp.Diff(want, drain(tz)); diff != "" {
		t.Errorf("tokens after reset mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizerAtEscapeMarker(t *testing.T) {
	tz := NewTokenizer([]string{"--", "--"})
	if !tz.AtEscapeMarker() {
		t.Fatalf("AtEscapeMarker = false at first marker")
	}
	tok, ok := tz.Next()
	if !ok {
		t.Fatalf("Next returned no token")
	}
	if _, isPos := tok.(PositionalToken); !isPos {
		t.Fatalf("second marker = %T, want PositionalToken", tok)
	}
	if tz.AtEscapeMarker() {
		t.Errorf("AtEscapeMarker = true after the marker was consumed")
	}
}
