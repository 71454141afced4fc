// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// Kind is the scalar type of an option value.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDuration
	KindEnum
	KindURL
	KindUUID
	KindVersion
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindBool:     "bool",
	KindInt:      "int",
	KindUint:     "uint",
	KindFloat:    "float",
	KindDuration: "duration",
	KindEnum:     "enum",
	KindURL:      "url",
	KindUUID:     "uuid",
	KindVersion:  "version",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name such as "int" or "duration" to a Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Type describes the value an option takes. Choices lists the accepted
// values of a KindEnum option.
type Type struct {
	Kind    Kind
	Array   bool
	Choices []string
}

// Scalar returns t with Array cleared.
func (t Type) Scalar() Type {
	t.Array = false
	return t
}

func (t Type) String() string {
	if t.Array {
		return "[]" + t.Kind.String()
	}
	return t.Kind.String()
}

// Convenience constructors.
var (
	Bool     = Type{Kind: KindBool}
	Int      = Type{Kind: KindInt}
	Uint     = Type{Kind: KindUint}
	Float    = Type{Kind: KindFloat}
	String   = Type{Kind: KindString}
	Duration = Type{Kind: KindDuration}
	URL      = Type{Kind: KindURL}
	UUID     = Type{Kind: KindUUID}
	Version  = Type{Kind: KindVersion}
)

// Enum returns an enumerated type accepting the given choices.
func Enum(choices ...string) Type {
	return Type{Kind: KindEnum, Choices: choices}
}

// ArrayOf returns the array form of t.
func ArrayOf(t Type) Type {
	t.Array = true
	return t
}

// ValueParser converts the text of a single scalar value.
type ValueParser interface {
	ParseValue(text string, t Type) (any, error)
}

// ValueParserFunc adapts a function to ValueParser.
type ValueParserFunc func(text string, t Type) (any, error)

func (f ValueParserFunc) ParseValue(text string, t Type) (any, error) {
	return f(text, t)
}

// DefaultValueParser handles every Kind.
var DefaultValueParser ValueParser = ValueParserFunc(parseScalar)

// ErrNoValue is the cause of a MissingArgument validation error. Converting
// empty text to a URL also reports it.
var ErrNoValue = errors.New("no value")

// ValueError is returned when text cannot be converted to an option's type.
type ValueError struct {
	Text string
	Type Type
	Err  error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", e.Type, e.Text, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func parseScalar(text string, t Type) (any, error) {
	switch t.Kind {
	case KindString:
		return text, nil
	case KindBool:
		return strconv.ParseBool(text)
	case KindInt:
		return strconv.ParseInt(text, 10, 64)
	case KindUint:
		return strconv.ParseUint(text, 10, 64)
	case KindFloat:
		return strconv.ParseFloat(text, 64)
	case KindDuration:
		return time.ParseDuration(text)
	case KindEnum:
		for _, c := range t.Choices {
			if strings.EqualFold(c, text) {
				return c, nil
			}
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(t.Choices, "|"))
	case KindURL:
		u, err := url.Parse(text)
		if err != nil {
			return nil, err
		}
		if text == "" {
			return nil, ErrNoValue
		}
		return u, nil
	case KindUUID:
		return uuid.Parse(text)
	case KindVersion:
		return semver.NewVersion(text)
	default:
		return nil, fmt.Errorf("unsupported kind %s", t.Kind)
	}
}

// Convert parses text for o with vp, splitting arrays on the option
// delimiter. A nil vp means DefaultValueParser.
func Convert(vp ValueParser, o *Option, text string) (any, error) {
	if vp == nil {
		vp = DefaultValueParser
	}
	if !o.Type.Array {
		v, err := vp.ParseValue(text, o.Type)
		if err != nil {
			return nil, &ValueError{Text: text, Type: o.Type, Err: err}
		}
		return v, nil
	}
	n := -1
	if o.MaxElements > 0 {
		n = o.MaxElements
	}
	parts := strings.SplitN(text, string(o.delimiter()), n)
	elem := o.Type.Scalar()
	vals := make([]any, 0, len(parts))
	for _, part := range parts {
		v, err := vp.ParseValue(part, elem)
		if err != nil {
			return nil, &ValueError{Text: part, Type: elem, Err: err}
		}
		vals = append(vals, v)
	}
	return pack(elem.Kind, vals), nil
}

// pack turns converted elements into a typed slice where the kind has a
// natural Go element type. Elements of an unexpected type leave the slice
// as []any.
func pack(k Kind, vals []any) any {
	var out any
	ok := false
	switch k {
	case KindString, KindEnum:
		out, ok = packAs[string](vals)
	case KindBool:
		out, ok = packAs[bool](vals)
	case KindInt:
		out, ok = packAs[int64](vals)
	case KindUint:
		out, ok = packAs[uint64](vals)
	case KindFloat:
		out, ok = packAs[float64](vals)
	case KindDuration:
		out, ok = packAs[time.Duration](vals)
	case KindURL:
		out, ok = packAs[*url.URL](vals)
	case KindUUID:
		out, ok = packAs[uuid.UUID](vals)
	case KindVersion:
		out, ok = packAs[*semver.Version](vals)
	}
	if !ok {
		return vals
	}
	return out
}

func packAs[T any](vals []any) ([]T, bool) {
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		t, ok := v.(T)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}

// FormatValue renders a parsed value the way it would be typed.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ";")
	case fmt.Stringer:
		return v.String()
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, string(DefaultDelimiter))
	}
	return fmt.Sprint(v)
}
