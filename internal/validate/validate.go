// Package validate turns raw decoded JSON values into well-typed check
// fields. Every validator is a pure function returning a tagged result so
// callers can tell "field not supplied" from "field supplied but malformed"
// and apply required-field or optional-field policy accordingly.
package validate

import (
	"strings"

	"github.com/upwatch/upwatch/internal/domain/check"
)

type State int

const (
	Missing State = iota
	Invalid
	Valid
)

type Field[T any] struct {
	State State
	Value T
}

func (f Field[T]) Ok() bool { return f.State == Valid }

func missing[T any]() Field[T]  { return Field[T]{State: Missing} }
func invalid[T any]() Field[T]  { return Field[T]{State: Invalid} }
func valid[T any](v T) Field[T] { return Field[T]{State: Valid, Value: v} }

// Protocol accepts exactly "http" or "https".
func Protocol(v any) Field[check.Protocol] {
	s, ok := asString(v)
	if !ok {
		return fail[check.Protocol](v)
	}
	switch check.Protocol(s) {
	case check.ProtocolHTTP, check.ProtocolHTTPS:
		return valid(check.Protocol(s))
	}
	return invalid[check.Protocol]()
}

// URL accepts any string with non-blank content. Well-formedness beyond
// that is deliberately not enforced; the probing worker deals with
// unreachable targets the same way as with unresolvable ones.
func URL(v any) Field[string] {
	s, ok := asString(v)
	if !ok {
		return fail[string](v)
	}
	if strings.TrimSpace(s) == "" {
		return invalid[string]()
	}
	return valid(s)
}

var allowedMethods = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "DELETE": {},
}

// Method accepts GET, POST, PUT or DELETE, exact case.
func Method(v any) Field[string] {
	s, ok := asString(v)
	if !ok {
		return fail[string](v)
	}
	if _, found := allowedMethods[s]; !found {
		return invalid[string]()
	}
	return valid(s)
}

// SuccessCodes accepts an array of integer status codes. An empty array is
// accepted; a check with no success codes simply never reports "up".
func SuccessCodes(v any) Field[[]int] {
	if v == nil {
		return missing[[]int]()
	}
	raw, ok := v.([]any)
	if !ok {
		if typed, isTyped := v.([]int); isTyped {
			return valid(typed)
		}
		return invalid[[]int]()
	}
	codes := make([]int, 0, len(raw))
	for _, el := range raw {
		n, isInt := asInt(el)
		if !isInt {
			return invalid[[]int]()
		}
		codes = append(codes, n)
	}
	return valid(codes)
}

// TimeoutSeconds accepts an integer-valued number in the closed range [1,5].
func TimeoutSeconds(v any) Field[int] {
	if v == nil {
		return missing[int]()
	}
	n, ok := asInt(v)
	if !ok {
		return invalid[int]()
	}
	if n < 1 || n > 5 {
		return invalid[int]()
	}
	return valid(n)
}

// CheckID accepts a string of exactly IDLength characters after trimming.
func CheckID(v any) Field[string] {
	s, ok := asString(v)
	if !ok {
		return fail[string](v)
	}
	s = strings.TrimSpace(s)
	if len(s) != check.IDLength {
		return invalid[string]()
	}
	return valid(s)
}

func fail[T any](v any) Field[T] {
	if v == nil {
		return missing[T]()
	}
	return invalid[T]()
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt accepts Go ints and the float64 values encoding/json produces,
// rejecting anything with a fractional part.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
