// Package schema validates flat event records against an ordered list of
// field rules. Validation stops at the first failing field.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"ivr-event-metrics/internal/events/core/domain"
)

// TimestampLayout is the YYYY-MM-DD HH:MM:SS format used by the platform.
const TimestampLayout = "2006-01-02 15:04:05"

var (
	ErrMissingField = errors.New("missing field")
	ErrWrongType    = errors.New("wrong field type")
)

// FieldError names the offending key. Its message is returned to callers as is.
type FieldError struct {
	Key      string
	Expected string
	Err      error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrWrongType) {
		return fmt.Sprintf("Wrong type for '%s' field: expected %s", e.Key, e.Expected)
	}
	return fmt.Sprintf("Missing '%s' field", e.Key)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Parser converts a decoded JSON value into its typed form.
type Parser struct {
	Expected string
	Parse    func(raw any) (any, error)
}

// Predicate inspects the raw record and the fields parsed so far.
type Predicate func(rec domain.Record, got Values) bool

// Field is one rule. A nil Required means always required; a nil Applies
// means the field is always evaluated.
type Field struct {
	Key      string
	Parser   Parser
	Required Predicate
	Applies  Predicate
	Default  any
}

func (f Field) required(rec domain.Record, got Values) bool {
	return f.Required == nil || f.Required(rec, got)
}

func (f Field) applies(rec domain.Record, got Values) bool {
	return f.Applies == nil || f.Applies(rec, got)
}

// Schema is evaluated in declaration order.
type Schema []Field

// Validate returns the parsed values, or the first *FieldError.
func (s Schema) Validate(rec domain.Record) (Values, error) {
	got := make(Values, len(s))

	for _, f := range s {
		if !f.applies(rec, got) {
			continue
		}

		raw, ok := rec[f.Key]
		if !ok {
			if f.required(rec, got) {
				return nil, &FieldError{Key: f.Key, Err: ErrMissingField}
			}
			if f.Default != nil {
				got[f.Key] = f.Default
			}
			continue
		}

		v, err := f.Parser.Parse(raw)
		if err != nil {
			return nil, &FieldError{Key: f.Key, Expected: f.Parser.Expected, Err: ErrWrongType}
		}
		got[f.Key] = v
	}

	return got, nil
}

// Values holds parsed fields keyed by their wire name.
type Values map[string]any

func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

func (v Values) Time(key string) (time.Time, bool) {
	t, ok := v[key].(time.Time)
	return t, ok
}

func (v Values) Float(key string) (float64, bool) {
	f, ok := v[key].(float64)
	return f, ok
}

// Equals is true once key has been parsed to the given string.
func Equals(key, value string) Predicate {
	return func(_ domain.Record, got Values) bool {
		return got.String(key) == value
	}
}

// Absent is true when key is not in the raw record.
func Absent(key string) Predicate {
	return func(rec domain.Record, _ Values) bool {
		_, ok := rec[key]
		return !ok
	}
}

// Parsed is true when key was parsed earlier in the schema.
func Parsed(key string) Predicate {
	return func(_ domain.Record, got Values) bool {
		return got.Has(key)
	}
}

func NotParsed(key string) Predicate {
	return func(_ domain.Record, got Values) bool {
		return !got.Has(key)
	}
}

// Any combines predicates with OR.
func Any(ps ...Predicate) Predicate {
	return func(rec domain.Record, got Values) bool {
		for _, p := range ps {
			if p(rec, got) {
				return true
			}
		}
		return false
	}
}

var errUnsupported = errors.New("unsupported value")

// String accepts JSON strings and renders numbers and booleans as text.
var String = Parser{
	Expected: "string",
	Parse: func(raw any) (any, error) {
		switch v := raw.(type) {
		case string:
			return v, nil
		case json.Number:
			return v.String(), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(v), nil
		}
		return nil, errUnsupported
	},
}

// Timestamp parses TimestampLayout strings as UTC. The input must match the
// layout exactly: time.Parse alone also accepts fractional seconds.
var Timestamp = Parser{
	Expected: "timestamp formatted YYYY-MM-DD HH:MM:SS",
	Parse: func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, errUnsupported
		}
		t, err := time.Parse(TimestampLayout, s)
		if err != nil {
			return nil, err
		}
		if t.Format(TimestampLayout) != s {
			return nil, errUnsupported
		}
		return t, nil
	},
}

// Number accepts JSON numbers and numeric strings. NaN and infinities are rejected.
var Number = Parser{
	Expected: "number",
	Parse: func(raw any) (any, error) {
		var (
			f   float64
			err error
		)
		switch v := raw.(type) {
		case json.Number:
			f, err = v.Float64()
		case float64:
			f = v
		case string:
			f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
		default:
			err = errUnsupported
		}
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errUnsupported
		}
		return f, nil
	},
}
