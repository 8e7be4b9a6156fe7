// Package forms validates raw form submissions against declarative schemas.
//
// A Schema is a list of fields, each with ordered rules, plus optional
// cross-field checks. Validation never panics and never returns partially
// bound data: either every rule passes and Result.Data is populated, or
// Result.FieldErrors explains every failure.
package forms

import (
	"math"
	"net/mail"
	"slices"
	"strconv"
	"unicode/utf8"
)

// Values is the raw submission. url.Values satisfies it.
type Values interface {
	Get(key string) string
	Has(key string) bool
}

// FieldErrors maps an error key to its messages in rule order.
type FieldErrors map[string][]string

// Result is the outcome of Schema.Validate.
type Result[T any] struct {
	OK          bool
	Data        T
	FieldErrors FieldErrors
	Message     string
}

// Input is the per-field view rules operate on.
type Input struct {
	Raw     string
	Present bool
	Num     float64
}

// Rule checks one field. A failing shape rule ends evaluation of that field.
type Rule struct {
	Message string
	shape   bool
	check   func(in *Input) bool
}

func Required(msg string) Rule {
	return Rule{Message: msg, shape: true, check: func(in *Input) bool {
		return in.Present && in.Raw != ""
	}}
}

// Number coerces the raw value; the empty string coerces to zero.
func Number(msg string) Rule {
	return Rule{Message: msg, shape: true, check: func(in *Input) bool {
		if in.Raw == "" {
			in.Num = 0
			return true
		}
		f, err := strconv.ParseFloat(in.Raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		in.Num = f
		return true
	}}
}

func GreaterThan(min float64, msg string) Rule {
	return Rule{Message: msg, check: func(in *Input) bool { return in.Num > min }}
}

func OneOf(msg string, options ...string) Rule {
	return Rule{Message: msg, shape: true, check: func(in *Input) bool {
		return slices.Contains(options, in.Raw)
	}}
}

// MinLength counts runes, not bytes.
func MinLength(n int, msg string) Rule {
	return Rule{Message: msg, check: func(in *Input) bool {
		return utf8.RuneCountInString(in.Raw) >= n
	}}
}

// MaxBytes bounds the encoded length, as bcrypt does.
func MaxBytes(n int, msg string) Rule {
	return Rule{Message: msg, check: func(in *Input) bool { return len(in.Raw) <= n }}
}

// Email accepts a bare address only, no display name.
func Email(msg string) Rule {
	return Rule{Message: msg, check: func(in *Input) bool {
		addr, err := mail.ParseAddress(in.Raw)
		return err == nil && addr.Address == in.Raw
	}}
}

// Field reads form value Name and reports errors under Key (Name when empty).
type Field struct {
	Name  string
	Key   string
	Rules []Rule
}

func (f Field) key() string {
	if f.Key != "" {
		return f.Key
	}
	return f.Name
}

// Check is a cross-field constraint over error keys. It runs only when none
// of Fields has failed, and reports under Target.
type Check struct {
	Fields  []string
	Target  string
	Message string
	Valid   func(in map[string]*Input) bool
}

// Equal builds a Check that two fields carry the same raw value.
func Equal(a, b, msg string) Check {
	return Check{
		Fields:  []string{a, b},
		Target:  b,
		Message: msg,
		Valid: func(in map[string]*Input) bool {
			return in[a].Raw == in[b].Raw
		},
	}
}

// Schema binds validated inputs, keyed by error key, into T. Message is
// reported alongside FieldErrors on failure.
type Schema[T any] struct {
	Fields  []Field
	Checks  []Check
	Message string
	Bind    func(in map[string]*Input) T
}

func (s Schema[T]) Validate(values Values) Result[T] {
	inputs := make(map[string]*Input, len(s.Fields))
	errs := FieldErrors{}

	for _, f := range s.Fields {
		in := &Input{Raw: values.Get(f.Name), Present: values.Has(f.Name)}
		inputs[f.key()] = in
		for _, r := range f.Rules {
			if r.check(in) {
				continue
			}
			errs[f.key()] = append(errs[f.key()], r.Message)
			if r.shape {
				break
			}
		}
	}

	for _, c := range s.Checks {
		if slices.ContainsFunc(c.Fields, func(k string) bool { return len(errs[k]) > 0 }) {
			continue
		}
		if !c.Valid(inputs) {
			errs[c.Target] = append(errs[c.Target], c.Message)
		}
	}

	if len(errs) > 0 {
		return Result[T]{FieldErrors: errs, Message: s.Message}
	}
	return Result[T]{OK: true, Data: s.Bind(inputs)}
}
