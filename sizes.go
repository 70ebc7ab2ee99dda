// Package sizes validates the dimension sequences of array-like arguments
// at call boundaries against declared shape patterns.
//
// A declaration maps parameter names to patterns built from exact sizes,
// named wildcards and at most one "..." run marker:
//
//	m, err := sizes.Compile([]string{"a", "b"}, sizes.Spec{
//		"a": "3,N",
//		"b": "4,4,N",
//	})
//
// Each validation pass checks every declared argument's shape against its
// pattern and requires every occurrence of a wildcard label, across all
// arguments, to observe the same size. All faults of a pass are collected
// into one combined diagnostic.
package sizes

import (
	"fmt"

	"github.com/funvibe/sizes/internal/dims"
	"github.com/funvibe/sizes/internal/matcher"
)

// Spec maps parameter names to pattern text, for example "3,N" or
// "2,...,N,5".
type Spec map[string]string

// PatternSpec is the programmatic equivalent of Spec: elements are
// non-negative ints, wildcard label strings or the Any run marker.
type PatternSpec map[string][]any

// Any is the open-run marker for PatternSpec declarations; it matches zero
// or more unconstrained dimensions.
var Any = dims.Any

// MismatchError is the aggregate validation failure for one call. Its
// Report field carries the structured outcome; Error renders the combined
// diagnostic text.
type MismatchError = matcher.MismatchError

// MultipleEllipsisError reports a pattern declaring more than one run
// marker; it surfaces at declaration time, before any shape is read.
type MultipleEllipsisError = dims.MultipleEllipsisError

// UnknownArgumentError reports a declared name that is not a parameter of
// the target callable; it surfaces at declaration time, before any shape
// is read.
type UnknownArgumentError struct {
	Name string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("sizes: function has no parameter %q", e.Name)
}

// NotShapedError reports an argument that cannot provide an ordered
// sequence of dimension sizes.
type NotShapedError struct {
	Name   string
	Reason string
}

func (e *NotShapedError) Error() string {
	return fmt.Sprintf("sizes: argument %q cannot report a shape: %s", e.Name, e.Reason)
}

// Matcher is a compiled declaration bound to a callable's ordered parameter
// list. It is immutable after Compile and safe for concurrent use; each
// validation pass keeps its own transient state.
type Matcher struct {
	params   []string
	index    map[string]int
	patterns map[string]dims.Pattern
	declared []string // declared names in parameter order
}

// Compile binds a declaration to a callable's parameter names, given in
// signature order. Declared names missing from params and patterns with
// more than one run marker are rejected here, eagerly.
func Compile(params []string, spec Spec) (*Matcher, error) {
	m, err := newMatcher(params, len(spec))
	if err != nil {
		return nil, err
	}
	for name, raw := range spec {
		pattern, err := dims.ParsePattern(raw)
		if err != nil {
			return nil, fmt.Errorf("sizes: pattern for %q: %w", name, err)
		}
		if err := m.declare(name, pattern); err != nil {
			return nil, err
		}
	}
	m.finish()
	return m, nil
}

// CompileValues is Compile for programmatic PatternSpec declarations.
func CompileValues(params []string, spec PatternSpec) (*Matcher, error) {
	m, err := newMatcher(params, len(spec))
	if err != nil {
		return nil, err
	}
	for name, vals := range spec {
		pattern, err := dims.FromValues(vals)
		if err != nil {
			return nil, fmt.Errorf("sizes: pattern for %q: %w", name, err)
		}
		if err := m.declare(name, pattern); err != nil {
			return nil, err
		}
	}
	m.finish()
	return m, nil
}

func newMatcher(params []string, declared int) (*Matcher, error) {
	index := make(map[string]int, len(params))
	for i, p := range params {
		if _, ok := index[p]; ok {
			return nil, fmt.Errorf("sizes: duplicate parameter name %q", p)
		}
		index[p] = i
	}
	return &Matcher{
		params:   params,
		index:    index,
		patterns: make(map[string]dims.Pattern, declared),
	}, nil
}

func (m *Matcher) declare(name string, pattern dims.Pattern) error {
	if _, ok := m.index[name]; !ok {
		return &UnknownArgumentError{Name: name}
	}
	if err := pattern.Validate(); err != nil {
		return fmt.Errorf("sizes: pattern for %q: %w", name, err)
	}
	m.patterns[name] = pattern
	return nil
}

// finish fixes the reporting order of declared names to parameter order so
// diagnostics are deterministic.
func (m *Matcher) finish() {
	for _, p := range m.params {
		if _, ok := m.patterns[p]; ok {
			m.declared = append(m.declared, p)
		}
	}
}

// Params returns the parameter names the matcher was compiled against, in
// signature order.
func (m *Matcher) Params() []string {
	return m.params
}

// Validate checks one call's arguments, given positionally in parameter
// order. Arguments without a declared pattern are ignored. It returns nil
// on acceptance, a *NotShapedError when a checked argument cannot report a
// shape, or a *MismatchError carrying the combined diagnostic.
func (m *Matcher) Validate(args ...any) error {
	if len(args) != len(m.params) {
		return fmt.Errorf("sizes: expected %d arguments, got %d", len(m.params), len(args))
	}
	pass := make([]matcher.Arg, 0, len(m.declared))
	for _, name := range m.declared {
		shape, err := shapeOf(args[m.index[name]])
		if err != nil {
			return &NotShapedError{Name: name, Reason: err.Error()}
		}
		pass = append(pass, matcher.Arg{Name: name, Pattern: m.patterns[name], Actual: shape})
	}
	return m.run(pass)
}

// ValidateShapes checks pre-extracted shapes against the declaration. Every
// declared name must have a shape; names that are not parameters of the
// callable are rejected as unknown.
func (m *Matcher) ValidateShapes(shapes map[string][]int) error {
	for name := range shapes {
		if _, ok := m.index[name]; !ok {
			return &UnknownArgumentError{Name: name}
		}
	}
	pass := make([]matcher.Arg, 0, len(m.declared))
	for _, name := range m.declared {
		shape, ok := shapes[name]
		if !ok {
			return &NotShapedError{Name: name, Reason: "no shape supplied"}
		}
		for _, n := range shape {
			if n < 0 {
				return &NotShapedError{Name: name, Reason: fmt.Sprintf("negative dimension %d", n)}
			}
		}
		pass = append(pass, matcher.Arg{Name: name, Pattern: m.patterns[name], Actual: dims.Shape(shape)})
	}
	return m.run(pass)
}

func (m *Matcher) run(pass []matcher.Arg) error {
	rep := matcher.Match(pass)
	if rep.OK() {
		return nil
	}
	return &MismatchError{Report: rep}
}
