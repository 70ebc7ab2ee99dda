package dims

import (
	"fmt"
	"strconv"
	"strings"
)

// Dim is the interface for all dimension tokens in a shape pattern.
// The set of implementations is closed: Exact, Wild and AnyRun. Consumers
// switch over all three and treat any other value as an impossible state.
type Dim interface {
	String() string
	dim()
}

// Exact matches one dimension of a fixed, non-negative size.
type Exact struct {
	Size int
}

func (Exact) dim() {}

func (e Exact) String() string {
	return strconv.Itoa(e.Size)
}

// Wild matches one dimension and names it. Every occurrence of the same
// label, across all arguments of one validation pass, must observe the
// same size.
type Wild struct {
	Label string
}

func (Wild) dim() {}

func (w Wild) String() string {
	return w.Label
}

// AnyRun matches zero or more unconstrained dimensions. At most one is
// allowed per pattern.
type AnyRun struct{}

func (AnyRun) dim() {}

func (AnyRun) String() string {
	return "..."
}

// Any is the run marker value used in programmatic pattern construction.
var Any = AnyRun{}

// Pattern is an ordered sequence of dimension tokens declared for one
// argument.
type Pattern []Dim

func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = d.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// HasRun reports whether the pattern contains a run marker.
func (p Pattern) HasRun() bool {
	for _, d := range p {
		if _, ok := d.(AnyRun); ok {
			return true
		}
	}
	return false
}

// Split returns the tokens before and after the run marker. When the
// pattern has no marker, prefix is the whole pattern, suffix is empty and
// hasRun is false. Split assumes the pattern already passed Validate.
func (p Pattern) Split() (prefix, suffix Pattern, hasRun bool) {
	for i, d := range p {
		if _, ok := d.(AnyRun); ok {
			return p[:i], p[i+1:], true
		}
	}
	return p, nil, false
}

// Validate rejects patterns with more than one run marker. It runs eagerly
// at declaration time, before any matching.
func (p Pattern) Validate() error {
	runs := 0
	for _, d := range p {
		if _, ok := d.(AnyRun); ok {
			runs++
		}
	}
	if runs > 1 {
		return &MultipleEllipsisError{Pattern: p, Count: runs}
	}
	return nil
}

// FromValues builds a Pattern from a mixed value list: ints become Exact
// tokens, strings become Wild tokens and AnyRun values pass through. Any
// other element type is a declaration error.
func FromValues(vals []any) (Pattern, error) {
	p := make(Pattern, 0, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case int:
			if v < 0 {
				return nil, fmt.Errorf("negative dimension %d at position %d", v, i)
			}
			p = append(p, Exact{Size: v})
		case string:
			if v == "" {
				return nil, fmt.Errorf("empty wildcard label at position %d", i)
			}
			p = append(p, Wild{Label: v})
		case AnyRun:
			p = append(p, v)
		case Dim:
			p = append(p, v)
		default:
			return nil, fmt.Errorf("unsupported pattern element %T at position %d", v, i)
		}
	}
	return p, nil
}

// Shape is an ordered sequence of non-negative dimension sizes observed on
// an actual argument.
type Shape []int

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = strconv.Itoa(n)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// MultipleEllipsisError reports a pattern declaring more than one run
// marker. It is detected before any shape comparison occurs.
type MultipleEllipsisError struct {
	Pattern Pattern
	Count   int
}

func (e *MultipleEllipsisError) Error() string {
	return fmt.Sprintf("only one ellipsis allowed per shape pattern, found %d in %s", e.Count, e.Pattern)
}
