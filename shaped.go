package sizes

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/funvibe/sizes/internal/dims"
)

// Shaped is the contract a checked value can implement to report its own
// ordered sequence of dimension sizes.
type Shaped interface {
	Shape() []int
}

// shapeOf extracts a shape from an argument value. Values implementing
// Shaped report their own; otherwise nested slices and arrays are walked by
// reflection, requiring every level to be rectangular. Anything else cannot
// report a shape.
func shapeOf(v any) (dims.Shape, error) {
	if s, ok := v.(Shaped); ok {
		shape := s.Shape()
		out := make(dims.Shape, len(shape))
		for i, n := range shape {
			if n < 0 {
				return nil, fmt.Errorf("negative dimension %d", n)
			}
			out[i] = n
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New("nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("value of type %T has no shape", v)
	}
	return reflectShape(rv, 0)
}

// reflectShape returns the dimension sizes at and below rv. Every sibling
// subtree must report the same sub-shape, so raggedness anywhere in the
// value is detected, not just along the first elements.
func reflectShape(rv reflect.Value, depth int) (dims.Shape, error) {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, nil
	}
	n := rv.Len()
	if n == 0 {
		// Inner extents are unobservable below an empty dimension.
		return dims.Shape{0}, nil
	}

	inner, err := reflectShape(rv.Index(0), depth+1)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		sib, err := reflectShape(rv.Index(i), depth+1)
		if err != nil {
			return nil, err
		}
		if !sameShape(sib, inner) {
			return nil, fmt.Errorf("ragged nesting at dimension %d", depth+1)
		}
	}

	shape := make(dims.Shape, 0, len(inner)+1)
	shape = append(shape, n)
	return append(shape, inner...), nil
}

func sameShape(a, b dims.Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
