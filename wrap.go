package sizes

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Wrap returns a callable with a signature identical to fn that validates
// the declared argument shapes before every invocation. On acceptance the
// arguments and results pass through unchanged. On rejection fn is never
// invoked: when fn's last result is an error, the *MismatchError is
// returned there with the remaining results zeroed; otherwise the wrapper
// panics with the same error value. Either way the error is a plain value
// with no matching machinery attached, so the failure reads from the
// caller's call site.
//
// params names fn's parameters in signature order; reflection cannot
// recover them. Declaration errors (UnknownArgumentError,
// MultipleEllipsisError, malformed patterns) surface here, before any call.
func Wrap[F any](fn F, params []string, spec Spec) (F, error) {
	var zero F
	m, err := Compile(params, spec)
	if err != nil {
		return zero, err
	}
	wrapped, err := m.wrapFunc(fn)
	if err != nil {
		return zero, err
	}
	return wrapped.(F), nil
}

// Shapes is an alias for Wrap.
func Shapes[F any](fn F, params []string, spec Spec) (F, error) {
	return Wrap(fn, params, spec)
}

// MustWrap is Wrap that panics on declaration errors.
func MustWrap[F any](fn F, params []string, spec Spec) F {
	wrapped, err := Wrap(fn, params, spec)
	if err != nil {
		panic(err)
	}
	return wrapped
}

func (m *Matcher) wrapFunc(fn any) (any, error) {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("sizes: cannot wrap %T, not a function", fn)
	}
	if ft.IsVariadic() {
		return nil, fmt.Errorf("sizes: cannot wrap variadic function %T", fn)
	}
	if ft.NumIn() != len(m.params) {
		return nil, fmt.Errorf("sizes: function takes %d arguments but %d parameter names were given",
			ft.NumIn(), len(m.params))
	}

	errPos := -1
	if n := ft.NumOut(); n > 0 && ft.Out(n-1) == errorType {
		errPos = n - 1
	}

	wrapper := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}
		if err := m.Validate(args...); err != nil {
			if errPos < 0 {
				panic(err)
			}
			out := make([]reflect.Value, ft.NumOut())
			for i := 0; i < ft.NumOut(); i++ {
				out[i] = reflect.Zero(ft.Out(i))
			}
			ev := reflect.New(errorType).Elem()
			ev.Set(reflect.ValueOf(err))
			out[errPos] = ev
			return out
		}
		return fv.Call(in)
	})
	return wrapper.Interface(), nil
}
