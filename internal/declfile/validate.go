package declfile

import (
	"fmt"

	"github.com/funvibe/sizes/internal/config"
)

// Validate checks the structural integrity of a declaration file: every
// function needs a name and parameters, parameter names must be unique, and
// every sizes or shapes key must name a declared parameter. Pattern and
// shape text is parsed later, at check time.
func Validate(f *File) error {
	if f.Version != config.DeclFileVersion {
		return fmt.Errorf("unsupported declaration file version %q", f.Version)
	}
	if len(f.Functions) == 0 {
		return fmt.Errorf("declaration file has no functions")
	}

	seen := make(map[string]bool)
	for i := range f.Functions {
		fn := &f.Functions[i]
		if fn.Name == "" {
			return fmt.Errorf("function #%d has no name", i+1)
		}
		if seen[fn.Name] {
			return fmt.Errorf("function %q declared twice", fn.Name)
		}
		seen[fn.Name] = true
		if err := validateFunction(fn); err != nil {
			return fmt.Errorf("function %q: %w", fn.Name, err)
		}
	}
	return nil
}

func validateFunction(fn *Function) error {
	if len(fn.Params) == 0 {
		return fmt.Errorf("no params declared")
	}
	params := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		if p == "" {
			return fmt.Errorf("empty parameter name")
		}
		if params[p] {
			return fmt.Errorf("duplicate parameter %q", p)
		}
		params[p] = true
	}
	if len(fn.Sizes) == 0 {
		return fmt.Errorf("no sizes declared")
	}
	for name := range fn.Sizes {
		if !params[name] {
			return fmt.Errorf("sizes declares unknown parameter %q", name)
		}
	}
	for i, call := range fn.Calls {
		for name := range call.Shapes {
			if !params[name] {
				return fmt.Errorf("call #%d records a shape for unknown parameter %q", i+1, name)
			}
		}
	}
	return nil
}
