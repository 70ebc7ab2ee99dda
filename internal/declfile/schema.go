package declfile

// File is the top-level structure of a shape declaration file.
type File struct {
	Version   string     `yaml:"version"`
	Functions []Function `yaml:"functions"`
}

// Function declares one callable: its parameter names in signature order,
// the size patterns for the checked parameters and any recorded calls to
// validate.
type Function struct {
	Name   string            `yaml:"name"`
	Params []string          `yaml:"params"`
	Sizes  map[string]string `yaml:"sizes"`
	Calls  []Call            `yaml:"calls"`
}

// Call is one recorded set of argument shapes for a function, keyed by
// parameter name. Shape values use the "4,4,3" text form.
type Call struct {
	Shapes map[string]string `yaml:"shapes"`
}
