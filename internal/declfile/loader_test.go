package declfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
functions:
  - name: matmul
    params: [a, b]
    sizes:
      a: "M,K"
      b: "K,N"
    calls:
      - shapes:
          a: "3,4"
          b: "4,5"
      - shapes:
          a: "3,4"
          b: "7,5"
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version, "version should default")
	require.Len(t, f.Functions, 1)

	fn := f.Functions[0]
	assert.Equal(t, "matmul", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	assert.Equal(t, "M,K", fn.Sizes["a"])
	require.Len(t, fn.Calls, 2)
	assert.Equal(t, "7,5", fn.Calls[1].Shapes["b"])
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("functions: {not: [valid"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.NoError(t, Validate(f))
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no functions",
			yaml: `version: "1"`,
			want: "no functions",
		},
		{
			name: "unsupported version",
			yaml: "version: \"9\"\nfunctions:\n  - name: f\n    params: [a]\n    sizes: {a: \"1\"}",
			want: "unsupported declaration file version",
		},
		{
			name: "missing name",
			yaml: "functions:\n  - params: [a]\n    sizes: {a: \"1\"}",
			want: "has no name",
		},
		{
			name: "duplicate function",
			yaml: "functions:\n  - name: f\n    params: [a]\n    sizes: {a: \"1\"}\n  - name: f\n    params: [a]\n    sizes: {a: \"1\"}",
			want: "declared twice",
		},
		{
			name: "no params",
			yaml: "functions:\n  - name: f\n    sizes: {a: \"1\"}",
			want: "no params",
		},
		{
			name: "duplicate param",
			yaml: "functions:\n  - name: f\n    params: [a, a]\n    sizes: {a: \"1\"}",
			want: "duplicate parameter",
		},
		{
			name: "no sizes",
			yaml: "functions:\n  - name: f\n    params: [a]",
			want: "no sizes",
		},
		{
			name: "sizes for unknown param",
			yaml: "functions:\n  - name: f\n    params: [a]\n    sizes: {q: \"1\"}",
			want: "unknown parameter \"q\"",
		},
		{
			name: "call shape for unknown param",
			yaml: "functions:\n  - name: f\n    params: [a]\n    sizes: {a: \"1\"}\n    calls:\n      - shapes: {q: \"1\"}",
			want: "unknown parameter \"q\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			err = Validate(f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
