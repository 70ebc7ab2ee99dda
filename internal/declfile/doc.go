// Package declfile loads and validates the YAML declaration files consumed
// by the shapecheck command: per-function parameter lists, size patterns
// and recorded call shapes.
package declfile
