package config

// ANSI escape sequences used by the diagnostic renderer.
const (
	AnsiRed   = "\033[0;31m"
	AnsiReset = "\033[0m"
)

// EnvNoColor follows the NO_COLOR convention: https://no-color.org/
const EnvNoColor = "NO_COLOR"

// DeclFileVersion is the current declaration file format version.
const DeclFileVersion = "1"
