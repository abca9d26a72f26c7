package inkling

import _ "embed"

// Version is the library release, read from the VERSION file at build time.
//
//go:embed VERSION
var Version string
