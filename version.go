package stepwise

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the library and CLI version.
var Version = strings.TrimSpace(rawVersion)
