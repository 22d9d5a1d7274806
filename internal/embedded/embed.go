// Package embedded ships the locale registry inside the binary. The registry
// defines the default universe of supported locales, their canonical merge
// order, and which locale is primary.
package embedded

import (
	"embed"
)

// FS embeds the locale registry at build time.
//
//go:embed locales.yaml
var FS embed.FS
