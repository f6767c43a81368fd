// Package assets embeds the default scene script and configuration.
package assets

import _ "embed"

// Scene is the default scene script evaluated at startup.
//
//go:embed scene.lisp
var Scene string

// Config is the default configuration in TOML form. It mirrors
// config.Default.
//
//go:embed facet.toml
var Config []byte
