// Package configs provides embedded configuration templates for grounder.
//
// Templates are embedded at build time with go:embed so they are available
// in every distribution (source builds and binary releases). The default
// evidence source set is used when no sources config exists on disk yet,
// and written out by `grounder init`.
package configs

import _ "embed"

// DefaultSourcesConfig is the built-in curated evidence source set.
// Used as the fallback when paths.sources_config does not exist or fails
// to parse, and as the template written by `grounder init`.
//
//go:embed evidence_sources.yaml
var DefaultSourcesConfig string
