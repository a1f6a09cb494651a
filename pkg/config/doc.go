// Package config loads scribe's settings.
//
// Settings are layered, each layer overriding the previous one:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/scribe/config.toml or an explicit path
//  3. SCRIBE_* environment variables, SCRIBE_RENDER_WIDTH=60 sets render.width
//  4. overrides passed by the caller, usually the CLI flags that were set
//
// The merged tree is decoded into a Config and validated.
package config
