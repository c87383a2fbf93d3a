// Package main hosts the adrtools CLI entrypoint and command graph.
//
// The Cobra command tree turns script exports into normalized cue files,
// merged takes and density curves, and exposes the casting registry and
// speaker tooling. It centralizes configuration resolution and logger setup
// so subcommands only wire components from internal packages.
package main
