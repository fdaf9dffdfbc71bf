// Package main provides the pgq CLI.
//
// The CLI supports:
//   - generate: Produce model metadata (tables, column handles, Model methods)
//     from plain Go struct definitions
//   - ping: Verify database connectivity using the configured DSN
//   - config: Show the effective configuration
//   - version: Print version information
//
// generate is typically run during development (often via go:generate) to
// keep model metadata synchronized with struct definitions. ping needs
// database access; generate and config do not.
package main

func main() {
	Execute()
}
