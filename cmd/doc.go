// Package cmd implements the command-line interface for the npt tool. It
// provides commands for talking to a running nipart daemon and a stub
// daemon for local development.
//
// The package is organized into several subpackages:
//
//   - mockd: Command for running the stub daemon
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See npt -help for a list of all commands.
package cmd
