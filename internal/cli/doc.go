// Package cli wires together the Cobra command tree for the gitfluff binary.
//
// It defines the root command and all subcommands (lint, hook, config,
// presets, version), binds flags, layers configuration files, environment
// and flags, runs the linter over one or many messages, and returns
// deterministic exit codes for hooks and CI gating.
package cli
