// Package config loads and merges gitfluff configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (GITFLUFF_PRESET, GITFLUFF_WRITE, GITFLUFF_AUTOFIX,
//     GITFLUFF_SEPARATION_SEVERITY)
//  3. Config file (.gitfluff.toml, .fluff.toml, .gitfluff.yaml or
//     .gitfluff.yml, searched upward from the working directory)
//  4. The selected preset
//
// Each source is expressed as a [Layer] and merged by [Resolve]. Exclude and
// cleanup rules accumulate across layers; the built-in AI attribution and
// secret tables always come last. [Settings.Options] compiles the result.
package config
