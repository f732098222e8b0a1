// Package patch extracts commit messages from a patch series in mbox format,
// so a series can be linted before it is sent or applied.
package patch
