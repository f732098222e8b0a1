// Package preset defines the named rule bundles selectable with --preset
// or the preset key of a configuration file.
package preset
