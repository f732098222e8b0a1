// Package gitctx locates repository state on disk and reads commit messages
// from git.
//
// [GitDir] and [MergeInProgress] inspect the filesystem directly so that the
// commit-msg hook works without spawning git. [CommitMessages] shells out to
// git log for range linting.
package gitctx
