// Gitfluff is a commit message linter for git hooks and CI.
//
// It checks messages against the Conventional Commits grammar or a custom
// header pattern, rejects excluded content such as AI attribution lines or
// leaked credentials, and can rewrite the message in place with cleanup
// rules, emitting deterministic exit codes.
//
// Usage:
//
//	gitfluff lint .git/COMMIT_EDITMSG          # lint a commit message file
//	gitfluff lint --message "feat: add x"      # lint a literal message
//	gitfluff lint --stdin --write              # clean a message from stdin
//	gitfluff lint --range origin/main..HEAD    # lint every commit in a range
//	gitfluff lint --mbox series.mbox           # lint a format-patch series
//	gitfluff hook install commit-msg --write   # install the commit-msg hook
//
// Configuration is read from .gitfluff.toml (or .gitfluff.yaml) in the
// working directory or any parent.
package main
