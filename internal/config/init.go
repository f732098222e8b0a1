package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrExists is returned by Init when the target file is already present.
var ErrExists = errors.New("config file already exists")

const defaultTemplate = `# gitfluff configuration
preset = "conventional"
write = false
autofix = false

[rules]
exit_nonzero_on_rewrite = false
separation_severity = "warning"
block_secrets = true
ai_attribution = true
# single_line = false
# require_body = false

# Replace the preset header pattern. This turns off the built-in
# Conventional Commits structure checks.
# [rules.message]
# pattern = '^(feat|fix|docs|chore)(\(.+\))?: .+$'
# description = "Use one of feat, fix, docs, chore"

# [[rules.excludes]]
# pattern = '(?i)\bwip\b'
# message = "WIP commits are not allowed"

# [[rules.cleanup]]
# find = '(?m)[ \t]+$'
# replace = ''
# description = "Trim trailing whitespace"
`

// Init writes the default configuration to path.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w at %s", ErrExists, path)
	}
	if err := os.WriteFile(path, []byte(defaultTemplate), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
