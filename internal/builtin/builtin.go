package builtin

// Exclude is an uncompiled exclude rule.
type Exclude struct {
	Pattern string
	Message string
}

// Cleanup is an uncompiled cleanup rule.
type Cleanup struct {
	Find        string
	Replace     string
	Description string
}

var aiExcludes = []Exclude{
	{
		Pattern: `(?mi)^Co-Authored-By:.*(?:Claude|Anthropic|ChatGPT|GPT|OpenAI).*$`,
		Message: "Remove AI co-author attribution lines",
	},
	{
		Pattern: `🤖 Generated with`,
		Message: "Remove AI generation notices from commit messages",
	},
}

// The order matters: the block rule must run before the single line rules
// and the blank line trims must run last.
var aiCleanups = []Cleanup{
	{
		Find:        `(?ims)\n?\s*(?:🤖\s*)?Generated with.*?(?:Co-Authored-By:.*(?:Claude|Anthropic).*(?:\n\s*<[^>\n]+>)?)+\s*`,
		Replace:     "\n",
		Description: "Remove Claude Code attribution block",
	},
	{
		Find:        `(?m)^.*🤖 Generated with.*\n?`,
		Description: "Remove AI generation banner",
	},
	{
		Find:        `(?mi)^Generated with Claude.*\n?`,
		Description: "Remove plain Claude generation banner",
	},
	{
		Find:        `(?mi)^Co-Authored-By:.*(?:Claude|Anthropic).*\n?`,
		Description: "Drop Co-Authored-By lines referencing AI assistants",
	},
	{
		Find:        `(?mi)^-\s*Claude.*\n?`,
		Description: "Remove Claude bullet entries",
	},
	{
		Find:        `(?s)\A\s*\n+`,
		Description: "Trim leading blank lines introduced by cleanup",
	},
	{
		Find:        `(?s)\n\s*\n\z`,
		Replace:     "\n",
		Description: "Trim trailing blank lines introduced by cleanup",
	},
	{
		Find:        `\n{3,}`,
		Replace:     "\n\n",
		Description: "Collapse excessive blank lines",
	},
}

// secretExcludes are heuristics for credentials pasted into a message.
// Every match blocks the commit, so each pattern is anchored on a word
// boundary and rejects hyphenated prose as a key value.
var secretExcludes = []Exclude{
	{
		Pattern: `(?i)\b(?:api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*(?:["'][A-Za-z0-9/+=_-]{20,}["']|[A-Za-z0-9/+=_]{20,}(?:[\s"',;]|$))`,
		Message: "Commit message appears to contain an API key",
	},
	{
		Pattern: `\bAKIA[0-9A-Z]{16}\b`,
		Message: "Commit message appears to contain an AWS access key ID",
	},
	{
		Pattern: `(?i)\baws[_-]?secret[_-]?access[_-]?key\s*[:=]\s*["']?[A-Za-z0-9/+=]{40}["']?`,
		Message: "Commit message appears to contain an AWS secret access key",
	},
	{
		Pattern: `(?i)\b(?:secret|token|password|passwd|credential)\s*[:=]\s*["'][^"']{8,}["']`,
		Message: "Commit message appears to contain a secret assignment",
	},
	{
		Pattern: `(?i)\bBearer\s+[A-Za-z0-9._~+/]{20,}`,
		Message: "Commit message appears to contain a bearer token",
	},
	{
		Pattern: `\beyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`,
		Message: "Commit message appears to contain a JWT",
	},
	{
		Pattern: `-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`,
		Message: "Commit message appears to contain a private key",
	},
	{
		Pattern: `\bgh[pousr]_[A-Za-z0-9_]{36,}`,
		Message: "Commit message appears to contain a GitHub token",
	},
	{
		Pattern: `\bxox[bporas]-[A-Za-z0-9-]{10,}`,
		Message: "Commit message appears to contain a Slack token",
	},
	{
		Pattern: `\bsk-ant-[A-Za-z0-9_-]{20,}`,
		Message: "Commit message appears to contain an Anthropic API key",
	},
	{
		Pattern: `\bsk-(?:proj-)?[A-Za-z0-9]{20,}`,
		Message: "Commit message appears to contain an OpenAI API key",
	},
}

// AIExcludes returns the rules that reject AI attribution lines.
func AIExcludes() []Exclude {
	return append([]Exclude(nil), aiExcludes...)
}

// AICleanups returns the ordered rewrites that strip AI attribution.
func AICleanups() []Cleanup {
	return append([]Cleanup(nil), aiCleanups...)
}

// SecretExcludes returns the rules that reject likely credentials.
func SecretExcludes() []Exclude {
	return append([]Exclude(nil), secretExcludes...)
}
