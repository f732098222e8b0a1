// Package builtin holds the rule tables that are always appended after user
// rules: AI attribution excludes and cleanups, and secret detection.
//
// Secret detection uses regex heuristics covering common credential shapes:
// API key assignments, JWTs, private key blocks, AWS access key IDs and
// secret access keys, bearer tokens, and provider-specific tokens
// (Anthropic, OpenAI, GitHub, Slack). A match is reported as a violation so
// the commit is blocked before the credential reaches history.
//
// Tables are returned as fresh slices; callers may modify them freely.
package builtin
