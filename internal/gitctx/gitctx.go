package gitctx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository is returned when no .git entry exists above a directory.
var ErrNotRepository = errors.New("no .git directory found")

// GitDir walks up from start and returns the repository's git directory.
// A ".git" file (worktrees, submodules) is followed to the directory its
// "gitdir:" line names.
func GitDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ".git")
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return candidate, nil
			}
			return resolveGitdirFile(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w from %s", ErrNotRepository, start)
		}
		dir = parent
	}
}

func resolveGitdirFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read gitdir file %s: %w", path, err)
	}
	raw, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", fmt.Errorf("unexpected gitdir file format in %s", path)
	}
	target := strings.TrimSpace(raw)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve gitdir path %s: %w", target, err)
	}
	return resolved, nil
}

// HooksDir returns the hooks directory of the repository containing start.
func HooksDir(start string) (string, error) {
	gitDir, err := GitDir(start)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks"), nil
}

// MergeInProgress reports whether MERGE_HEAD exists in the repository
// containing start. Outside a repository it reports false.
func MergeInProgress(start string) bool {
	gitDir, err := GitDir(start)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(gitDir, "MERGE_HEAD"))
	return err == nil
}

// Commit is a commit and its full message.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"-"`
}

// Subject returns the first line of the message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}

const (
	fieldSep  = "\x00"
	recordSep = "\x1e"
)

// CommitMessages returns the commits in a revision range, oldest first,
// with their raw messages.
func CommitMessages(ctx context.Context, revRange string) ([]Commit, error) {
	out, err := gitOutput(ctx, "log", "--reverse", "--format=%H%x00%B%x1e", revRange, "--")
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", revRange, err)
	}
	return parseLog(out), nil
}

func parseLog(out string) []Commit {
	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		sha, message, ok := strings.Cut(record, fieldSep)
		if !ok {
			continue
		}
		commits = append(commits, Commit{SHA: sha, Message: message})
	}
	return commits
}

func gitOutput(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
