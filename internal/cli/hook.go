package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/gitfluff/internal/gitctx"
	"github.com/spf13/cobra"
)

const (
	hookMarkerStart = "# >>> gitfluff commit-msg hook >>>"
	hookMarkerEnd   = "# <<< gitfluff commit-msg hook <<<"
)

var hookKinds = []string{"commit-msg"}

var (
	hookWrite bool
	hookForce bool
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage git hooks",
}

var hookInstallCmd = &cobra.Command{
	Use:       "install commit-msg",
	Short:     "Install gitfluff as a git commit-msg hook",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: hookKinds,
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := getHookPath(args[0])
		if err != nil {
			return err
		}

		section := generateHookScript(hookWrite)

		existing, err := os.ReadFile(hookPath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read hook at %s: %w", hookPath, err)
		}

		var content string
		switch {
		case os.IsNotExist(err) || len(existing) == 0:
			content = "#!/bin/sh\n" + section
		case strings.Contains(string(existing), hookMarkerStart):
			content = replaceHookSection(string(existing), section)
		case hookForce:
			content = "#!/bin/sh\n" + section
		default:
			return fmt.Errorf("hook `%s` already exists at %s (use --force to overwrite)", args[0], hookPath)
		}

		if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
			return fmt.Errorf("failed to create hooks directory: %w", err)
		}
		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			return fmt.Errorf("failed to write hook at %s: %w", hookPath, err)
		}
		// WriteFile keeps the mode of an existing file
		if err := os.Chmod(hookPath, 0o755); err != nil {
			return fmt.Errorf("failed to make hook executable: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s hook at %s\n", args[0], hookPath)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:       "uninstall [commit-msg]",
	Short:     "Remove the gitfluff commit-msg hook",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: hookKinds,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := hookKinds[0]
		if len(args) > 0 {
			kind = args[0]
		}
		hookPath, err := getHookPath(kind)
		if err != nil {
			return err
		}

		existing, err := os.ReadFile(hookPath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s hook found.\n", kind)
				return nil
			}
			return fmt.Errorf("failed to read hook at %s: %w", hookPath, err)
		}

		if !strings.Contains(string(existing), hookMarkerStart) {
			fmt.Fprintf(cmd.OutOrStdout(), "No gitfluff section in %s\n", hookPath)
			return nil
		}

		content := removeHookSection(string(existing))

		// only the shebang left
		trimmed := strings.TrimSpace(content)
		if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
			if err := os.Remove(hookPath); err != nil {
				return fmt.Errorf("failed to remove hook: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s hook at %s\n", kind, hookPath)
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			return fmt.Errorf("failed to write hook at %s: %w", hookPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed gitfluff section from %s\n", hookPath)
		return nil
	},
}

func getHookPath(kind string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to discover current directory: %w", err)
	}
	dir, err := gitctx.HooksDir(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, kind), nil
}

func generateHookScript(write bool) string {
	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString(`gitfluff lint --from-file "$1"`)
	if write {
		b.WriteString(" --write")
	}
	b.WriteString(" || exit $?\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func replaceHookSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return before + section + after
}

func removeHookSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return before + after
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookInstallCmd.Flags().BoolVar(&hookWrite, "write", false, "Rewrite the message in place from the hook")
	hookInstallCmd.Flags().BoolVar(&hookForce, "force", false, "Replace an existing hook that gitfluff did not install")
}
