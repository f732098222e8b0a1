package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

// Exit codes
const (
	ExitSuccess    = 0
	ExitFindings   = 1
	ExitUsageError = 2
)

var flagVerbose bool

// log is shared by every command. It writes to the command's stderr and
// stays at warn level unless --verbose is given.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "gitfluff",
	Short: "Commit message linter",
	Long: "gitfluff checks commit messages against Conventional Commits or a custom pattern, " +
		"strips AI attribution noise, and can rewrite the message in place from a commit-msg hook.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogger(log, cmd.ErrOrStderr(), flagVerbose)
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "gitfluff: error: %v\n", err)
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

func configureLogger(l *logrus.Logger, w io.Writer, verbose bool) {
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print gitfluff version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gitfluff version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log configuration discovery and rule resolution")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(versionCmd)
}
