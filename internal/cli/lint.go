package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/dshills/gitfluff/internal/config"
	"github.com/dshills/gitfluff/internal/gitctx"
	"github.com/dshills/gitfluff/internal/lint"
	"github.com/dshills/gitfluff/internal/output"
	"github.com/dshills/gitfluff/internal/patch"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

var errNoSource = errors.New("no commit message source provided (pass COMMIT_FILE, --from-file, --stdin, or --message)")

// Lint flags
var (
	flagFromFile string
	flagStdin    bool
	flagMessage  string
	flagRange    string
	flagMbox     string

	flagPreset                string
	flagMsgPattern            string
	flagMsgPatternDescription string
	flagExcludes              []string
	flagCleanups              []string
	flagCleanupPattern        string
	flagCleanupReplacement    string
	flagCleanupDescription    string
	flagConfig                string

	flagWrite                bool
	flagAutofix              bool
	flagSingleLine           bool
	flagRequireBody          bool
	flagExitNonzeroOnRewrite bool
	flagSeparationSeverity   string

	flagColor  string
	flagFormat string
	flagJobs   int
)

type sourceKind int

const (
	sourceFile sourceKind = iota
	sourceStdin
	sourceLiteral
	sourceCommit
	sourcePatch
)

// input is one message to lint and where it came from.
type input struct {
	kind   sourceKind
	label  string
	path   string
	text   string
	header string
	author string
}

// batch reports whether the kind comes from history rather than a commit
// in progress. Batch inputs are never written back.
func (k sourceKind) batch() bool {
	return k == sourceCommit || k == sourcePatch
}

var lintCmd = &cobra.Command{
	Use:   "lint [COMMIT_FILE]",
	Short: "Lint a commit message",
	Long: "Lint a commit message from a file, stdin, a literal string, a revision range, " +
		"or a format-patch mbox. Exits 1 when the message has violations.",
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	inputs, err := loadInputs(ctx, cmd, args)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to discover current directory: %w", err)
	}
	if !inputs[0].kind.batch() && gitctx.MergeInProgress(cwd) {
		log.Debug("merge in progress; skipping commit message lint")
		return nil
	}

	layer, err := flagLayer(cmd.Flags())
	if err != nil {
		return err
	}
	settings, err := resolveSettings(flagConfig, cwd, layer)
	if err != nil {
		return err
	}
	opts, err := settings.Options(nil)
	if err != nil {
		return err
	}

	writer, err := reportWriter(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	write := settings.Write
	if write && inputs[0].kind.batch() {
		log.Warn("--write has no effect on commits already recorded; checking only")
		write = false
	}

	outcomes, err := lintAll(ctx, inputs, opts, flagJobs)
	if err != nil {
		return err
	}

	report := &output.Report{
		Tool:                 "gitfluff",
		Version:              version,
		Write:                write,
		ExitNonzeroOnRewrite: settings.ExitNonzeroOnRewrite,
		Results:              make([]output.Result, 0, len(inputs)),
	}
	for i, in := range inputs {
		out := outcomes[i]
		report.Results = append(report.Results, output.Result{
			Source:    in.label,
			Subject:   in.header,
			Author:    in.author,
			Outcome:   out,
			Rewritten: write && out.Cleaned != in.text,
		})
		if write {
			if err := applyWrite(cmd.OutOrStdout(), in, out.Cleaned); err != nil {
				return err
			}
		}
	}

	dst := cmd.OutOrStdout()
	if _, ok := writer.(*output.TextWriter); ok {
		dst = cmd.ErrOrStderr()
	}
	if err := writer.Write(dst, report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if report.Failed() {
		exitCode = ExitFindings
	}
	return nil
}

func loadInputs(ctx context.Context, cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) > 0 && (flagFromFile != "" || flagStdin || cmd.Flags().Changed("message") || flagRange != "" || flagMbox != "") {
		return nil, errors.New("COMMIT_FILE cannot be combined with --from-file, --stdin, --message, --range or --mbox")
	}

	switch {
	case flagFromFile != "":
		return readFileInput(flagFromFile)
	case len(args) > 0:
		return readFileInput(args[0])
	case flagStdin:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read commit message from stdin: %w", err)
		}
		return []input{{kind: sourceStdin, label: "stdin", text: string(data), header: firstLine(string(data))}}, nil
	case cmd.Flags().Changed("message"):
		return []input{{kind: sourceLiteral, label: "message", text: flagMessage, header: firstLine(flagMessage)}}, nil
	case flagRange != "":
		return rangeInputs(ctx, flagRange)
	case flagMbox != "":
		return mboxInputs(cmd.InOrStdin(), flagMbox)
	}
	return nil, errNoSource
}

func readFileInput(path string) ([]input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit message from %s: %w", path, err)
	}
	text := string(data)
	return []input{{kind: sourceFile, label: path, path: path, text: text, header: firstLine(text)}}, nil
}

func rangeInputs(ctx context.Context, revRange string) ([]input, error) {
	commits, err := gitctx.CommitMessages(ctx, revRange)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, fmt.Errorf("no commits in range %s", revRange)
	}
	inputs := make([]input, 0, len(commits))
	for _, c := range commits {
		inputs = append(inputs, input{
			kind:   sourceCommit,
			label:  shortSHA(c.SHA),
			text:   c.Message,
			header: c.Subject(),
		})
	}
	log.Debugf("linting %d commit(s) in %s", len(inputs), revRange)
	return inputs, nil
}

func mboxInputs(stdin io.Reader, path string) ([]input, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open mbox %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	patches, err := patch.ReadSeries(r)
	if err != nil {
		return nil, err
	}
	if len(patches) == 0 {
		return nil, fmt.Errorf("no messages in mbox %s", path)
	}
	inputs := make([]input, 0, len(patches))
	for _, p := range patches {
		inputs = append(inputs, input{
			kind:   sourcePatch,
			label:  fmt.Sprintf("patch %d", p.Index),
			text:   p.Message,
			header: p.Subject,
			author: p.From,
		})
	}
	return inputs, nil
}

// lintAll lints every input with at most jobs goroutines. Outcomes keep
// the input order.
func lintAll(ctx context.Context, inputs []input, opts *lint.Options, jobs int) ([]lint.Outcome, error) {
	outcomes := make([]lint.Outcome, len(inputs))
	if len(inputs) == 1 {
		outcomes[0] = lint.Lint(inputs[0].text, opts)
		return outcomes, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = lint.Lint(in.text, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// applyWrite stores the cleaned message. Files are rewritten only when the
// text changed; stdin and literal messages are echoed to stdout.
func applyWrite(stdout io.Writer, in input, cleaned string) error {
	switch in.kind {
	case sourceFile:
		if cleaned == in.text {
			return nil
		}
		if err := os.WriteFile(in.path, []byte(cleaned), 0o644); err != nil {
			return fmt.Errorf("failed to write cleaned commit message to %s: %w", in.path, err)
		}
		log.Debugf("rewrote %s", in.path)
	case sourceStdin, sourceLiteral:
		if flagFormat != "" && flagFormat != "text" {
			// the report on stdout already carries cleanedMessage
			return nil
		}
		if _, err := io.WriteString(stdout, cleaned); err != nil {
			return fmt.Errorf("failed to write cleaned message to stdout: %w", err)
		}
	}
	return nil
}

func reportWriter(stderr io.Writer) (output.Writer, error) {
	color, err := useColor(flagColor, stderr)
	if err != nil {
		return nil, err
	}
	return output.GetWriter(flagFormat, color)
}

// useColor resolves --color. auto enables color only when w is a terminal
// and NO_COLOR is unset.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		info, err := f.Stat()
		if err != nil {
			return false, nil
		}
		return info.Mode()&os.ModeCharDevice != 0, nil
	default:
		return false, fmt.Errorf("--color must be auto, always or never (got `%s`)", mode)
	}
}

// flagLayer turns the explicitly set lint flags into the top configuration
// layer.
func flagLayer(fs *pflag.FlagSet) (config.Layer, error) {
	l := config.Layer{Name: "flags"}

	if fs.Changed("preset") {
		l.Preset = &flagPreset
	}
	if fs.Changed("msg-pattern") {
		desc := fmt.Sprintf("Commit message must match pattern `%s`", flagMsgPattern)
		if fs.Changed("msg-pattern-description") {
			desc = flagMsgPatternDescription
		}
		l.MessagePattern = &flagMsgPattern
		l.MessageDescription = &desc
	} else if fs.Changed("msg-pattern-description") {
		l.MessageDescription = &flagMsgPatternDescription
	}

	for _, raw := range flagExcludes {
		pattern, message := parseExclude(raw)
		l.Excludes = append(l.Excludes, config.ExcludeRule{Pattern: pattern, Message: message})
	}
	for _, raw := range flagCleanups {
		find, replace, err := parseCleanup(raw)
		if err != nil {
			return l, err
		}
		l.Cleanups = append(l.Cleanups, config.CleanupRule{Find: find, Replace: replace})
	}
	if fs.Changed("cleanup-pattern") {
		l.Cleanups = append(l.Cleanups, config.CleanupRule{
			Find:        flagCleanupPattern,
			Replace:     flagCleanupReplacement,
			Description: flagCleanupDescription,
		})
	} else if fs.Changed("cleanup-replacement") || fs.Changed("cleanup-description") {
		return l, errors.New("--cleanup-replacement and --cleanup-description require --cleanup-pattern")
	}

	changed := func(name string, v *bool) *bool {
		if fs.Changed(name) {
			return v
		}
		return nil
	}
	l.Write = changed("write", &flagWrite)
	l.Autofix = changed("autofix", &flagAutofix)
	l.SingleLine = changed("single-line", &flagSingleLine)
	l.RequireBody = changed("require-body", &flagRequireBody)
	l.ExitNonzeroOnRewrite = changed("exit-nonzero-on-rewrite", &flagExitNonzeroOnRewrite)
	if fs.Changed("separation-severity") {
		l.SeparationSeverity = &flagSeparationSeverity
	}
	return l, nil
}

// parseExclude splits "pattern[:message]" on the first colon. An empty
// message falls back to the default violation text.
func parseExclude(raw string) (pattern, message string) {
	pattern, message, _ = strings.Cut(raw, ":")
	return pattern, message
}

// parseCleanup splits "find->replace".
func parseCleanup(raw string) (find, replace string, err error) {
	find, replace, ok := strings.Cut(raw, "->")
	if !ok {
		return "", "", fmt.Errorf("cleanup argument must use `find->replace` format (got `%s`)", raw)
	}
	return find, replace, nil
}

// resolveSettings merges the configuration file, the environment and any
// extra layers, lowest precedence first.
func resolveSettings(explicit, cwd string, extra ...config.Layer) (config.Settings, error) {
	loader := config.NewLoader(log)
	file, path, err := loader.Load(explicit, cwd)
	if err != nil {
		return config.Settings{}, err
	}

	var layers []config.Layer
	if file != nil {
		layers = append(layers, file.Layer(path))
	}
	layers = append(layers, loader.EnvLayer())
	layers = append(layers, extra...)

	settings, err := config.Resolve(layers...)
	if err != nil {
		return config.Settings{}, err
	}
	log.WithField("sources", strings.Join(settings.Sources, ", ")).Debug("resolved configuration")
	return settings, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}

func init() {
	f := lintCmd.Flags()
	f.StringVar(&flagFromFile, "from-file", "", "Read the commit message from a file")
	f.BoolVar(&flagStdin, "stdin", false, "Read the commit message from stdin")
	f.StringVar(&flagMessage, "message", "", "Lint a literal commit message")
	f.StringVar(&flagRange, "range", "", "Lint every commit in a revision range (e.g., origin/main..HEAD)")
	f.StringVar(&flagMbox, "mbox", "", "Lint every message of a format-patch mbox (- for stdin)")

	f.StringVar(&flagPreset, "preset", "", "Preset to apply (conventional, conventional-body, simple)")
	f.StringVar(&flagMsgPattern, "msg-pattern", "", "Regex the commit header must match (replaces the preset pattern)")
	f.StringVar(&flagMsgPatternDescription, "msg-pattern-description", "", "Violation text shown when the header pattern fails")
	f.StringArrayVar(&flagExcludes, "exclude", nil, "Reject messages matching pattern[:message] (repeatable)")
	f.StringArrayVar(&flagCleanups, "cleanup", nil, "Rewrite find->replace (repeatable)")
	f.StringVar(&flagCleanupPattern, "cleanup-pattern", "", "Cleanup regex")
	f.StringVar(&flagCleanupReplacement, "cleanup-replacement", "", "Replacement text for --cleanup-pattern")
	f.StringVar(&flagCleanupDescription, "cleanup-description", "", "Summary shown when --cleanup-pattern applies")
	f.StringVar(&flagConfig, "config", "", "Configuration file (default: discovered .gitfluff.toml)")

	f.BoolVar(&flagWrite, "write", false, "Write the cleaned message back to its source")
	f.BoolVar(&flagAutofix, "autofix", false, "Normalize spacing and footer layout before checking")
	f.BoolVar(&flagSingleLine, "single-line", false, "Require a single-line message")
	f.BoolVar(&flagRequireBody, "require-body", false, "Require a body after a blank line")
	f.BoolVar(&flagExitNonzeroOnRewrite, "exit-nonzero-on-rewrite", false, "Exit 1 when --write changed the message")
	f.StringVar(&flagSeparationSeverity, "separation-severity", "", "Severity of missing blank-line separators (warning, error)")

	f.StringVar(&flagColor, "color", "auto", "Color output (auto, always, never)")
	f.StringVar(&flagFormat, "format", "text", "Output format (text, json, markdown)")
	f.IntVarP(&flagJobs, "jobs", "j", 0, "Concurrent lint workers for --range and --mbox (default: number of CPUs)")

	f.SetNormalizeFunc(flagAliases)

	lintCmd.MarkFlagsMutuallyExclusive("from-file", "stdin", "message", "range", "mbox")
	lintCmd.MarkFlagsMutuallyExclusive("single-line", "require-body")
}

func flagAliases(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "message-pattern":
		name = "msg-pattern"
	case "message-description":
		name = "msg-pattern-description"
	}
	return pflag.NormalizedName(name)
}
