package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"it/internal/core"
	"it/internal/logutil"
	"it/internal/parser"
	"it/internal/tui"
	"it/pkg/lineop"
)

// Version is reported by --version.
var Version = "1.0.0"

const examples = `  Insert 'New Line' at line 2 in file.txt:
    $ it -i "New Line" -l 2 file.txt

  Overwrite line 2 with 'Overwritten' in file.txt:
    $ it -i "Overwritten" -l 2 -o file.txt

  Append 'Appended' to the end of file.txt:
    $ it -a "Appended" file.txt

  Clear from line 2 to the end in file.txt:
    $ it -z 2 file.txt

  Clear from line 2 to line 3 in file.txt:
    $ it -z 2,3 file.txt

  Append an empty line to file.txt (default):
    $ it file.txt

  Interactively insert text at line 2:
    $ echo "New Line" | it -l 2 -I file.txt

  Create a backup before modifying multiple files:
    $ it -b -a "Appended" file1.txt file2.txt`

// options holds the raw flag values of one invocation.
type options struct {
	line        string
	overwrite   bool
	insert      string
	appendText  string
	clear       string
	backup      bool
	interactive bool
	dryRun      bool
	diff        bool
	logLevel    string
}

// NewRootCmd builds the it command. Each call returns an independent command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "it [flags] FILE...",
		Short: "Inserts text at a given line location of a file",
		Long: `it inserts, overwrites, appends or clears lines in one or more text files.
Exactly one operation runs per invocation; without an operation flag an empty
line is appended. Files are processed in order and the first error stops the run.`,
		Example:      examples,
		Version:      Version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.line, "line", "l", "", "The line `NUMBER` to insert or overwrite at (default: first line)")
	flags.BoolVarP(&opts.overwrite, "overwrite", "o", false, "Overwrite the line instead of inserting")
	flags.StringVarP(&opts.insert, "insert", "i", "", "Inserts `TEXT` at the line provided by the line flag")
	flags.StringVarP(&opts.appendText, "append", "a", "", "Inserts `TEXT` at the last line of the file")
	flags.StringVarP(&opts.clear, "clear", "z", "", "Clear lines `START[,END]`: from START to end of file, or START through END")
	flags.BoolVarP(&opts.backup, "backup", "b", false, "Create a backup of the original file (adds .bak extension)")
	flags.BoolVarP(&opts.interactive, "interactive", "I", false, "Read text to insert or append from stdin")
	flags.BoolVarP(&opts.dryRun, "dry-run", "d", false, "Print changes to stdout without modifying the file")
	flags.BoolVar(&opts.diff, "diff", false, "Print a line diff of the changes without modifying the file")
	flags.StringVar(&opts.logLevel, "log-level", logutil.DefaultLevel, "Log level (debug, info, warn, error)")
	rootCmd.MarkFlagsMutuallyExclusive("insert", "append", "clear")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options, files []string) error {
	logger, err := logutil.New(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return err
	}

	op, err := buildOperation(cmd, opts)
	if err != nil {
		return err
	}
	if opts.interactive && op.Kind != lineop.KindClear {
		text, err := readInteractive(cmd, op)
		if err != nil {
			return err
		}
		op = op.WithText(text)
	}

	cfg := core.Config{
		Files:  files,
		Op:     op,
		Backup: opts.backup,
		DryRun: opts.dryRun,
		Diff:   opts.diff,
	}
	logger.WithField("files", len(files)).Debugf("running %s", op)
	return core.NewEditor(core.NewFileTargetStore(), cmd.OutOrStdout(), logger).Run(cfg)
}

// buildOperation selects the single operation requested by the flags. Argument
// errors surface here, before any file is touched.
func buildOperation(cmd *cobra.Command, opts *options) (lineop.Operation, error) {
	flags := cmd.Flags()

	var at *lineop.Address
	if flags.Changed("line") {
		a, err := parser.ParseLine(opts.line)
		if err != nil {
			return lineop.Operation{}, err
		}
		at = &a
	}

	switch {
	case flags.Changed("clear"):
		r, err := parser.ParseClearRange(opts.clear)
		if err != nil {
			return lineop.Operation{}, err
		}
		return lineop.Clear(r), nil
	case flags.Changed("append"):
		return lineop.Append(opts.appendText), nil
	case flags.Changed("insert"):
		return lineop.Insert(opts.insert, at, opts.overwrite), nil
	case at != nil || opts.overwrite:
		return lineop.Insert("", at, opts.overwrite), nil
	default:
		return lineop.AppendEmpty(), nil
	}
}

// readInteractive collects the operation text once per invocation: through the
// prompt when stdin is a terminal, otherwise by reading stdin to EOF.
func readInteractive(cmd *cobra.Command, op lineop.Operation) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		title := "Text to insert"
		if op.Kind == lineop.KindAppend {
			title = "Text to append"
		}
		text, err := tui.Prompt(title, f, cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimRightFunc(text, unicode.IsSpace), nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRightFunc(string(data), unicode.IsSpace), nil
}

// Execute runs the root command against the process arguments and exits non-zero
// on failure. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
