package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/fauxlizer/internal/config"
	"github.com/JonMunkholm/fauxlizer/internal/core"
	"github.com/JonMunkholm/fauxlizer/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = newRootCmd()

type rootFlags struct {
	format    string
	linenum   int
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "fauxlizer FILE",
		Short: "Validate a fauxness data file",
		Long: `Validate a comma-separated fauxness data file and print a JSON summary.

The file needs the columns experiment_name, sample_id, fauxness and
category_guess. Validation stops at the first bad row; the summary names
the failure and carries the offending data.

Examples:
  fauxlizer samples.faux
  fauxlizer samples.faux -l 0 -f JSON
  fauxlizer samples.faux --linenum 3 --format CSV`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.format, "format", "f", "", "Row output format: JSON or CSV (anything else prints the row as-is)")
	f.IntVarP(&flags.linenum, "linenum", "l", 0, "Row to print after the summary, starting at 0")
	f.StringVar(&flags.logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "Log level: debug, info, warn, error (default $LOG_LEVEL)")
	f.StringVar(&flags.logFormat, "log-format", envOr("LOG_FORMAT", "text"), "Log format: text or json (default $LOG_FORMAT)")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, flags rootFlags) error {
	if !config.ValidLogLevel(flags.logLevel) {
		return fmt.Errorf("invalid --log-level %q: must be one of debug, info, warn, error", flags.logLevel)
	}
	if !config.ValidLogFormat(flags.logFormat) {
		return fmt.Errorf("invalid --log-format %q: must be text or json", flags.logFormat)
	}

	// core logs through the default logger.
	logger := logging.Setup(cmd.ErrOrStderr(), flags.logLevel, flags.logFormat).
		With("run_id", uuid.NewString(), "file", path)

	outcome, err := core.Validate(path)
	if err != nil {
		logger.Error("validation aborted", "error", err)
		return err
	}
	logger.Info("file validated", "return_code", outcome.Code, "line", outcome.Line)

	summary, err := core.GenerateSummary(outcome).JSON()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, summary)

	if !cmd.Flags().Changed("linenum") || !outcome.OK() {
		return nil
	}
	return printRow(out, outcome.Rows(), flags.linenum, core.ParseFormat(flags.format))
}

// printRow writes the selected row, or the line-number notice when index
// names no row.
func printRow(out io.Writer, rows []core.Row, index int, format core.Format) error {
	row, err := core.FetchRow(rows, index, format)
	if errors.Is(err, core.ErrRowOutOfRange) {
		fmt.Fprintln(out, core.LineNumberNotice)
		return nil
	}
	if err != nil {
		return err
	}

	switch v := row.(type) {
	case string:
		if format == core.FormatCSV {
			// Already CRLF terminated.
			fmt.Fprint(out, v)
			return nil
		}
		fmt.Fprintln(out, v)
	default:
		fmt.Fprintln(out, v)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
