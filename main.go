// langsheet: sync i18n translation files with a Google Sheet.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/dusted-go/logging/prettylog"
	"github.com/mattn/go-isatty"
	slogformatter "github.com/samber/slog-formatter"
	"github.com/spf13/cobra"

	"github.com/minios-linux/langsheet/i18n"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

// useColor is false when stderr is not a terminal.
var useColor = isatty.IsTerminal(os.Stderr.Fd())

func colorize(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorize(colorBlue, "[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorize(colorGreen, "[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorize(colorYellow, "[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorize(colorRed, "[ERROR]")+" "+format+"\n", args...)
}

// initLogging routes slog (used by the library packages for debug output)
// to stderr.
func initLogging(verbose bool) {
	logLvl := func() slog.Level {
		if verbose {
			return slog.LevelDebug
		}
		return slog.LevelWarn
	}()
	w := os.Stderr

	logger := slog.New(
		slogformatter.NewFormatterHandler(
			slogformatter.HTTPRequestFormatter(false),
			slogformatter.HTTPResponseFormatter(false),
			slogformatter.FormatByType(func(s []string) slog.Value {
				return slog.StringValue(strings.Join(s, ","))
			}),
		)(
			prettylog.New(&slog.HandlerOptions{Level: logLvl},
				prettylog.WithDestinationWriter(w),
				func() prettylog.Option {
					if isatty.IsTerminal(w.Fd()) {
						return prettylog.WithColor()
					}
					return func(_ *prettylog.Handler) {}
				}(),
			),
		),
	)
	slog.SetDefault(logger)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

const (
	verboseFlag = "verbose"
	workDirFlag = "working-dir"
)

var workDir string

// absWorkDir returns the working directory as an absolute path.
func absWorkDir() (string, error) {
	dir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return dir, nil
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:   "langsheet",
		Short: i18n.T("Sync i18n translation files with a Google Sheet"),
		Long: `langsheet keeps per-language translation files (en.json, fr.json, ...)
in sync with a Google Sheet, where each row is a translation key and each
column a language.

Commands:
  pull        Download translations from the sheet into local files
  push        Upload local translation files to the sheet
  status      Show configuration and local changes since the last sync
  validate    Check local translation files for problems
  auth        Manage the stored service account key

Settings are read from langsheet.config.yaml (or .yml, .toml, .json) in the
working directory; command line flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			initLogging(verbose)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.PersistentFlags().BoolP(verboseFlag, "v", false, "Verbose output")
	root.PersistentFlags().StringVarP(&workDir, workDirFlag, "w", ".", "Working directory")

	root.AddCommand(
		newPullCmd(ctx),
		newPushCmd(ctx),
		newStatusCmd(),
		newValidateCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(ctx).Execute(); err != nil {
		logError("%v", err)
		stop()
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Long:  `Display version, commit hash, build date and the interface locale.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "langsheet version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
			fmt.Fprintf(out, "  locale:    %s (available: %s)\n", i18n.Lang(), strings.Join(i18n.Available(), ", "))
		},
	}

	return cmd
}
