package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minios-linux/langsheet/config"
	"github.com/minios-linux/langsheet/i18n"
	"github.com/minios-linux/langsheet/langmodel"
	"github.com/minios-linux/langsheet/lockfile"
)

// ---------------------------------------------------------------------------
// status (read-only: configuration + local translation stats)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: i18n.T("Show configuration and local translation statistics"),
		Long: `Show the resolved configuration and, per language, the number of keys in
the local file, how many are empty, and what changed since the last pull or
push. Does not contact Google Sheets and does not modify any files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, &f)
		},
	}

	addConfigFlags(cmd, &f)
	addSheetFlags(cmd, &f)
	addTypeFlag(cmd, &f)

	return cmd
}

func runStatus(cmd *cobra.Command, f *syncFlags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	wd, err := absWorkDir()
	if err != nil {
		return err
	}
	dir := cfg.ResolveDirectory(wd)

	fmt.Fprintf(os.Stderr, "\n%s\n", colorize(colorBlue, i18n.T("Configuration")))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	configPath := cfg.Path
	if configPath == "" {
		configPath = i18n.T("none (flags only)")
	}
	fmt.Fprintf(os.Stderr, "  Config:      %s\n", configPath)
	fmt.Fprintf(os.Stderr, "  Sheet ID:    %s\n", valueOrDash(cfg.SheetID))
	fmt.Fprintf(os.Stderr, "  Sheet title: %s\n", valueOrDash(cfg.SheetTitle))
	fmt.Fprintf(os.Stderr, "  Languages:   %s\n", valueOrDash(strings.Join(cfg.Languages, ", ")))
	fmt.Fprintf(os.Stderr, "  Directory:   %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Type:        %s\n", cfg.Type)
	fmt.Fprintf(os.Stderr, "  Format:      %s\n", cfg.Format)

	if _, source, err := credentialSource(cfg, wd); err != nil {
		fmt.Fprintf(os.Stderr, "  Credentials: %s\n", colorize(colorRed, err.Error()))
	} else {
		fmt.Fprintf(os.Stderr, "  Credentials: %s\n", source)
	}
	fmt.Fprintln(os.Stderr)

	if err := cfg.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			logWarning("%s", line)
		}
		fmt.Fprintln(os.Stderr)
	}

	if len(cfg.Languages) == 0 {
		return nil
	}

	lock, err := lockfile.Load(wd)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s\n", colorize(colorBlue, i18n.T("Local Translation Statistics")))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	for _, row := range statusRows(dir, cfg, lock) {
		fmt.Fprintln(os.Stderr, row)
	}
	fmt.Fprintln(os.Stderr)

	if cfg.SheetTitle != "" {
		_, keys := lock.Stats()
		if keys == 0 {
			logInfo("%s", i18n.T("No previous sync recorded. Run 'langsheet pull' or 'langsheet push'."))
		}
	}
	return nil
}

// statusRows renders one line per language: key count, empty values and
// drift against the lock file.
func statusRows(dir string, cfg *config.Config, lock *lockfile.LockFile) []string {
	width := len("Lang")
	for _, lang := range cfg.Languages {
		width = max(width, len(lang))
	}

	rows := []string{fmt.Sprintf("%-*s  %-6s %-6s %s", width, "Lang", "Keys", "Empty", "Since last sync")}
	for _, lang := range cfg.Languages {
		m, err := langmodel.LoadFromFolder(dir, []string{lang}, cfg.FolderOptions()...)
		if err != nil {
			state := "error"
			if errors.Is(err, os.ErrNotExist) {
				state = "missing"
			}
			rows = append(rows, fmt.Sprintf("%-*s  %-6s %-6s %s", width, lang, state, "-", "-"))
			continue
		}

		total, empty := m.Stats(lang)
		drift := "-"
		if target := lockfile.TargetKey(cfg.SheetTitle, lang); cfg.SheetTitle != "" && lock.Has(target) {
			drift = lock.Diff(target, m.Flat()[lang]).String()
		}
		rows = append(rows, fmt.Sprintf("%-*s  %-6d %-6d %s", width, lang, total, empty, drift))
	}
	return rows
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
