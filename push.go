package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minios-linux/langsheet/config"
	"github.com/minios-linux/langsheet/i18n"
	"github.com/minios-linux/langsheet/langmodel"
	"github.com/minios-linux/langsheet/lockfile"
)

// ---------------------------------------------------------------------------
// push (local files -> sheet)
// ---------------------------------------------------------------------------

func newPushCmd(ctx context.Context) *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "push",
		Short: i18n.T("Push local translations to Google Sheet"),
		Long: `Read one file per language from the translation directory and replace
the translation table on a sheet with their contents. The sheet is created
if it does not exist.

Nested and flat files are both accepted; nested objects are flattened to
dotted keys. Every language file must exist.`,
		Example: `  langsheet push
  langsheet push --config ./langsheet.config.toml
  langsheet push -s 1AbC... -t i18n -c ./credentials.json -l en,zh-TW,ja
  langsheet push -s 1AbC... -t i18n -l en,fr -d ./locales --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(ctx, cmd, &f)
		},
	}

	addConfigFlags(cmd, &f)
	addSheetFlags(cmd, &f)

	return cmd
}

func runPush(ctx context.Context, cmd *cobra.Command, f *syncFlags) error {
	start := time.Now()

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	wd, err := absWorkDir()
	if err != nil {
		return err
	}
	dir := cfg.ResolveDirectory(wd)
	if !config.DirExists(dir) {
		return fmt.Errorf("directory not found: %s", dir)
	}

	printSyncSettings(cfg, dir)

	logInfo("%s", i18n.T("Loading translations from local files..."))
	m, err := langmodel.LoadFromFolder(dir, cfg.Languages, cfg.FolderOptions()...)
	if err != nil {
		return err
	}

	lock, err := lockfile.Load(wd)
	if err != nil {
		return err
	}
	reportDrift(lock, cfg, m, false)

	client, err := newSheetsClient(ctx, cfg, wd)
	if err != nil {
		return err
	}

	logInfo("%s", i18n.T("Uploading translations to Google Sheet..."))
	if err := client.Save(ctx, cfg.SheetTitle, m); err != nil {
		return err
	}

	if err := recordSync(lock, cfg, m); err != nil {
		logWarning(i18n.T("Could not update lock file: %v"), err)
	}

	logSuccess(i18n.T("Push completed in %s"), time.Since(start).Round(time.Millisecond))
	logSuccess(i18n.T("Translations uploaded to Google Sheet: %s"), cfg.SheetID)
	logSuccess(i18n.T("Sheet title: %s"), cfg.SheetTitle)
	return nil
}
