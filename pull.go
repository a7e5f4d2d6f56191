package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/minios-linux/langsheet/config"
	"github.com/minios-linux/langsheet/i18n"
	"github.com/minios-linux/langsheet/langmodel"
	"github.com/minios-linux/langsheet/lockfile"
)

// ---------------------------------------------------------------------------
// pull (sheet -> local files)
// ---------------------------------------------------------------------------

func newPullCmd(ctx context.Context) *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "pull",
		Short: i18n.T("Pull translations from Google Sheet to local files"),
		Long: `Download the translation table from a sheet and write one file per
language into the translation directory.

Keys containing dots are expanded into nested objects (--type nest, the
default) or written as-is (--type flat). Empty cells are left out of nested
files. A key with a numeric segment (e.g. "list.0") cannot be nested and
aborts the pull before any file is written.`,
		Example: `  langsheet pull
  langsheet pull --config ./langsheet.config.yaml
  langsheet pull -s 1AbC... -t i18n -c ./credentials.json -l en,zh-TW,ja
  langsheet pull -s 1AbC... -t i18n -l en,fr -d ./locales --type flat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull(ctx, cmd, &f)
		},
	}

	addConfigFlags(cmd, &f)
	addSheetFlags(cmd, &f)
	addTypeFlag(cmd, &f)

	return cmd
}

func runPull(ctx context.Context, cmd *cobra.Command, f *syncFlags) error {
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
		logInfo(i18n.T("Creating directory: %s"), dir)
	}

	printSyncSettings(cfg, dir)
	logInfo("Type:        %s", cfg.Type)

	lock, err := lockfile.Load(wd)
	if err != nil {
		return err
	}
	if local, err := langmodel.LoadFromFolder(dir, cfg.Languages, cfg.FolderOptions()...); err == nil {
		reportDrift(lock, cfg, local, true)
	}

	client, err := newSheetsClient(ctx, cfg, wd)
	if err != nil {
		return err
	}

	logInfo("%s", i18n.T("Fetching data from Google Sheet..."))
	m, err := client.Load(ctx, cfg.SheetTitle, cfg.Languages)
	if err != nil {
		return err
	}

	logInfo("%s", i18n.T("Saving translations to local files..."))
	if err := m.SaveToFolder(dir, cfg.Type, cfg.FolderOptions()...); err != nil {
		return err
	}

	if err := recordSync(lock, cfg, m); err != nil {
		logWarning(i18n.T("Could not update lock file: %v"), err)
	}

	logSuccess(i18n.T("Pull completed in %s"), time.Since(start).Round(time.Millisecond))
	logSuccess(i18n.T("Translations saved to: %s"), dir)
	logSuccess(i18n.T("Files created: %s"), fileNames(cfg))
	return nil
}
