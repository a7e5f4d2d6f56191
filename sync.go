package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minios-linux/langsheet/config"
	"github.com/minios-linux/langsheet/i18n"
	"github.com/minios-linux/langsheet/langmodel"
	"github.com/minios-linux/langsheet/lockfile"
	"github.com/minios-linux/langsheet/settings"
	"github.com/minios-linux/langsheet/sheets"
)

// syncFlags are the flags shared by commands that read the configuration.
// Only flags set explicitly on the command line override the config file.
type syncFlags struct {
	configPath  string
	sheetID     string
	sheetTitle  string
	credentials string
	directory   string
	languages   []string
	contentType string
	format      string
	railsRoot   bool
}

// addConfigFlags registers the flags that describe local files.
func addConfigFlags(cmd *cobra.Command, f *syncFlags) {
	cmd.Flags().StringVarP(&f.configPath, "config", "C", "", "Path to config file (.yaml, .yml, .toml, .json)")
	cmd.Flags().StringVarP(&f.directory, "directory", "d", "", "Directory for translation files (default ./i18n)")
	cmd.Flags().StringSliceVarP(&f.languages, "languages", "l", nil, "Language codes (e.g. -l en,zh-TW,ja)")
	cmd.Flags().StringVar(&f.format, "format", "", "Translation file format: json, yaml or properties (default json)")
	cmd.Flags().BoolVar(&f.railsRoot, "rails-root", false, "Wrap YAML files in a top-level language key (en: ...)")
}

// addSheetFlags registers the flags that describe the spreadsheet.
func addSheetFlags(cmd *cobra.Command, f *syncFlags) {
	cmd.Flags().StringVarP(&f.sheetID, "sheet-id", "s", "", "Google Sheet ID (from the URL)")
	cmd.Flags().StringVarP(&f.sheetTitle, "sheet-title", "t", "", "Sheet title/tab name")
	cmd.Flags().StringVarP(&f.credentials, "credentials", "c", "",
		"Path to a service account key (or use 'langsheet auth login' or GOOGLE_APPLICATION_CREDENTIALS)")
}

// addTypeFlag registers --type.
func addTypeFlag(cmd *cobra.Command, f *syncFlags) {
	cmd.Flags().StringVar(&f.contentType, "type", "", "Output file structure: nest or flat (default nest)")
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"nest\tnested objects", "flat\tdotted keys"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// loadConfig reads the config file and applies the flags that were set
// explicitly, then fills in defaults.
func loadConfig(cmd *cobra.Command, f *syncFlags) (*config.Config, error) {
	dir, err := absWorkDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir, f.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		logInfo(i18n.T("Loading config from: %s"), cfg.Path)
	}

	override, err := flagOverrides(cmd, f)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	cfg.ApplyDefaults()

	for _, w := range config.ValidateLanguageCodes(cfg.Languages) {
		logWarning("%s", w)
	}
	return cfg, nil
}

// flagOverrides collects the flags that were set on the command line.
func flagOverrides(cmd *cobra.Command, f *syncFlags) (*config.Config, error) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		fl := flags.Lookup(name)
		return fl != nil && fl.Changed
	}

	o := &config.Config{}
	if changed("sheet-id") {
		o.SheetID = strings.TrimSpace(f.sheetID)
	}
	if changed("sheet-title") {
		o.SheetTitle = f.sheetTitle
	}
	if changed("credentials") {
		o.CredentialsFile = f.credentials
	}
	if changed("directory") {
		o.Directory = f.directory
	}
	if changed("languages") {
		o.Languages = cleanLanguages(f.languages)
	}
	if changed("type") {
		typ, err := langmodel.ParseContentType(f.contentType)
		if err != nil {
			return nil, err
		}
		o.Type = typ
	}
	if changed("format") {
		format, err := langmodel.ParseFormat(f.format)
		if err != nil {
			return nil, err
		}
		o.Format = format
	}
	if changed("rails-root") {
		o.RailsRoot = f.railsRoot
	}
	return o, nil
}

// cleanLanguages trims codes and drops empty and duplicate entries.
func cleanLanguages(langs []string) []string {
	seen := make(map[string]bool, len(langs))
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// credentialSource picks the service account key by priority: inline
// config object, credentials file, stored key, then Application Default
// Credentials. It returns the client options and a description for display.
func credentialSource(cfg *config.Config, dir string) ([]sheets.Option, string, error) {
	if len(cfg.CredentialsJSON) > 0 {
		return []sheets.Option{sheets.WithCredentialsJSON(cfg.CredentialsJSON)}, i18n.T("inline config"), nil
	}

	if path := cfg.ResolveCredentialsFile(dir); path != "" {
		if !config.FileExists(path) {
			return nil, "", fmt.Errorf("credentials file not found: %s", path)
		}
		return []sheets.Option{sheets.WithCredentialsFile(path)}, path, nil
	}

	data, err := settings.LoadCredentials()
	switch {
	case err == nil:
		return []sheets.Option{sheets.WithCredentialsJSON(data)}, settings.FilePath(), nil
	case !errors.Is(err, settings.ErrNoCredentials):
		return nil, "", err
	}

	return nil, i18n.T("application default credentials"), nil
}

// newSheetsClient builds the spreadsheet client. Tests replace it.
var newSheetsClient = func(ctx context.Context, cfg *config.Config, dir string) (*sheets.Client, error) {
	opts, source, err := credentialSource(cfg, dir)
	if err != nil {
		return nil, err
	}
	logInfo(i18n.T("Authenticating with Google Sheets API (%s)..."), source)
	return sheets.New(ctx, cfg.SheetID, opts...)
}

// printSyncSettings logs the settings a sync runs with.
func printSyncSettings(cfg *config.Config, dir string) {
	logInfo("Sheet ID:    %s", cfg.SheetID)
	logInfo("Sheet title: %s", cfg.SheetTitle)
	logInfo("Languages:   %s", strings.Join(cfg.Languages, ", "))
	logInfo("Directory:   %s", dir)
	logInfo("Format:      %s", cfg.Format)
}

// reportDrift logs, per language, how local files differ from the last
// sync. Languages never synced are skipped.
func reportDrift(lock *lockfile.LockFile, cfg *config.Config, m *langmodel.Model, warn bool) {
	for _, lang := range cfg.Languages {
		target := lockfile.TargetKey(cfg.SheetTitle, lang)
		if !lock.Has(target) {
			continue
		}
		d := lock.Diff(target, m.Flat()[lang])
		if d.Empty() {
			continue
		}
		if warn {
			logWarning(i18n.T("%s: local changes since last sync will be overwritten (%s)"), lang, d)
		} else {
			logInfo(i18n.T("%s: %s since last sync"), lang, d)
		}
	}
}

// recordSync stores checksums of m for every language and saves the lock.
func recordSync(lock *lockfile.LockFile, cfg *config.Config, m *langmodel.Model) error {
	for _, lang := range cfg.Languages {
		lock.Record(lockfile.TargetKey(cfg.SheetTitle, lang), m.Flat()[lang])
	}
	return lock.Save()
}

// fileNames lists the files a sync writes, e.g. "en.json, fr.json".
func fileNames(cfg *config.Config) string {
	names := make([]string, len(cfg.Languages))
	for i, lang := range cfg.Languages {
		names[i] = lang + cfg.Format.Ext()
	}
	return strings.Join(names, ", ")
}
