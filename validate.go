package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minios-linux/langsheet/content"
	"github.com/minios-linux/langsheet/i18n"
	"github.com/minios-linux/langsheet/jsonfile"
	"github.com/minios-linux/langsheet/langmodel"
)

// ---------------------------------------------------------------------------
// validate (check local files before a push)
// ---------------------------------------------------------------------------

func newValidateCmd() *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: i18n.T("Check local translation files for problems"),
		Long: `Check every language file in the translation directory:

  - JSON files must be objects whose values are strings or objects;
    numbers, booleans, null and arrays are reported
  - keys must not have numeric segments such as "list.0"
  - a key must not also be the prefix of another key ("a" and "a.b")

Exits with a non-zero status when a problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, &f)
		},
	}

	addConfigFlags(cmd, &f)

	return cmd
}

// errValidation is returned when at least one file has problems.
var errValidation = errors.New("validation failed")

func runValidate(cmd *cobra.Command, f *syncFlags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	if len(cfg.Languages) == 0 {
		return errors.New("languages are required (via CLI argument or config file)")
	}
	wd, err := absWorkDir()
	if err != nil {
		return err
	}
	dir := cfg.ResolveDirectory(wd)

	problems := 0
	for _, lang := range cfg.Languages {
		issues := validateLanguage(dir, lang, cfg.Format, cfg.FolderOptions()...)
		if len(issues) == 0 {
			logSuccess("%s", langmodel.FilePath(dir, lang, cfg.Format))
			continue
		}
		problems += len(issues)
		logError("%s", langmodel.FilePath(dir, lang, cfg.Format))
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "    %s\n", issue)
		}
	}

	if problems > 0 {
		return fmt.Errorf("%w: %s", errValidation, fmt.Sprintf(i18n.N("%d problem found", "%d problems found", problems), problems))
	}
	logSuccess("%s", i18n.T("All translation files are valid"))
	return nil
}

// validateLanguage returns the problems found in one language file. opts
// are passed to LoadFromFolder after the format.
func validateLanguage(dir, lang string, format langmodel.Format, opts ...langmodel.Option) []string {
	path := langmodel.FilePath(dir, lang, format)

	var issues []string
	if format == langmodel.FormatJSON {
		data, err := os.ReadFile(path)
		if err != nil {
			return []string{err.Error()}
		}
		schemaIssues, err := jsonfile.Validate(data)
		if err != nil {
			return []string{err.Error()}
		}
		for _, is := range schemaIssues {
			issues = append(issues, is.String())
		}
	}

	m, err := langmodel.LoadFromFolder(dir, []string{lang}, append([]langmodel.Option{langmodel.WithFormat(format)}, opts...)...)
	if err != nil {
		return append(issues, err.Error())
	}
	issues = append(issues, keyIssues(m.Flat()[lang])...)
	return issues
}

// keyIssues reports keys that cannot be nested.
func keyIssues(f *content.Flat) []string {
	var issues []string
	for _, key := range f.Keys() {
		if err := content.CheckKey(key); err != nil {
			issues = append(issues, err.Error())
		}
	}
	if len(issues) > 0 {
		return issues
	}
	// Conflicts only show once every key is safe.
	if _, err := content.Unflatten(f); err != nil {
		issues = append(issues, err.Error())
	}
	return issues
}
