package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/minios-linux/langsheet/i18n"
	"github.com/minios-linux/langsheet/settings"
)

// ---------------------------------------------------------------------------
// auth (manage the stored service account key)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: i18n.T("Manage the stored service account key"),
		Long: `Manage the Google service account key langsheet uses when neither the
config file nor --credentials names one.

The key is stored in ~/.local/share/langsheet/credentials.json (or under
$XDG_DATA_HOME) with owner-only permissions. Share the spreadsheet with the
service account's client email so it can read and write it.

Examples:
  langsheet auth login ./service-account.json   Store a key file
  cat key.json | langsheet auth login -          Store a key from stdin
  langsheet auth status                         Show the stored key
  langsheet auth logout                         Remove the stored key`,
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthStatusCmd(),
	)

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <key-file|->",
		Short: i18n.T("Store a service account key"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readKey(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if err := settings.SaveCredentials(data); err != nil {
				return err
			}
			summary, err := settings.Describe(data)
			if err != nil {
				return err
			}
			logSuccess(i18n.T("Service account key stored in %s"), settings.FilePath())
			logInfo(i18n.T("Share your spreadsheet with %s"), summary.ClientEmail)
			return nil
		},
	}
}

// readKey reads a key file, or stdin when path is "-".
func readKey(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading key from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return data, nil
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: i18n.T("Remove the stored service account key"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !settings.HasCredentials() {
				logInfo("%s", i18n.T("No stored credentials"))
				return nil
			}
			if err := settings.RemoveCredentials(); err != nil {
				return err
			}
			logSuccess("%s", i18n.T("Stored credentials removed"))
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"list", "ls"},
		Short:   i18n.T("Show the stored service account key"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			data, err := settings.LoadCredentials()
			switch {
			case errors.Is(err, settings.ErrNoCredentials):
				fmt.Fprintf(out, "Stored key:   %s\n", i18n.T("none"))
			case err != nil:
				return err
			default:
				summary, err := settings.Describe(data)
				if err != nil {
					return fmt.Errorf("%s: %w", settings.FilePath(), err)
				}
				fmt.Fprintf(out, "Stored key:   %s\n", settings.FilePath())
				fmt.Fprintf(out, "  Email:      %s\n", summary.ClientEmail)
				fmt.Fprintf(out, "  Project:    %s\n", summary.ProjectID)
				fmt.Fprintf(out, "  Key ID:     %s\n", summary.KeyID)
			}

			if env := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); env != "" {
				fmt.Fprintf(out, "GOOGLE_APPLICATION_CREDENTIALS: %s\n", env)
			}
			return nil
		},
	}
}
