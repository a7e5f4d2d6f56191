// Package settings stores langsheet user settings, currently the service
// account key used to reach Google Sheets.
//
// Settings live in the XDG data directory:
//
//	$XDG_DATA_HOME/langsheet/  (default: ~/.local/share/langsheet/)
//
// Files stored:
//   - credentials.json  service account key, as downloaded from Google Cloud
//
// File permissions are 0600 (owner read/write only).
//
// Lookup order for credentials:
//  1. inline credentials object in the config file
//  2. --credentials flag or credentials path in the config file
//  3. this credential store
//  4. Application Default Credentials (GOOGLE_APPLICATION_CREDENTIALS, gcloud)
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minios-linux/langsheet/sheets"
)

const (
	dataDirName = "langsheet"
	fileName    = "credentials.json"
)

// ErrNoCredentials is returned by LoadCredentials when nothing is stored.
var ErrNoCredentials = errors.New("no stored credentials")

// ---------------------------------------------------------------------------
// File path
// ---------------------------------------------------------------------------

// dataDir returns the XDG data directory for langsheet.
// Respects $XDG_DATA_HOME (falls back to ~/.local/share).
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func filePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the credentials file path for display purposes.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// DataDir returns the langsheet data directory path.
func DataDir() (string, error) {
	return dataDir()
}

// ---------------------------------------------------------------------------
// Load / Save / Remove
// ---------------------------------------------------------------------------

// SaveCredentials validates a service account key and stores it with 0600
// permissions, replacing any stored key.
func SaveCredentials(data []byte) error {
	if err := sheets.ValidateServiceAccount(data); err != nil {
		return err
	}

	path, err := filePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("securing credentials file: %w", err)
	}
	return nil
}

// LoadCredentials returns the stored service account key, or
// ErrNoCredentials when none is stored.
func LoadCredentials() ([]byte, error) {
	path, err := filePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredentials
		}
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	return data, nil
}

// HasCredentials reports whether a key is stored.
func HasCredentials() bool {
	_, err := LoadCredentials()
	return err == nil
}

// RemoveCredentials deletes the stored key. Removing nothing is not an error.
func RemoveCredentials() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credentials file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Display helpers
// ---------------------------------------------------------------------------

// Summary describes a service account key without exposing secrets.
type Summary struct {
	ClientEmail string
	ProjectID   string
	KeyID       string // masked
}

// Describe summarizes a service account key for display.
func Describe(data []byte) (*Summary, error) {
	sa, err := sheets.ParseServiceAccount(data)
	if err != nil {
		return nil, err
	}
	return &Summary{
		ClientEmail: sa.ClientEmail,
		ProjectID:   sa.ProjectID,
		KeyID:       MaskKey(sa.PrivateKeyID),
	}, nil
}

// MaskKey returns a masked version of a key/token for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
