// Package config loads langsheet configuration files.
//
// A config file declares the spreadsheet, the sheet title, the languages and
// the local layout of translation files. YAML, TOML and JSON are supported;
// keys are camelCase in every format. Values given on the command line take
// precedence over the file (see Merge).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/langsheet/langmodel"
)

// FileNames are the config file names looked up in the working directory,
// in priority order.
var FileNames = []string{
	"langsheet.config.yaml",
	"langsheet.config.yml",
	"langsheet.config.toml",
	"langsheet.config.json",
	".langsheet.yaml",
}

// Defaults applied after loading and merging.
const (
	DefaultDirectory = "./i18n"
	DefaultType      = langmodel.Nest
	DefaultFormat    = langmodel.FormatJSON
)

// ---------------------------------------------------------------------------
// File schema
// ---------------------------------------------------------------------------

// File is the on-disk structure shared by all config formats.
type File struct {
	SheetID    string   `json:"sheetId,omitempty" yaml:"sheetId,omitempty" toml:"sheetId,omitempty"`
	SheetTitle string   `json:"sheetTitle,omitempty" yaml:"sheetTitle,omitempty" toml:"sheetTitle,omitempty"`
	Languages  []string `json:"languages,omitempty" yaml:"languages,omitempty" toml:"languages,omitempty"`
	Type       string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Directory  string   `json:"directory,omitempty" yaml:"directory,omitempty" toml:"directory,omitempty"`
	Format     string   `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	// RailsRoot wraps YAML files in a top-level locale key.
	RailsRoot bool `json:"railsRoot,omitempty" yaml:"railsRoot,omitempty" toml:"railsRoot,omitempty"`
	// Credentials is either a path to a service account key file or the key
	// itself as an inline object.
	Credentials any `json:"credentials,omitempty" yaml:"credentials,omitempty" toml:"credentials,omitempty"`
}

// Config is a resolved configuration.
type Config struct {
	SheetID    string
	SheetTitle string
	Languages  []string
	Type       langmodel.ContentType
	Directory  string
	Format     langmodel.Format
	RailsRoot  bool

	// CredentialsFile is a path to a service account key.
	CredentialsFile string
	// CredentialsJSON holds an inline service account key. It wins over
	// CredentialsFile.
	CredentialsJSON []byte

	// Path is the file the config was loaded from, empty when none was.
	Path string
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Find returns the first config file from FileNames that exists in dir, or
// an empty string.
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if FileExists(path) {
			return path
		}
	}
	return ""
}

// Load reads the config for a working directory. An explicit path (relative
// paths are resolved against dir) must exist; otherwise the file is
// discovered with Find, and a directory without one yields an empty Config.
func Load(dir, explicit string) (*Config, error) {
	path := explicit
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if !FileExists(path) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		path = Find(dir)
	}

	if path == "" {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file; the format is chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg, err := f.Config()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes config data. ext is the file extension including the dot.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".json":
		err = json.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (supported: .yaml, .yml, .toml, .json)", ext)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Config converts the file structure into a Config. Type and format are
// checked here so a typo fails at load time.
func (f *File) Config() (*Config, error) {
	cfg := &Config{
		SheetID:    strings.TrimSpace(f.SheetID),
		SheetTitle: f.SheetTitle,
		Languages:  f.Languages,
		Directory:  f.Directory,
		RailsRoot:  f.RailsRoot,
	}

	if f.Type != "" {
		typ, err := langmodel.ParseContentType(f.Type)
		if err != nil {
			return nil, err
		}
		cfg.Type = typ
	}
	if f.Format != "" {
		format, err := langmodel.ParseFormat(f.Format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}

	switch c := f.Credentials.(type) {
	case nil:
	case string:
		cfg.CredentialsFile = c
	case map[string]any:
		data, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encoding inline credentials: %w", err)
		}
		cfg.CredentialsJSON = data
	default:
		return nil, fmt.Errorf("credentials must be a file path or an object, got %T", f.Credentials)
	}

	return cfg, nil
}

// ---------------------------------------------------------------------------
// Merging
// ---------------------------------------------------------------------------

// Merge overrides c with every non-zero field of o. o usually holds only the
// flags given explicitly on the command line.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	if o.SheetID != "" {
		c.SheetID = o.SheetID
	}
	if o.SheetTitle != "" {
		c.SheetTitle = o.SheetTitle
	}
	if len(o.Languages) > 0 {
		c.Languages = o.Languages
	}
	if o.Type != "" {
		c.Type = o.Type
	}
	if o.Directory != "" {
		c.Directory = o.Directory
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.RailsRoot {
		c.RailsRoot = true
	}
	if o.CredentialsFile != "" || len(o.CredentialsJSON) > 0 {
		c.CredentialsFile = o.CredentialsFile
		c.CredentialsJSON = o.CredentialsJSON
	}
}

// ApplyDefaults fills directory, type and format when unset.
func (c *Config) ApplyDefaults() {
	if c.Directory == "" {
		c.Directory = DefaultDirectory
	}
	if c.Type == "" {
		c.Type = DefaultType
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
}

// FolderOptions returns the langmodel options that read and write the
// translation directory.
func (c *Config) FolderOptions() []langmodel.Option {
	opts := []langmodel.Option{langmodel.WithFormat(c.Format)}
	if c.RailsRoot {
		opts = append(opts, langmodel.WithRailsRoot())
	}
	return opts
}

// ResolveDirectory returns the translation directory as an absolute path,
// relative paths being taken from workDir.
func (c *Config) ResolveDirectory(workDir string) string {
	return resolvePath(workDir, c.Directory)
}

// ResolveCredentialsFile returns the credentials path as an absolute path,
// or an empty string when no file is configured.
func (c *Config) ResolveCredentialsFile(workDir string) string {
	if c.CredentialsFile == "" {
		return ""
	}
	return resolvePath(workDir, c.CredentialsFile)
}

func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Required fields, reported by Validate.
var (
	ErrMissingSheetID    = errors.New("sheet-id is required (via CLI argument or config file)")
	ErrMissingSheetTitle = errors.New("sheet-title is required (via CLI argument or config file)")
	ErrMissingLanguages  = errors.New("languages are required (via CLI argument or config file)")
)

// Validate checks the fields needed to sync with a spreadsheet. All problems
// are reported together.
func (c *Config) Validate() error {
	var errs []error
	switch {
	case c.SheetID == "":
		errs = append(errs, ErrMissingSheetID)
	case !ValidateSheetID(c.SheetID):
		errs = append(errs, fmt.Errorf("invalid sheet ID format: %s (check your Google Sheet URL)", c.SheetID))
	}
	if c.SheetTitle == "" {
		errs = append(errs, ErrMissingSheetTitle)
	}
	if len(c.Languages) == 0 {
		errs = append(errs, ErrMissingLanguages)
	}
	if c.Type != "" && !ValidateContentType(string(c.Type)) {
		errs = append(errs, fmt.Errorf("invalid type %q (valid: nest, flat)", c.Type))
	}
	return errors.Join(errs...)
}
