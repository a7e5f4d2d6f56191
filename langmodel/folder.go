package langmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/minios-linux/langsheet/content"
	"github.com/minios-linux/langsheet/jsonfile"
	"github.com/minios-linux/langsheet/propfile"
	"github.com/minios-linux/langsheet/yamlfile"
)

// Format selects the file encoding used in a folder.
type Format string

const (
	// FormatJSON stores <lang>.json files. It is the default.
	FormatJSON Format = "json"
	// FormatYAML stores <lang>.yaml files.
	FormatYAML Format = "yaml"
	// FormatProperties stores <lang>.properties files. Keys are always
	// written flat; the content type only decides which keys survive.
	FormatProperties Format = "properties"
)

// ParseFormat parses a format name. An empty string selects FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatProperties:
		return FormatProperties, nil
	}
	return "", fmt.Errorf("unknown file format %q (valid: json, yaml, properties)", s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatProperties:
		return ".properties"
	}
	return ".json"
}

// ErrLoad is wrapped by every LoadError.
var ErrLoad = errors.New("cannot load language file")

// LoadError reports a language file that is missing or unparsable.
type LoadError struct {
	Lang string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v for %s (%s): %v", ErrLoad, e.Lang, e.Path, e.Err)
}

// Unwrap exposes both ErrLoad and the underlying cause.
func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

// Option configures folder I/O.
type Option func(*options)

type options struct {
	format    Format
	railsRoot bool
}

// WithFormat selects the file format. The default is FormatJSON.
func WithFormat(f Format) Option {
	return func(o *options) {
		if f != "" {
			o.format = f
		}
	}
}

// WithRailsRoot stores YAML files Rails style, under a single top-level key
// equal to the language code:
//
//	en:
//	  nav:
//	    home: Home
//
// Files are written with that root and it is removed again on load. Without
// this option YAML files are read and written as they are, so a top-level
// "en" key is ordinary content. Other formats ignore it.
func WithRailsRoot() Option {
	return func(o *options) { o.railsRoot = true }
}

func buildOptions(opts []Option) options {
	o := options{format: FormatJSON}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FilePath returns the path of a language's file inside dir.
func FilePath(dir, lang string, f Format) string {
	return filepath.Join(dir, lang+f.Ext())
}

// SaveToFolder writes one file per language into dir, creating dir and its
// parents first. typ selects the nested (default) or flat shape. Files are
// indented with two spaces. The nested view is derived before anything is
// written, so a key safety error leaves the folder untouched.
func (m *Model) SaveToFolder(dir string, typ ContentType, opts ...Option) error {
	o := buildOptions(opts)

	typ, err := ParseContentType(string(typ))
	if err != nil {
		return err
	}

	var nested map[string]*content.Node
	if typ == Nest {
		if nested, err = m.Nest(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	for _, lang := range m.languages {
		var tree *content.Node
		if typ == Nest {
			tree = nested[lang]
		} else {
			tree = m.flat[lang].Node()
		}

		path := FilePath(dir, lang, o.format)
		if err := writeTree(path, lang, tree, o); err != nil {
			return err
		}
		slog.Debug("Wrote language file", "lang", lang, "path", path, "type", string(typ))
	}
	return nil
}

func writeTree(path, lang string, n *content.Node, o options) error {
	if n == nil {
		n = content.NewBranch()
	}
	switch o.format {
	case FormatYAML:
		if o.railsRoot {
			root := content.NewBranch()
			root.Set(lang, n)
			n = root
		}
		return yamlfile.WriteFile(path, n)
	case FormatProperties:
		return propfile.WriteFile(path, content.Flatten(n))
	}
	return jsonfile.WriteFile(path, n)
}

// LoadFromFolder reads <lang>.<ext> for every language from dir and builds a
// model from them. Files are read as nested content; flat files load the
// same way because flattening leaves them unchanged. The first missing or
// unparsable file aborts the load with a *LoadError.
func LoadFromFolder(dir string, languages []string, opts ...Option) (*Model, error) {
	o := buildOptions(opts)

	nested := make(map[string]*content.Node, len(languages))
	for _, lang := range languages {
		path := FilePath(dir, lang, o.format)

		var (
			n   *content.Node
			err error
		)
		switch o.format {
		case FormatYAML:
			locale := ""
			if o.railsRoot {
				locale = lang
			}
			n, err = yamlfile.ParseFile(path, locale)
		case FormatProperties:
			var f *content.Flat
			if f, err = propfile.ParseFile(path); err == nil {
				n = f.Node()
			}
		default:
			n, err = jsonfile.ParseFile(path)
		}
		if err != nil {
			return nil, &LoadError{Lang: lang, Path: path, Err: err}
		}

		slog.Debug("Loaded language file", "lang", lang, "path", path)
		nested[lang] = n
	}
	return New(languages, nested), nil
}
