// Package propfile implements reading and writing of Java .properties
// translation files.
//
// Format: key=value pairs, one per line. Lines starting with '#' or '!' are
// comments and blank lines are ignored. The separator may be '=', ':' or
// whitespace. A trailing backslash continues the value on the next line.
// Escapes \t \n \r \f \\ \= \: \# \! \<space> and \uXXXX are decoded.
//
// Files are read and written as UTF-8 (Java 9+ ResourceBundle default).
// Reading goes through github.com/magiconair/properties; the writer emits
// key=value lines without padding around the separator.
// Keys keep their dots, so a properties file is always flat content:
//
//	i18n/en.properties
//	i18n/fr.properties
package propfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"

	"github.com/minios-linux/langsheet/content"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a .properties file from disk.
func ParseFile(path string) (*content.Flat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses .properties content. Duplicate keys keep their first position
// and their last value. ${...} references are kept as literal text.
func Parse(data []byte) (*content.Flat, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(bytes.TrimPrefix(data, []byte("\ufeff")))
	if err != nil {
		return nil, err
	}

	f := content.NewFlat()
	for _, key := range p.Keys() {
		if key == "" {
			continue
		}
		value, _ := p.Get(key)
		f.Set(key, value)
	}
	return f, nil
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serialises flat content as key=value lines in key order.
func Marshal(f *content.Flat) []byte {
	var buf bytes.Buffer
	if f == nil {
		return buf.Bytes()
	}
	f.Each(func(key, value string) {
		buf.WriteString(escape(key, true))
		buf.WriteByte('=')
		buf.WriteString(escape(value, false))
		buf.WriteByte('\n')
	})
	return buf.Bytes()
}

func escape(s string, isKey bool) string {
	var b strings.Builder
	for i, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '=', ':':
			if isKey {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		case '#', '!':
			if i == 0 {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		case ' ':
			if isKey || i == 0 {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteFile serialises f and writes it to path, creating parent directories
// with 0755 permissions.
func WriteFile(path string, f *content.Flat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, Marshal(f), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
