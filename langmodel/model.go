// Package langmodel holds the translations of several languages in one
// model and moves them between nested files and flat key/value tables.
//
// The model stores flat content only. The nested view is derived on demand,
// so the key safety rules of content.Unflatten apply whenever it is
// requested or written.
package langmodel

import (
	"fmt"

	"github.com/minios-linux/langsheet/content"
)

// ContentType selects the shape of written files.
type ContentType string

const (
	// Nest writes hierarchical objects: {"nav": {"home": "Home"}}.
	Nest ContentType = "nest"
	// Flat writes dot-joined keys: {"nav.home": "Home"}.
	Flat ContentType = "flat"
)

// ContentTypes lists the accepted content types.
var ContentTypes = []ContentType{Nest, Flat}

// ParseContentType parses a content type name. An empty string selects Nest.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case "", Nest:
		return Nest, nil
	case Flat:
		return Flat, nil
	}
	return "", fmt.Errorf("unknown content type %q (valid: nest, flat)", s)
}

// Model holds flat content for an ordered list of languages.
type Model struct {
	languages []string
	flat      map[string]*content.Flat
}

// New builds a model from nested content. Every language's content is
// flattened; a language without content gets an empty table. Content that
// is already flat passes through unchanged.
func New(languages []string, nested map[string]*content.Node) *Model {
	m := &Model{
		languages: append([]string(nil), languages...),
		flat:      make(map[string]*content.Flat, len(languages)),
	}
	for _, lang := range m.languages {
		m.flat[lang] = content.Flatten(nested[lang])
	}
	return m
}

// NewFromFlat builds a model from content that is already flat, such as a
// table read from a spreadsheet. The pairs are copied.
func NewFromFlat(languages []string, flat map[string]*content.Flat) *Model {
	m := &Model{
		languages: append([]string(nil), languages...),
		flat:      make(map[string]*content.Flat, len(languages)),
	}
	for _, lang := range m.languages {
		if f := flat[lang]; f != nil {
			m.flat[lang] = f.Clone()
		} else {
			m.flat[lang] = content.NewFlat()
		}
	}
	return m
}

// Languages returns the language codes in model order.
func (m *Model) Languages() []string {
	return append([]string(nil), m.languages...)
}

// Flat returns the stored flat content per language. The returned tables
// are the model's own and must be treated as read-only.
func (m *Model) Flat() map[string]*content.Flat {
	return m.flat
}

// Nest derives nested content for every language. The first language that
// fails to unflatten aborts the call.
func (m *Model) Nest() (map[string]*content.Node, error) {
	out := make(map[string]*content.Node, len(m.languages))
	for _, lang := range m.languages {
		n, err := content.Unflatten(m.flat[lang])
		if err != nil {
			return nil, fmt.Errorf("language %s: %w", lang, err)
		}
		out[lang] = n
	}
	return out, nil
}

// Stats returns the number of keys of a language and how many of them have
// an empty value.
func (m *Model) Stats(lang string) (total, empty int) {
	f := m.flat[lang]
	if f == nil {
		return 0, 0
	}
	f.Each(func(_, v string) {
		total++
		if v == "" {
			empty++
		}
	})
	return total, empty
}
