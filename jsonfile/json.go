// Package jsonfile implements reading and writing of JSON translation files.
//
// A translation file is a JSON object whose values are strings or further
// objects:
//
//	{
//	  "name": "Name",
//	  "nav": {
//	    "home": "Home"
//	  }
//	}
//
// Key order is preserved on parse and on write. Output is indented with two
// spaces and does not escape HTML characters, so translated markup stays
// readable in review.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/minios-linux/langsheet/content"
)

// Indent is the per-level indentation used by Marshal.
const Indent = "  "

// ErrNotObject is returned when the document root is not a JSON object.
var ErrNotObject = errors.New("JSON root must be an object")

// ParseFile reads and parses a JSON translation file.
func ParseFile(path string) (*content.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses JSON data into a nested tree, keeping document key order.
//
// Non-string leaves are coerced: numbers and booleans keep their literal
// text, null becomes an empty string, and arrays become branches keyed by
// element index.
func Parse(data []byte) (*content.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing JSON: invalid document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}
	return convert(root), nil
}

func convert(r gjson.Result) *content.Node {
	switch {
	case r.IsObject():
		n := content.NewBranch()
		r.ForEach(func(key, value gjson.Result) bool {
			n.Set(key.String(), convert(value))
			return true
		})
		return n
	case r.IsArray():
		n := content.NewBranch()
		i := 0
		r.ForEach(func(_, value gjson.Result) bool {
			n.Set(strconv.Itoa(i), convert(value))
			i++
			return true
		})
		return n
	}

	switch r.Type {
	case gjson.String:
		return content.Leaf(r.String())
	case gjson.Null:
		return content.Leaf("")
	default:
		return content.Leaf(r.Raw)
	}
}

// Marshal renders a tree as indented JSON with a trailing newline.
// A nil tree renders as an empty object.
func Marshal(n *content.Node) ([]byte, error) {
	var b bytes.Buffer
	if n == nil {
		n = content.NewBranch()
	}
	if err := writeNode(&b, n, 0); err != nil {
		return nil, err
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// MarshalFlat renders flat content as a single-level JSON object.
func MarshalFlat(f *content.Flat) ([]byte, error) {
	if f == nil {
		f = content.NewFlat()
	}
	return Marshal(f.Node())
}

func writeNode(b *bytes.Buffer, n *content.Node, depth int) error {
	if n.IsLeaf() {
		return writeString(b, n.Value())
	}
	if n.Len() == 0 {
		b.WriteString("{}")
		return nil
	}

	b.WriteString("{\n")
	i := 0
	var err error
	n.Each(func(key string, child *content.Node) {
		if err != nil {
			return
		}
		writeIndent(b, depth+1)
		if err = writeString(b, key); err != nil {
			return
		}
		b.WriteString(": ")
		if err = writeNode(b, child, depth+1); err != nil {
			return
		}
		if i < n.Len()-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
		i++
	})
	if err != nil {
		return err
	}
	writeIndent(b, depth)
	b.WriteByte('}')
	return nil
}

func writeIndent(b *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(Indent)
	}
}

// writeString writes a JSON string literal without HTML escaping.
func writeString(b *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}
	b.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// WriteFile marshals a tree and writes it to path, creating parent
// directories as needed.
func WriteFile(path string, n *content.Node) error {
	data, err := Marshal(n)
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
