// Package yamlfile implements reading and writing of YAML translation files.
//
// The expected file format is a nested YAML map with string leaf values:
//
//	greeting: Hello
//	nav:
//	  home: Home
//	  about: About
//
// Rails i18n style (locale as the single top-level key) is also supported:
//
//	en:
//	  greeting: Hello
//	  nav:
//	    home: Home
//
// Non-string scalars keep their literal text, null becomes an empty string
// and sequences become branches keyed by index, matching the JSON codec.
package yamlfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/langsheet/content"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a YAML translation file. When locale is not
// empty and the document uses Rails style with locale as its root key, the
// locale level is removed.
func ParseFile(path, locale string) (*content.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, locale)
}

// Parse parses YAML data into a nested tree, keeping document key order.
// An empty document yields an empty branch. If locale is not empty and the
// document's only top-level key equals it with a mapping value, that mapping
// becomes the root.
func Parse(data []byte, locale string) (*content.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// yaml.Unmarshal wraps the document in a DocumentNode.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return content.NewBranch(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML root must be a mapping, got kind %d", root.Kind)
	}

	// Detect Rails i18n style: single top-level key whose value is a mapping.
	if locale != "" && len(root.Content) == 2 {
		keyNode, valNode := root.Content[0], root.Content[1]
		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == locale && valNode.Kind == yaml.MappingNode {
			root = valNode
		}
	}

	return convert(root), nil
}

// convert recursively turns a yaml node into a tree node.
func convert(node *yaml.Node) *content.Node {
	switch node.Kind {
	case yaml.AliasNode:
		return convert(node.Alias)
	case yaml.MappingNode:
		n := content.NewBranch()
		for i := 0; i+1 < len(node.Content); i += 2 {
			n.Set(node.Content[i].Value, convert(node.Content[i+1]))
		}
		return n
	case yaml.SequenceNode:
		n := content.NewBranch()
		for i, item := range node.Content {
			n.Set(strconv.Itoa(i), convert(item))
		}
		return n
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return content.Leaf("")
		}
		return content.Leaf(node.Value)
	}
	return content.Leaf("")
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Marshal renders a tree as YAML with two-space indentation. Empty strings
// are double-quoted so they survive a round-trip as strings; every other
// scalar is tagged as a string so values like "yes" or "42" stay text.
func Marshal(n *content.Node) ([]byte, error) {
	if n == nil {
		n = content.NewBranch()
	}

	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(n)); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return b.Bytes(), nil
}

// MarshalFlat renders flat content as a single-level YAML mapping.
func MarshalFlat(f *content.Flat) ([]byte, error) {
	if f == nil {
		f = content.NewFlat()
	}
	return Marshal(f.Node())
}

func toYAML(n *content.Node) *yaml.Node {
	if n.IsLeaf() {
		return stringNode(n.Value())
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	n.Each(func(key string, child *content.Node) {
		m.Content = append(m.Content, stringNode(key), toYAML(child))
	})
	return m
}

func stringNode(s string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if s == "" {
		node.Style = yaml.DoubleQuotedStyle
	}
	return node
}

// WriteFile serialises the tree and writes it to the given path.
func WriteFile(path string, n *content.Node) error {
	data, err := Marshal(n)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
