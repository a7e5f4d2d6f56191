// Package content holds the two in-memory shapes of one language's
// translations and the transform between them.
//
// A nested tree (Node) mirrors how translation files are authored:
//
//	{"nav": {"home": "Home", "about": "About"}}
//
// A flat map (Flat) pairs a dot-joined key with its string, the way a
// spreadsheet row does:
//
//	{"nav.home": "Home", "nav.about": "About"}
//
// Both shapes keep insertion order so that written files and sheets come out
// in a stable, diff-friendly order.
package content

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is one node of a nested translation tree: either a leaf string or a
// branch of named children.
type Node struct {
	value    string
	children *orderedmap.OrderedMap[string, *Node]
}

// Leaf returns a leaf node holding s.
func Leaf(s string) *Node {
	return &Node{value: s}
}

// NewBranch returns an empty branch node.
func NewBranch() *Node {
	return &Node{children: orderedmap.New[string, *Node]()}
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.children == nil
}

// Value returns the leaf string. It is empty for branches.
func (n *Node) Value() string {
	return n.value
}

// Set adds or replaces a child of a branch. A replaced child keeps its
// original position. Set panics on a leaf or a nil child.
func (n *Node) Set(key string, child *Node) {
	if n.children == nil {
		panic("content: Set on leaf node")
	}
	if child == nil {
		panic("content: Set with nil child")
	}
	n.children.Set(key, child)
}

// Child returns the named child of a branch.
func (n *Node) Child(key string) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}
	return n.children.Get(key)
}

// Len returns the number of children; zero for leaves.
func (n *Node) Len() int {
	if n.children == nil {
		return 0
	}
	return n.children.Len()
}

// Keys returns the child keys in insertion order.
func (n *Node) Keys() []string {
	if n.children == nil {
		return nil
	}
	keys := make([]string, 0, n.children.Len())
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every child in insertion order.
func (n *Node) Each(fn func(key string, child *Node)) {
	if n.children == nil {
		return
	}
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Equal reports whether two trees hold the same keys and leaf strings.
// Key order is not compared.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.IsLeaf() != o.IsLeaf() {
		return false
	}
	if n.IsLeaf() {
		return n.value == o.value
	}
	if n.Len() != o.Len() {
		return false
	}
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		other, ok := o.children.Get(pair.Key)
		if !ok || !pair.Value.Equal(other) {
			return false
		}
	}
	return true
}

// Flat is one language's flat content: dot-joined key to translated string,
// in insertion order.
type Flat struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewFlat returns an empty Flat.
func NewFlat() *Flat {
	return &Flat{m: orderedmap.New[string, string]()}
}

// FlatOf builds a Flat from alternating key, value arguments.
// It panics on an odd argument count.
func FlatOf(kv ...string) *Flat {
	if len(kv)%2 != 0 {
		panic("content: FlatOf needs key/value pairs")
	}
	f := NewFlat()
	for i := 0; i < len(kv); i += 2 {
		f.Set(kv[i], kv[i+1])
	}
	return f
}

// Set adds or replaces the value for key.
func (f *Flat) Set(key, value string) {
	f.m.Set(key, value)
}

// Get returns the value for key.
func (f *Flat) Get(key string) (string, bool) {
	return f.m.Get(key)
}

// Len returns the number of keys.
func (f *Flat) Len() int {
	return f.m.Len()
}

// Keys returns the keys in insertion order.
func (f *Flat) Keys() []string {
	keys := make([]string, 0, f.m.Len())
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every pair in insertion order.
func (f *Flat) Each(fn func(key, value string)) {
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Map returns the pairs as a plain map.
func (f *Flat) Map() map[string]string {
	out := make(map[string]string, f.m.Len())
	f.Each(func(k, v string) { out[k] = v })
	return out
}

// Clone returns an independent copy.
func (f *Flat) Clone() *Flat {
	c := NewFlat()
	f.Each(c.Set)
	return c
}

// Node returns the pairs as a single-level branch. Keys are not split, so a
// dotted key stays one child.
func (f *Flat) Node() *Node {
	n := NewBranch()
	f.Each(func(k, v string) { n.Set(k, Leaf(v)) })
	return n
}
