package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Separator joins path segments into a flat key.
const Separator = "."

var (
	// ErrKeySafety is returned when a flat key has a segment that looks like
	// an integer. Such segments would turn into array indices on the way
	// back to a nested file.
	ErrKeySafety = errors.New("key can not be a number")

	// ErrKeyConflict is returned when one flat key is a strict path-prefix
	// of another, so a leaf and a branch would share one position.
	ErrKeyConflict = errors.New("key conflicts with another key")
)

// numericSegment matches segments forbidden by the key safety rule.
var numericSegment = regexp.MustCompile(`^-?\d+$`)

// KeySafetyError reports the offending key and segment.
type KeySafetyError struct {
	Key     string
	Segment string
}

func (e *KeySafetyError) Error() string {
	return fmt.Sprintf("key %q: segment %q is numeric: %v", e.Key, e.Segment, ErrKeySafety)
}

func (e *KeySafetyError) Unwrap() error { return ErrKeySafety }

// KeyConflictError reports a key that collides with an already placed
// leaf or branch at Path.
type KeyConflictError struct {
	Key  string
	Path string
}

func (e *KeyConflictError) Error() string {
	return fmt.Sprintf("key %q collides at %q: %v", e.Key, e.Path, ErrKeyConflict)
}

func (e *KeyConflictError) Unwrap() error { return ErrKeyConflict }

// IsNumericSegment reports whether a path segment matches ^-?\d+$.
func IsNumericSegment(seg string) bool {
	return numericSegment.MatchString(seg)
}

// CheckKey returns a *KeySafetyError if any segment of key is numeric.
func CheckKey(key string) error {
	for _, seg := range strings.Split(key, Separator) {
		if IsNumericSegment(seg) {
			return &KeySafetyError{Key: key, Segment: seg}
		}
	}
	return nil
}

// Flatten turns a nested tree into flat content. Leaves are emitted under
// the dot-joined path of their ancestors, depth-first in key order. Empty
// branches emit nothing. Keys are never reparsed, so flattening content
// that is already flat returns it unchanged.
//
// A nil node or a bare leaf has no keys and yields empty content.
func Flatten(n *Node) *Flat {
	out := NewFlat()
	if n == nil || n.IsLeaf() {
		return out
	}
	flattenInto(out, n, "", false)
	return out
}

func flattenInto(out *Flat, n *Node, prefix string, nested bool) {
	n.Each(func(key string, child *Node) {
		if nested {
			key = prefix + Separator + key
		}
		if child.IsLeaf() {
			out.Set(key, child.Value())
			return
		}
		flattenInto(out, child, key, true)
	})
}

// Unflatten expands flat content back into a nested tree.
//
// Pairs with an empty value are skipped: an untranslated string is not
// written at all. Every other key is split on "." and must not contain a
// numeric segment. Keys that share a prefix are merged into one branch; a
// key that is a strict prefix of another fails with *KeyConflictError.
func Unflatten(f *Flat) (*Node, error) {
	root := NewBranch()
	if f == nil {
		return root, nil
	}

	var err error
	f.Each(func(key, value string) {
		if err != nil || value == "" {
			return
		}
		err = place(root, key, value)
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

func place(root *Node, key, value string) error {
	if err := CheckKey(key); err != nil {
		return err
	}

	segs := strings.Split(key, Separator)
	cur := root
	for i, seg := range segs[:len(segs)-1] {
		child, ok := cur.Child(seg)
		if !ok {
			child = NewBranch()
			cur.Set(seg, child)
		} else if child.IsLeaf() {
			return &KeyConflictError{Key: key, Path: strings.Join(segs[:i+1], Separator)}
		}
		cur = child
	}

	last := segs[len(segs)-1]
	if existing, ok := cur.Child(last); ok && !existing.IsLeaf() {
		return &KeyConflictError{Key: key, Path: key}
	}
	cur.Set(last, Leaf(value))
	return nil
}
