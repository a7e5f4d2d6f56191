package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minios-linux/langsheet/content"
)

func TestParseKeepsOrderAndNesting(t *testing.T) {
	n, err := Parse([]byte(`{"name": "name", "nest": {"object": {"example1": "e1", "example2": "e2"}}, "job": "job"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "nest", "job"}, n.Keys())
	flat := content.Flatten(n)
	assert.Equal(t, []string{"name", "nest.object.example1", "nest.object.example2", "job"}, flat.Keys())
}

func TestParseCoercesNonStringLeaves(t *testing.T) {
	n, err := Parse([]byte(`{"count": 42, "ratio": 1.5, "on": true, "off": false, "none": null, "list": ["a", "b"]}`))
	require.NoError(t, err)

	got := content.Flatten(n).Map()
	assert.Equal(t, map[string]string{
		"count":  "42",
		"ratio":  "1.5",
		"on":     "true",
		"off":    "false",
		"none":   "",
		"list.0": "a",
		"list.1": "b",
	}, got)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"broken":`))
	assert.Error(t, err)

	_, err = Parse([]byte(`["a"]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Parse([]byte(`"text"`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestMarshalIndentsWithTwoSpaces(t *testing.T) {
	n := content.NewBranch()
	inner := content.NewBranch()
	inner.Set("b", content.Leaf("x"))
	n.Set("a", inner)
	n.Set("c", content.Leaf("<b>bold</b> & \"quoted\""))
	n.Set("empty", content.NewBranch())

	out, err := Marshal(n)
	require.NoError(t, err)

	want := "{\n" +
		"  \"a\": {\n" +
		"    \"b\": \"x\"\n" +
		"  },\n" +
		"  \"c\": \"<b>bold</b> & \\\"quoted\\\"\",\n" +
		"  \"empty\": {}\n" +
		"}\n"
	assert.Equal(t, want, string(out))
}

func TestMarshalFlatKeepsDottedKeys(t *testing.T) {
	out, err := MarshalFlat(content.FlatOf("a.b", "x", "name", "n"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a.b\": \"x\",\n  \"name\": \"n\"\n}\n", string(out))
}

func TestMarshalNilIsEmptyObject(t *testing.T) {
	out, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))
}

func TestWriteFileThenParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "en.json")
	n, err := Parse([]byte(`{"greeting": "Hello, 世界", "nav": {"home": "Home"}}`))
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, n))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	back, err := ParseFile(path)
	require.NoError(t, err)
	assert.True(t, n.Equal(back))
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		issues, err := Validate([]byte(`{"a": "x", "nav": {"home": "Home", "deep": {"x": ""}}}`))
		require.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("non-string leaves", func(t *testing.T) {
		issues, err := Validate([]byte(`{"a": "x", "nav": {"count": 3}, "list": ["a"]}`))
		require.NoError(t, err)
		require.NotEmpty(t, issues)

		fields := make([]string, 0, len(issues))
		for _, i := range issues {
			fields = append(fields, i.Field)
		}
		assert.Contains(t, fields, "nav.count")
		assert.Contains(t, fields, "list")
	})

	t.Run("root not object", func(t *testing.T) {
		issues, err := Validate([]byte(`[]`))
		require.NoError(t, err)
		assert.NotEmpty(t, issues)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := Validate([]byte(`{"a":`))
		assert.Error(t, err)
	})
}
