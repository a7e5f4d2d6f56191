package langmodel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minios-linux/langsheet/content"
	"github.com/minios-linux/langsheet/jsonfile"
)

var languages = []string{"en", "fr", "es"}

func mustParse(t *testing.T, s string) *content.Node {
	t.Helper()
	n, err := jsonfile.Parse([]byte(s))
	require.NoError(t, err)
	return n
}

func nestExample(t *testing.T) map[string]*content.Node {
	return map[string]*content.Node{
		"en": mustParse(t, `{"name": "name", "job": "job", "nest": {"object": {"example1": "example1", "example2": "example2"}}}`),
		"fr": mustParse(t, `{"name": "nom", "job": "emploi"}`),
		"es": mustParse(t, `{"name": "nombre", "job": "trabajo"}`),
	}
}

func flatExample() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"name":                 "name",
			"job":                  "job",
			"nest.object.example1": "example1",
			"nest.object.example2": "example2",
		},
		"fr": {"name": "nom", "job": "emploi"},
		"es": {"name": "nombre", "job": "trabajo"},
	}
}

func flatMaps(m *Model) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for lang, f := range m.Flat() {
		out[lang] = f.Map()
	}
	return out
}

func expectModel(t *testing.T, m *Model) {
	t.Helper()
	assert.Equal(t, flatExample(), flatMaps(m))

	nested, err := m.Nest()
	require.NoError(t, err)
	want := nestExample(t)
	for _, lang := range languages {
		assert.True(t, want[lang].Equal(nested[lang]), "nested %s differs", lang)
	}
}

func TestNewFromNested(t *testing.T) {
	expectModel(t, New(languages, nestExample(t)))
}

func TestNewFromFlatShapedContent(t *testing.T) {
	in := make(map[string]*content.Node)
	for lang, kv := range flatExample() {
		in[lang] = mustParse(t, mustJSON(t, kv))
	}
	expectModel(t, New(languages, in))
}

func TestNewFromFlat(t *testing.T) {
	in := map[string]*content.Flat{
		"en": content.FlatOf("name", "name", "job", "job", "nest.object.example1", "example1", "nest.object.example2", "example2"),
		"fr": content.FlatOf("name", "nom", "job", "emploi"),
		"es": content.FlatOf("name", "nombre", "job", "trabajo"),
	}
	m := NewFromFlat(languages, in)
	expectModel(t, m)

	// The model owns a copy.
	in["fr"].Set("name", "changed")
	v, _ := m.Flat()["fr"].Get("name")
	assert.Equal(t, "nom", v)
}

func TestMultiLanguageIsolation(t *testing.T) {
	m := New([]string{"en", "fr"}, map[string]*content.Node{
		"en": mustParse(t, `{"name": "name"}`),
		"fr": mustParse(t, `{"name": "nom"}`),
	})
	assert.Equal(t, map[string]map[string]string{
		"en": {"name": "name"},
		"fr": {"name": "nom"},
	}, flatMaps(m))

	nested, err := m.Nest()
	require.NoError(t, err)
	assert.True(t, mustParse(t, `{"name": "name"}`).Equal(nested["en"]))
	assert.True(t, mustParse(t, `{"name": "nom"}`).Equal(nested["fr"]))
}

func TestMissingLanguageIsEmpty(t *testing.T) {
	m := New([]string{"en", "de"}, map[string]*content.Node{"en": mustParse(t, `{"a": "x"}`)})
	assert.Equal(t, 0, m.Flat()["de"].Len())
	assert.Equal(t, []string{"en", "de"}, m.Languages())
}

func TestNestKeySafetyViolation(t *testing.T) {
	m := NewFromFlat([]string{"en", "fr"}, map[string]*content.Flat{
		"en": content.FlatOf("ok", "fine"),
		"fr": content.FlatOf("list.0", "x"),
	})
	nested, err := m.Nest()
	assert.Nil(t, nested)
	require.Error(t, err)
	assert.ErrorIs(t, err, content.ErrKeySafety)
	assert.Contains(t, err.Error(), "fr")
}

func TestStats(t *testing.T) {
	m := NewFromFlat([]string{"en"}, map[string]*content.Flat{
		"en": content.FlatOf("a", "x", "b", "", "c", "y"),
	})
	total, empty := m.Stats("en")
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, empty)

	total, empty = m.Stats("missing")
	assert.Zero(t, total)
	assert.Zero(t, empty)
}

func TestParseContentType(t *testing.T) {
	for in, want := range map[string]ContentType{"": Nest, "nest": Nest, "flat": Flat} {
		got, err := ParseContentType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"NEST", "FLAT", "invalid"} {
		_, err := ParseContentType(in)
		assert.Error(t, err, in)
	}
}

func TestSaveToFolderStructureSelection(t *testing.T) {
	m := New([]string{"en"}, map[string]*content.Node{"en": mustParse(t, `{"a": {"b": "x"}}`)})

	t.Run("flat", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, m.SaveToFolder(dir, Flat))
		assert.Equal(t, "{\n  \"a.b\": \"x\"\n}\n", readFile(t, filepath.Join(dir, "en.json")))
	})

	t.Run("nest", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, m.SaveToFolder(dir, Nest))
		assert.Equal(t, "{\n  \"a\": {\n    \"b\": \"x\"\n  }\n}\n", readFile(t, filepath.Join(dir, "en.json")))
	})

	t.Run("default is nest", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, m.SaveToFolder(dir, ""))
		assert.Equal(t, "{\n  \"a\": {\n    \"b\": \"x\"\n  }\n}\n", readFile(t, filepath.Join(dir, "en.json")))
	})

	t.Run("unknown type", func(t *testing.T) {
		assert.Error(t, m.SaveToFolder(t.TempDir(), ContentType("tree")))
	})
}

func TestSaveToFolderCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "i18n")
	m := New(languages, nestExample(t))
	require.NoError(t, m.SaveToFolder(dir, Nest))

	for _, lang := range languages {
		info, err := os.Stat(filepath.Join(dir, lang+".json"))
		require.NoError(t, err, lang)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}
}

func TestSaveToFolderKeySafetyWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m := NewFromFlat([]string{"en"}, map[string]*content.Flat{"en": content.FlatOf("a.1", "x")})

	err := m.SaveToFolder(dir, Nest)
	assert.ErrorIs(t, err, content.ErrKeySafety)
	_, statErr := os.Stat(dir)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	// The flat shape has no such restriction.
	require.NoError(t, m.SaveToFolder(dir, Flat))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatProperties} {
		for _, typ := range ContentTypes {
			t.Run(string(format)+"/"+string(typ), func(t *testing.T) {
				dir := t.TempDir()
				m := New(languages, nestExample(t))
				require.NoError(t, m.SaveToFolder(dir, typ, WithFormat(format)))

				loaded, err := LoadFromFolder(dir, languages, WithFormat(format))
				require.NoError(t, err)
				expectModel(t, loaded)
			})
		}
	}
}

func TestLoadFromFolderMissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"a": "x"}`), 0644))

	_, err := LoadFromFolder(dir, []string{"en", "fr"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "fr", le.Lang)
	assert.Equal(t, filepath.Join(dir, "fr.json"), le.Path)
}

func TestLoadFromFolderUnparsable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"a":`), 0644))

	_, err := LoadFromFolder(dir, []string{"en"})
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadFromFolderRailsYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("en:\n  nav:\n    home: Home\n"), 0644))

	m, err := LoadFromFolder(dir, []string{"en"}, WithFormat(FormatYAML), WithRailsRoot())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"nav.home": "Home"}, m.Flat()["en"].Map())

	// Without the option the locale key is ordinary content.
	m, err = LoadFromFolder(dir, []string{"en"}, WithFormat(FormatYAML))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"en.nav.home": "Home"}, m.Flat()["en"].Map())
}

func TestYAMLKeysNamedAfterLocaleSurviveRoundTrip(t *testing.T) {
	for _, typ := range ContentTypes {
		for name, opts := range map[string][]Option{
			"plain": {WithFormat(FormatYAML)},
			"rails": {WithFormat(FormatYAML), WithRailsRoot()},
		} {
			t.Run(string(typ)+"/"+name, func(t *testing.T) {
				dir := t.TempDir()
				m := NewFromFlat([]string{"en"}, map[string]*content.Flat{
					"en": content.FlatOf("en.title", "English", "en.menu.open", "Open"),
				})
				require.NoError(t, m.SaveToFolder(dir, typ, opts...))

				loaded, err := LoadFromFolder(dir, []string{"en"}, opts...)
				require.NoError(t, err)
				assert.Equal(t, m.Flat()["en"].Map(), loaded.Flat()["en"].Map())
			})
		}
	}
}

func TestSaveToFolderRailsRoot(t *testing.T) {
	dir := t.TempDir()
	m := New([]string{"en"}, map[string]*content.Node{"en": mustParse(t, `{"nav": {"home": "Home"}}`)})
	require.NoError(t, m.SaveToFolder(dir, Nest, WithFormat(FormatYAML), WithRailsRoot()))
	assert.Equal(t, "en:\n  nav:\n    home: Home\n", readFile(t, filepath.Join(dir, "en.yaml")))

	// JSON files are never wrapped.
	require.NoError(t, m.SaveToFolder(dir, Nest, WithRailsRoot()))
	assert.Equal(t, "{\n  \"nav\": {\n    \"home\": \"Home\"\n  }\n}\n", readFile(t, filepath.Join(dir, "en.json")))
}

func TestSaveToFolderProperties(t *testing.T) {
	m := NewFromFlat([]string{"en"}, map[string]*content.Flat{"en": content.FlatOf("nav.home", "Home", "nav.todo", "", "title", "a = b")})

	t.Run("flat keeps empty values", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, m.SaveToFolder(dir, Flat, WithFormat(FormatProperties)))
		assert.Equal(t, "nav.home=Home\nnav.todo=\ntitle=a = b\n", readFile(t, filepath.Join(dir, "en.properties")))
	})

	t.Run("nest drops empty values", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, m.SaveToFolder(dir, Nest, WithFormat(FormatProperties)))
		assert.Equal(t, "nav.home=Home\ntitle=a = b\n", readFile(t, filepath.Join(dir, "en.properties")))
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "json": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML, "properties": FormatProperties} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func mustJSON(t *testing.T, kv map[string]string) string {
	t.Helper()
	f := content.NewFlat()
	for k, v := range kv {
		f.Set(k, v)
	}
	data, err := jsonfile.MarshalFlat(f)
	require.NoError(t, err)
	return string(data)
}
