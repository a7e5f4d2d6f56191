package lockfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/minios-linux/langsheet/content"
)

func TestHashDeterministic(t *testing.T) {
	h1 := Hash("hello world")
	h2 := Hash("hello world")
	if h1 != h2 {
		t.Errorf("Hash not deterministic: %s != %s", h1, h2)
	}
	if len(h1) != 16 {
		t.Errorf("Hash length = %d, want 16", len(h1))
	}
	h3 := Hash("different")
	if h1 == h3 {
		t.Errorf("Hash collision: %s == %s", h1, h3)
	}
}

func TestTargetKey(t *testing.T) {
	if got := TargetKey("i18n", "zh-TW"); got != "i18n/zh-TW" {
		t.Errorf("TargetKey = %q, want i18n/zh-TW", got)
	}
}

func TestLoadNonExistent(t *testing.T) {
	lf, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error for non-existent file: %v", err)
	}
	if lf.Version != Version {
		t.Errorf("Version = %d, want %d", lf.Version, Version)
	}
	if len(lf.Checksums) != 0 {
		t.Errorf("Checksums not empty: %v", lf.Checksums)
	}
	if lf.Summary() != "empty" {
		t.Errorf("Summary = %q, want empty", lf.Summary())
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte("checksums: [\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := Load(dir); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("newer version", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte("version: 99\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(dir)
		if err == nil || !strings.Contains(err.Error(), "unsupported lock file version") {
			t.Fatalf("expected version error, got %v", err)
		}
	})
}

func TestRecordSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	lf, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	lf.Record("i18n/en", content.FlatOf("name", "name", "nest.a", "A"))
	lf.Record("i18n/fr", content.FlatOf("name", "nom"))

	if err := lf.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, LockFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Lock file not created at %s", path)
	}

	lf2, err := Load(dir)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if !reflect.DeepEqual(lf2.Checksums, lf.Checksums) {
		t.Errorf("Checksums after reload = %v, want %v", lf2.Checksums, lf.Checksums)
	}
	if got := lf2.Checksums["i18n/en"]["nest.a"]; got != Hash("A") {
		t.Errorf("checksum for nest.a = %q, want %q", got, Hash("A"))
	}

	targets, keys := lf2.Stats()
	if targets != 2 || keys != 3 {
		t.Errorf("Stats = (%d, %d), want (2, 3)", targets, keys)
	}
	if want := "2 targets, 3 keys (i18n/en: 2 keys, i18n/fr: 1 keys)"; lf2.Summary() != want {
		t.Errorf("Summary = %q, want %q", lf2.Summary(), want)
	}
}

func TestDiff(t *testing.T) {
	lf, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	t.Run("unrecorded target", func(t *testing.T) {
		d := lf.Diff("i18n/en", content.FlatOf("b", "1", "a", "2"))
		if !reflect.DeepEqual(d.Added, []string{"a", "b"}) || len(d.Changed) != 0 || len(d.Removed) != 0 {
			t.Errorf("Diff = %+v, want all added", d)
		}
	})

	lf.Record("i18n/en", content.FlatOf("keep", "same", "edit", "old", "drop", "gone"))

	t.Run("no drift", func(t *testing.T) {
		d := lf.Diff("i18n/en", content.FlatOf("keep", "same", "edit", "old", "drop", "gone"))
		if !d.Empty() {
			t.Errorf("Diff = %+v, want empty", d)
		}
		if d.String() != "up to date" {
			t.Errorf("String = %q", d.String())
		}
	})

	t.Run("drift", func(t *testing.T) {
		d := lf.Diff("i18n/en", content.FlatOf("keep", "same", "edit", "new", "fresh", "x"))
		want := Drift{Added: []string{"fresh"}, Changed: []string{"edit"}, Removed: []string{"drop"}}
		if !reflect.DeepEqual(d, want) {
			t.Errorf("Diff = %+v, want %+v", d, want)
		}
		if d.String() != "1 added, 1 changed, 1 removed" {
			t.Errorf("String = %q", d.String())
		}
	})

	t.Run("nil content", func(t *testing.T) {
		d := lf.Diff("i18n/en", nil)
		if !reflect.DeepEqual(d.Removed, []string{"drop", "edit", "keep"}) {
			t.Errorf("Diff(nil).Removed = %v", d.Removed)
		}
	})
}

func TestEmptyValuesAreNotTracked(t *testing.T) {
	lf, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	lf.Record("i18n/fr", content.FlatOf("name", "nom", "job", ""))
	if _, ok := lf.Checksums["i18n/fr"]["job"]; ok {
		t.Errorf("empty value recorded: %v", lf.Checksums["i18n/fr"])
	}
	if d := lf.Diff("i18n/fr", content.FlatOf("name", "nom")); !d.Empty() {
		t.Errorf("Diff = %+v, want empty", d)
	}
	if d := lf.Diff("i18n/fr", content.FlatOf("name", "nom", "job", "")); !d.Empty() {
		t.Errorf("Diff with empty value = %+v, want empty", d)
	}
}

func TestRecordReplacesTarget(t *testing.T) {
	lf, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	lf.Record("i18n/en", content.FlatOf("a", "1", "b", "2"))
	lf.Record("i18n/en", content.FlatOf("c", "3"))

	if got := lf.Checksums["i18n/en"]; len(got) != 1 || got["c"] != Hash("3") {
		t.Errorf("Checksums = %v, want only c", got)
	}
	if !lf.Has("i18n/en") || lf.Has("i18n/fr") {
		t.Errorf("Has mismatch: targets %v", lf.Targets())
	}

	lf.RemoveTarget("i18n/en")
	if len(lf.Targets()) != 0 {
		t.Errorf("Targets after remove = %v", lf.Targets())
	}
}
