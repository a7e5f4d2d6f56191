package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateSheetID(t *testing.T) {
	cases := map[string]bool{
		testSheetID:                true,
		"abc_DEF-123456789012345":  true,
		"abc123":                   false,
		"":                         false,
		"1AbCdEfGhIjKlMnOpQrStU/x": false,
		"1AbCdEfGhIjKlMnOp QrStUv": false,
	}
	for id, want := range cases {
		if got := ValidateSheetID(id); got != want {
			t.Fatalf("ValidateSheetID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestValidateContentType(t *testing.T) {
	for _, s := range []string{"nest", "flat"} {
		if !ValidateContentType(s) {
			t.Fatalf("ValidateContentType(%q) = false", s)
		}
	}
	for _, s := range []string{"", "Nest", "tree"} {
		if ValidateContentType(s) {
			t.Fatalf("ValidateContentType(%q) = true", s)
		}
	}
}

func TestIsLanguageCode(t *testing.T) {
	for _, code := range []string{"en", "fil", "zh-TW", "zh-Hant", "zh-Hant-TW"} {
		if !IsLanguageCode(code) {
			t.Fatalf("IsLanguageCode(%q) = false", code)
		}
	}
	for _, code := range []string{"EN", "en_US", "en-us", "english", "e"} {
		if IsLanguageCode(code) {
			t.Fatalf("IsLanguageCode(%q) = true", code)
		}
	}
}

func TestValidateLanguageCodes(t *testing.T) {
	if w := ValidateLanguageCodes([]string{"en", "zh-TW"}); len(w) != 0 {
		t.Fatalf("unexpected warnings: %v", w)
	}

	w := ValidateLanguageCodes([]string{"en", "en_us", "???"})
	if len(w) != 2 {
		t.Fatalf("expected 2 warnings, got %v", w)
	}
	if !strings.Contains(w[0], `did you mean "en-US"`) {
		t.Fatalf("warning %q has no suggestion", w[0])
	}
	if strings.Contains(w[1], "did you mean") {
		t.Fatalf("warning %q should have no suggestion", w[1])
	}
}

func TestSuggestLanguageCode(t *testing.T) {
	cases := map[string]string{
		"en_us":      "en-US",
		"EN":         "en",
		"zh-hant-tw": "zh-Hant-TW",
	}
	for in, want := range cases {
		got, ok := SuggestLanguageCode(in)
		if !ok || got != want {
			t.Fatalf("SuggestLanguageCode(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := SuggestLanguageCode("en"); ok {
		t.Fatal("SuggestLanguageCode(en) suggested a change")
	}
	if _, ok := SuggestLanguageCode("not a tag"); ok {
		t.Fatal("SuggestLanguageCode accepted garbage")
	}
}

func TestDirAndFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.json")
	if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if !DirExists(dir) || DirExists(file) || DirExists(filepath.Join(dir, "none")) {
		t.Fatal("DirExists mismatch")
	}
	if !FileExists(file) || FileExists(dir) || FileExists(filepath.Join(dir, "none")) {
		t.Fatal("FileExists mismatch")
	}
}
