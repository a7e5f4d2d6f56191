// Package i18n translates langsheet's own user-facing strings.
//
// Catalogs are gettext .po files embedded under
// locales/{locale}/LC_MESSAGES/langsheet.po. The locale asked for (or read
// from the environment) is matched against the embedded catalogs with
// golang.org/x/text/language, so "zh-TW", "zh_TW.UTF-8" and "zh-Hant-TW"
// all select zh_TW. Without a match strings pass through untranslated.
//
//	i18n.Init("")
//	logInfo("%s", i18n.T("Pull complete"))
//	i18n.N("%d problem found", "%d problems found", n)
package i18n

import (
	"embed"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

//go:embed all:locales
var locales embed.FS

const (
	domain     = "langsheet"
	localesDir = "locales"

	// fallback is the source language of every msgid.
	fallback = "en"
)

var (
	// catalog is nil when no embedded catalog matched.
	catalog gotext.Translator
	active  = fallback
)

// Init selects the catalog for lang, or for the environment locale when
// lang is empty. Call it once before T or N.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	active = Match(lang)

	loc := gotext.NewLocaleFSWithPath(active, locales, localesDir)
	loc.AddDomain(domain)
	catalog = loc.Domains[domain]
}

// Lang returns the catalog chosen by the last Init, or "en".
func Lang() string {
	return active
}

// Available lists the embedded catalogs by directory name.
func Available() []string {
	entries, err := fs.ReadDir(locales, localesDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

// Match returns the embedded catalog that best serves lang, or "en" when
// none does.
func Match(lang string) string {
	lang = stripEncoding(lang)
	want, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return fallback
	}

	names := Available()
	tags := []language.Tag{language.English}
	var dirs []string
	for _, name := range names {
		tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		dirs = append(dirs, name)
	}

	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No || idx == 0 {
		return fallback
	}
	return dirs[idx-1]
}

// T translates msgid. Untranslated strings are returned unchanged, verbs
// included; callers format the result.
func T(msgid string) string {
	if catalog == nil {
		return msgid
	}
	return catalog.Get(msgid)
}

// N translates a string with plural forms. The target language's plural
// formula picks the form; without a catalog n == 1 selects singular.
func N(singular, plural string, n int) string {
	if catalog == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return catalog.GetN(singular, plural, n)
}

// detectLanguage follows GNU gettext: LANGUAGE, LC_ALL, LC_MESSAGES, LANG.
// "C" and "POSIX" mean no translation and are skipped.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		val = stripEncoding(val)
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return fallback
}

// stripEncoding drops ".UTF-8" and "@modifier" suffixes.
func stripEncoding(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return s
}
