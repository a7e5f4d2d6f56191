package config

import (
	"fmt"
	"os"
	"regexp"

	"golang.org/x/text/language"

	"github.com/minios-linux/langsheet/langmodel"
)

var (
	sheetIDRe  = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)
	langCodeRe = regexp.MustCompile(`^[a-z]{2,3}(-[A-Z][a-z]{3})?(-[A-Z]{2})?$`)
)

// ValidateSheetID reports whether id looks like a Google spreadsheet ID.
func ValidateSheetID(id string) bool {
	return sheetIDRe.MatchString(id)
}

// ValidateContentType reports whether s names a content type.
func ValidateContentType(s string) bool {
	for _, t := range langmodel.ContentTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// IsLanguageCode reports whether code has the ll, ll-RR or ll-Ssss-RR shape.
func IsLanguageCode(code string) bool {
	return langCodeRe.MatchString(code)
}

// ValidateLanguageCodes returns one warning per code that does not look like
// a language code. Codes are used verbatim as column headers and file names,
// so these are advisory.
func ValidateLanguageCodes(languages []string) []string {
	var warnings []string
	for _, code := range languages {
		if IsLanguageCode(code) {
			continue
		}
		if s, ok := SuggestLanguageCode(code); ok {
			warnings = append(warnings, fmt.Sprintf("language code %q is not in ll-RR form (did you mean %q?)", code, s))
		} else {
			warnings = append(warnings, fmt.Sprintf("language code %q is not in ll-RR form", code))
		}
	}
	return warnings
}

// SuggestLanguageCode returns the canonical BCP 47 spelling of code when it
// differs from code, e.g. "en_us" -> "en-US".
func SuggestLanguageCode(code string) (string, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	s := tag.String()
	if s == code || s == "und" {
		return "", false
	}
	return s, true
}

// DirExists reports whether path is an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path is an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
