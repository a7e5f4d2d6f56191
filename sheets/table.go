package sheets

import (
	"strings"

	"github.com/minios-linux/langsheet/content"
)

// KeyHeader is the header of the key column written by FlatToTable.
const KeyHeader = "key"

// TableToFlat reads a sheet table into flat content per language.
//
// The first row is the header: column A holds keys, other columns are
// matched to languages by their header text. Rows with an empty key are
// skipped and short rows read as empty cells. Languages without a column are
// returned in missing and get empty content.
func TableToFlat(rows [][]string, languages []string) (flat map[string]*content.Flat, missing []string) {
	flat = make(map[string]*content.Flat, len(languages))
	for _, lang := range languages {
		flat[lang] = content.NewFlat()
	}
	if len(rows) == 0 {
		return flat, append([]string(nil), languages...)
	}

	columns := make(map[string]int, len(languages))
	for i, cell := range rows[0] {
		if i == 0 {
			continue
		}
		name := strings.TrimSpace(cell)
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	for _, lang := range languages {
		if _, ok := columns[lang]; !ok {
			missing = append(missing, lang)
		}
	}

	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}
		for _, lang := range languages {
			col, ok := columns[lang]
			if !ok {
				continue
			}
			value := ""
			if col < len(row) {
				value = row[col]
			}
			flat[lang].Set(key, value)
		}
	}
	return flat, missing
}

// FlatToTable renders flat content as a sheet table: a header row followed by
// one row per key. Keys are ordered by first appearance, walking languages in
// order; a language without a key gets an empty cell.
func FlatToTable(languages []string, flat map[string]*content.Flat) [][]string {
	header := append([]string{KeyHeader}, languages...)

	var keys []string
	seen := make(map[string]bool)
	for _, lang := range languages {
		f := flat[lang]
		if f == nil {
			continue
		}
		for _, k := range f.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	rows := make([][]string, 0, len(keys)+1)
	rows = append(rows, header)
	for _, k := range keys {
		row := make([]string, 0, len(header))
		row = append(row, k)
		for _, lang := range languages {
			v := ""
			if f := flat[lang]; f != nil {
				v, _ = f.Get(k)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows
}
