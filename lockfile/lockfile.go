// Package lockfile implements langsheet.lock, a lock file that tracks
// xxh3 checksums of translation strings per sheet and language as of the
// last successful pull or push. Comparing local files against it shows
// which keys were added, changed or removed since then.
//
// The lock file is stored in the working directory as langsheet.lock.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/langsheet/content"
)

// LockFileName is the default lock file name.
const LockFileName = "langsheet.lock"

// Version is the lock file format version.
const Version = 1

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// LockFile represents the langsheet.lock file structure.
type LockFile struct {
	Version   int                          `yaml:"version"`
	Checksums map[string]map[string]string `yaml:"checksums"` // target -> key -> xxh3

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// Drift lists the keys that differ between recorded and current content.
// Each list is sorted.
type Drift struct {
	Added   []string
	Changed []string
	Removed []string
}

// Empty reports whether there is no drift.
func (d Drift) Empty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// String returns a short summary such as "2 added, 1 changed".
func (d Drift) String() string {
	if d.Empty() {
		return "up to date"
	}
	var parts []string
	if n := len(d.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(d.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", n))
	}
	if n := len(d.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	return strings.Join(parts, ", ")
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a lock file from the given directory.
// Returns an empty lock file if the file doesn't exist.
func Load(dir string) (*LockFile, error) {
	path := filepath.Join(dir, LockFileName)
	lf := &LockFile{
		Version:   Version,
		Checksums: make(map[string]map[string]string),
		path:      path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lf, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, lf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	lf.path = path

	if lf.Checksums == nil {
		lf.Checksums = make(map[string]map[string]string)
	}
	if lf.Version > Version {
		return nil, fmt.Errorf("%s: unsupported lock file version %d", path, lf.Version)
	}

	return lf, nil
}

// Save writes the lock file to disk.
func (lf *LockFile) Save() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.path == "" {
		return fmt.Errorf("lock file path not set")
	}

	lf.Version = Version
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}

	if err := os.WriteFile(lf.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", lf.path, err)
	}

	return nil
}

// Path returns the lock file path.
func (lf *LockFile) Path() string {
	return lf.path
}

// ---------------------------------------------------------------------------
// Checksum operations
// ---------------------------------------------------------------------------

// Hash computes the xxh3 hex digest of a string.
func Hash(s string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(s))
}

// TargetKey builds the lock file key for one language of a sheet,
// e.g. "i18n/en".
func TargetKey(sheetTitle, lang string) string {
	return sheetTitle + "/" + lang
}

// Has reports whether checksums were recorded for target.
func (lf *LockFile) Has(target string) bool {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	_, ok := lf.Checksums[target]
	return ok
}

// Diff compares flat content with the checksums recorded for target. A
// target that was never recorded reports every key as added. Empty values
// are not tracked: they are never written to nested files.
func (lf *LockFile) Diff(target string, f *content.Flat) Drift {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	recorded := lf.Checksums[target]
	var d Drift
	seen := make(map[string]bool)

	if f != nil {
		f.Each(func(key, value string) {
			if value == "" {
				return
			}
			seen[key] = true
			old, ok := recorded[key]
			switch {
			case !ok:
				d.Added = append(d.Added, key)
			case old != Hash(value):
				d.Changed = append(d.Changed, key)
			}
		})
	}
	for key := range recorded {
		if !seen[key] {
			d.Removed = append(d.Removed, key)
		}
	}

	sort.Strings(d.Added)
	sort.Strings(d.Changed)
	sort.Strings(d.Removed)
	return d
}

// Record replaces the checksums of target with those of f.
func (lf *LockFile) Record(target string, f *content.Flat) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	sums := make(map[string]string)
	if f != nil {
		f.Each(func(key, value string) {
			if value != "" {
				sums[key] = Hash(value)
			}
		})
	}
	lf.Checksums[target] = sums
}

// RemoveTarget removes all checksums for a target.
func (lf *LockFile) RemoveTarget(target string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	delete(lf.Checksums, target)
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats returns the number of targets and total keys in the lock file.
func (lf *LockFile) Stats() (targets, keys int) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	targets = len(lf.Checksums)
	for _, m := range lf.Checksums {
		keys += len(m)
	}
	return
}

// Targets returns sorted list of target keys.
func (lf *LockFile) Targets() []string {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	targets := make([]string, 0, len(lf.Checksums))
	for t := range lf.Checksums {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Summary returns a human-readable summary string.
func (lf *LockFile) Summary() string {
	targets, keys := lf.Stats()
	if targets == 0 {
		return "empty"
	}

	var parts []string
	for _, t := range lf.Targets() {
		lf.mu.Lock()
		n := len(lf.Checksums[t])
		lf.mu.Unlock()
		parts = append(parts, fmt.Sprintf("%s: %d keys", t, n))
	}
	return fmt.Sprintf("%d targets, %d keys (%s)", targets, keys, strings.Join(parts, ", "))
}
