// Package cachemap persists the identifier->path index that lets a fresh
// process resolve previously internalized assets without probing the disk.
// The whole map is a single JSON document: loaded once at construction,
// mutated in memory, flushed once by Save when dirty.
//
// When disabled by configuration every operation is a no-op; callers never
// need to check the flag themselves.
package cachemap

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Extension is the fixed suffix of the backing file.
const Extension = ".basset"

// Config resolves where the backing file lives and how identifiers and
// values are normalized.
type Config struct {
	Enabled bool
	// Root is the directory the backing file lives under.
	Root string
	// Path is the backing file prefix; the file is <Root>/<Path>.basset.
	Path string
	// AppRoot is the local absolute prefix stripped from identifiers so
	// entries stay portable across environments.
	AppRoot string
	// BaseURL is the disk's public base URL, stripped from stored values
	// and re-applied on lookup.
	BaseURL string
}

// Map is the in-memory cache map for one engine instance. It is not safe
// for concurrent use; the engine is single-threaded by design.
type Map struct {
	fs      afero.Fs
	cfg     Config
	entries map[string]string
	dirty   bool
}

// New constructs a Map and loads the backing file if it exists. A missing
// file is not an error; the map starts empty.
func New(fs afero.Fs, cfg Config) (*Map, error) {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	m := &Map{
		fs:      fs,
		cfg:     cfg,
		entries: make(map[string]string),
	}

	if !cfg.Enabled {
		return m, nil
	}

	data, err := afero.ReadFile(fs, m.File())
	if err != nil {
		// Absent backing file means a cold cache.
		return m, nil
	}

	if err := json.Unmarshal(data, &m.entries); err != nil {
		return nil, err
	}

	return m, nil
}

// File returns the absolute path of the backing file.
func (m *Map) File() string {
	return filepath.Join(m.cfg.Root, m.cfg.Path+Extension)
}

// normalizeKey strips the local app-root prefix and surrounding separators
// so keys are portable across machines with different absolute roots.
func (m *Map) normalizeKey(identifier string) string {
	key := identifier
	if m.cfg.AppRoot != "" {
		key = strings.TrimPrefix(key, m.cfg.AppRoot)
	}

	return strings.Trim(key, "/")
}

// Add records the resolved location of an identifier. An empty value
// records presence only; archive and directory assets internalize many
// files, so the map remembers that they were internalized rather than a
// single path. No-op when the map is disabled.
func (m *Map) Add(identifier, value string) {
	if !m.cfg.Enabled {
		return
	}

	if value != "" {
		value = strings.TrimPrefix(value, m.cfg.BaseURL)
		value = "/" + strings.TrimLeft(value, "/")
	}

	m.entries[m.normalizeKey(identifier)] = value
	m.dirty = true
}

// Get returns the absolute public URL recorded for the identifier.
// Reports false when the map is disabled, the key is missing, or the entry
// is presence-only.
func (m *Map) Get(identifier string) (string, bool) {
	if !m.cfg.Enabled {
		return "", false
	}

	value, ok := m.entries[m.normalizeKey(identifier)]
	if !ok || value == "" {
		return "", false
	}

	return m.cfg.BaseURL + value, true
}

// Has reports whether the identifier was internalized, including
// presence-only entries.
func (m *Map) Has(identifier string) bool {
	if !m.cfg.Enabled {
		return false
	}

	_, ok := m.entries[m.normalizeKey(identifier)]

	return ok
}

// Remove drops the identifier's entry if present. No-op when the map is
// disabled.
func (m *Map) Remove(identifier string) {
	if !m.cfg.Enabled {
		return
	}

	key := m.normalizeKey(identifier)
	if _, ok := m.entries[key]; !ok {
		return
	}

	delete(m.entries, key)
	m.dirty = true
}

// Entries returns a sorted copy of the map for introspection.
func (m *Map) Entries() []Entry {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Key: k, Value: m.entries[k]})
	}

	return out
}

// Entry is one key->value pair of the map.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Save flushes the map to the backing file. A no-op unless the map is
// enabled and at least one mutation occurred. Output is pretty-printed
// with unescaped path separators; encoding/json already sorts map keys.
func (m *Map) Save() error {
	if !m.cfg.Enabled || !m.dirty {
		return nil
	}

	if err := m.fs.MkdirAll(filepath.Dir(m.File()), 0o755); err != nil {
		return err
	}

	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m.entries); err != nil {
		return err
	}

	if err := afero.WriteFile(m.fs, m.File(), []byte(buf.String()), 0o644); err != nil {
		return err
	}

	m.dirty = false

	return nil
}
