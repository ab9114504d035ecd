// Package manifest models a package's published metadata (package.json) as a
// mutable field mapping shared by builder plugins.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileName is the manifest file name inside a package directory.
const FileName = "package.json"

// Manifest maps top-level manifest fields to their values.
type Manifest map[string]any

// New returns an empty manifest.
func New() Manifest {
	return Manifest{}
}

// IsSet reports whether key holds a value a later plugin must not replace.
// Missing keys, nil and empty strings count as unset.
func (m Manifest) IsSet(key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// SetDefault assigns value to key unless the key is already set. It reports
// whether the manifest changed.
func (m Manifest) SetDefault(key string, value any) bool {
	if m.IsSet(key) {
		return false
	}
	m[key] = value
	return true
}

// String returns the string value of key, or "" when absent or not a string.
func (m Manifest) String(key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Keys returns the manifest's field names in sorted order.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the manifest.
func (m Manifest) Clone() Manifest {
	cp := make(Manifest, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Diff returns the keys whose values differ between base and m, sorted.
func (m Manifest) Diff(base Manifest) []string {
	var changed []string
	for _, k := range m.Keys() {
		bv, ok := base[k]
		if !ok || fmt.Sprint(bv) != fmt.Sprint(m[k]) {
			changed = append(changed, k)
		}
	}
	return changed
}

// Load reads a manifest from path. A missing file yields an empty manifest.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes manifest JSON.
func Parse(data []byte) (Manifest, error) {
	m := New()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// Marshal encodes the manifest as indented JSON with a trailing newline.
func (m Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any(m)); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the manifest to path, creating parent directories.
func (m Manifest) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
