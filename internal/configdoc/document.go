// Package configdoc loads the compiled configuration artifact the core
// consumes (spec §6's ConfigRoot) from a TOML document on disk,
// validates it, and converts it into the rule package's types. The
// source-language compiler that produces a keyrx config from human
// input is out of this repository's scope; this package is the
// boundary that receives its output.
package configdoc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Version mirrors ConfigRoot.version.
type Version struct {
	Major uint16 `toml:"major"`
	Minor uint16 `toml:"minor"`
	Patch uint16 `toml:"patch"`
}

// Metadata mirrors ConfigRoot.metadata. The core does not interpret
// these fields; they are carried through for diagnostics.
type Metadata struct {
	CompilationTimestamp uint64 `toml:"compilation_timestamp"`
	CompilerVersion       string `toml:"compiler_version"`
	SourceHash            string `toml:"source_hash"`
}

// ConditionDocument is the TOML-friendly encoding of state.Condition.
// Kind is one of "modifier", "lock", "all", "not". Leaf kinds use ID;
// composite kinds use Items.
type ConditionDocument struct {
	Kind  string              `toml:"kind"`
	ID    string              `toml:"id,omitempty"`
	Items []ConditionDocument `toml:"items,omitempty"`
}

// MappingDocument is the TOML-friendly flattened encoding of
// rule.KeyMapping: one struct covering every BaseKeyMapping variant,
// discriminated by Type, with an optional Condition making the entry a
// single-mapping Conditional.
type MappingDocument struct {
	Type string `toml:"type"`

	From string `toml:"from,omitempty"`
	To   string `toml:"to,omitempty"`

	ModifierID string `toml:"modifier_id,omitempty"`
	LockID     string `toml:"lock_id,omitempty"`

	Tap          string `toml:"tap,omitempty"`
	HoldModifier string `toml:"hold_modifier,omitempty"`
	ThresholdMs  uint64 `toml:"threshold_ms,omitempty"`

	Shift bool `toml:"shift,omitempty"`
	Ctrl  bool `toml:"ctrl,omitempty"`
	Alt   bool `toml:"alt,omitempty"`
	Win   bool `toml:"win,omitempty"`

	Condition *ConditionDocument `toml:"condition,omitempty"`
}

// DeviceDocument mirrors rule.DeviceConfig in TOML-friendly form.
type DeviceDocument struct {
	Pattern  string            `toml:"pattern"`
	Mappings []MappingDocument `toml:"mapping"`
}

// Document mirrors ConfigRoot: the whole compiled artifact.
type Document struct {
	Version  Version          `toml:"version"`
	Devices  []DeviceDocument `toml:"device"`
	Metadata Metadata         `toml:"metadata"`
}

// DefaultPath returns the default config file path
// (~/.config/keyrx/keyrx.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keyrx", "keyrx.toml")
}

// Load reads and parses a Document from path. Unlike an application
// preferences file, a missing remap config has no sane default, so a
// missing file is a reported error rather than silently producing an
// empty Document.
func Load(path string) (*Document, error) {
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &doc, nil
}
