// Package customizations loads the optional grammar-customizations file
// (spec §6, "Customizations object"): a closed TOML record naming external
// classes that own builtin-token parsers and postcondition predicates,
// reusable mixin fragments, and per-production content to splice into
// generated artifacts.
package customizations

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/gramforge/gramforge/gerr"
)

// StateField is one (type, field-name) pair a mixin injects into a node's
// state.
type StateField struct {
	Type  string `toml:"type"`
	Field string `toml:"field"`
}

// Mixin is a reusable fragment of generated node state (spec §6, "mixins").
type Mixin struct {
	State   []StateField `toml:"state"`
	Imports []string     `toml:"imports"`
	Extends []string     `toml:"extends"`
}

// NodeContent is hand-written content to inject into one production's
// generated artifact (spec §6, "custom_node_content").
type NodeContent struct {
	Body    string   `toml:"body"`
	Imports []string `toml:"imports"`
}

// Customizations is the closed configuration record described in spec §6.
type Customizations struct {
	Tokens            string                 `toml:"tokens"`
	Postconds         string                 `toml:"postconds"`
	Mixins            map[string]Mixin       `toml:"mixins"`
	CustomNodeContent map[string]NodeContent `toml:"custom_node_content"`
}

// Load parses a customizations file at path. An unrecognized top-level key
// is reported through gerr rather than silently ignored, since this record
// is meant to be closed (spec §6).
func Load(path string) (*Customizations, error) {
	var c Customizations
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("reading customizations %s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		return nil, &gerr.SpecError{Cause: gerr.ErrUnknownCustomization, Detail: key.String()}
	}
	return &c, nil
}

// ResolvedMixin is a mixin with Extends transitively flattened: its own
// state/imports followed by every ancestor's, each ancestor visited once.
type ResolvedMixin struct {
	State   []StateField
	Imports []string
}

// Resolve transitively closes the named mixin's Extends chain (spec §6,
// "Transitively closed on emission"). A cycle in Extends resolves to
// whatever was reachable before the cycle closed, rather than looping
// forever.
func (c *Customizations) Resolve(name string) (ResolvedMixin, bool) {
	var out ResolvedMixin
	seen := map[string]bool{}
	var visit func(n string) bool
	visit = func(n string) bool {
		if seen[n] {
			return true
		}
		seen[n] = true
		m, ok := c.Mixins[n]
		if !ok {
			return false
		}
		out.State = append(out.State, m.State...)
		out.Imports = append(out.Imports, m.Imports...)
		for _, parent := range m.Extends {
			visit(parent)
		}
		return true
	}
	if !visit(name) {
		return ResolvedMixin{}, false
	}
	return out, true
}
