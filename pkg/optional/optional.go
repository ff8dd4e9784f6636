// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package optional implements the rule/action resolution engine. It turns a
// profile's declarative optional features into the concrete file relocations
// and extra launch arguments for one machine.
//
// Resolution is pure: no I/O, no mutation of inputs, and byte-identical output
// for identical inputs.
package optional

import "encoding/json"

// OsType identifies the client's operating system family.
type OsType string

const (
	OsLinux   OsType = "linux"
	OsMacOS   OsType = "macOs"
	OsWindows OsType = "windows"
)

// ClientInfo describes the client environment rules are evaluated against.
// It is never mutated by the engine.
type ClientInfo struct {
	OsType OsType `json:"osType"`
}

// CompareMode selects between equality and inequality for an OsRule.
type CompareMode string

const (
	CompareEqual   CompareMode = "equal"
	CompareUnequal CompareMode = "unequal"
)

// OsRule matches the client's OS type. An absent compare mode means equality.
type OsRule struct {
	OsType      OsType      `json:"osType"`
	CompareMode CompareMode `json:"compareMode,omitempty"`
}

// Apply reports whether the rule holds for the given client environment.
func (rule *OsRule) Apply(info ClientInfo) bool {
	switch rule.CompareMode {
	case CompareUnequal:
		return rule.OsType != info.OsType
	default:
		return rule.OsType == info.OsType
	}
}

// Rule is one predicate of an Optional. Exactly one variant field is set.
type Rule struct {
	OsType *OsRule `json:"osType,omitempty"`
}

// Apply evaluates the set variant. A rule without any variant never holds.
func (rule *Rule) Apply(info ClientInfo) bool {
	if rule.OsType != nil {
		return rule.OsType.Apply(info)
	}
	return false
}

// Location is the directory category a file action targets.
type Location string

const (
	LocationProfile   Location = "profile"
	LocationLibraries Location = "libraries"
	LocationAssets    Location = "assets"
)

// OptionalFiles is the file payload of a file action: paths taken as-is and
// paths moved to a new name.
type OptionalFiles struct {
	OriginalPaths []string          `json:"originalPaths,omitempty"`
	RenamePaths   map[string]string `json:"renamePaths,omitempty"`
}

// FileAction relocates files within one Location.
type FileAction struct {
	Location Location      `json:"location"`
	Files    OptionalFiles `json:"files"`
}

// Action is either a file relocation or an argument injection. Exactly one
// variant field is set.
type Action struct {
	Files *FileAction `json:"files,omitempty"`
	Args  []string    `json:"args,omitempty"`
}

// Optional is one rule-gated bundle of actions.
//
// A visible Optional must carry a name; profile loading rejects profiles that
// violate this, so the engine never sees one.
type Optional struct {
	Actions []Action `json:"actions"`
	Rules   []Rule   `json:"rules"`
	// Enabled is the default selection state offered to the user. It does not
	// participate in relevance; selection is passed to Resolve explicitly.
	Enabled     bool     `json:"enabled"`
	Visible     bool     `json:"visible"`
	Description string   `json:"description,omitempty"`
	Name        string   `json:"name,omitempty"`
}

// UnmarshalJSON applies the declared defaults: enabled defaults to true,
// visible to false.
func (o *Optional) UnmarshalJSON(data []byte) error {
	type alias Optional
	tmp := alias{Enabled: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*o = Optional(tmp)
	return nil
}

// Apply reports whether any rule of the Optional holds. An Optional with an
// empty rule list never applies.
func (o *Optional) Apply(info ClientInfo) bool {
	for i := range o.Rules {
		if o.Rules[i].Apply(info) {
			return true
		}
	}
	return false
}

// IsVisible reports whether the Optional should be offered to the user on
// this machine.
func (o *Optional) IsVisible(info ClientInfo) bool {
	return o.Visible && o.Apply(info)
}

// Relevant reports whether the Optional takes effect: its rules must hold,
// and a visible Optional must additionally have been selected by name.
// Non-visible Optionals are force-included once a rule matches.
func (o *Optional) Relevant(info ClientInfo, selected []string) bool {
	if !o.Apply(info) {
		return false
	}
	if !o.Visible {
		return true
	}
	for _, name := range selected {
		if name == o.Name {
			return true
		}
	}
	return false
}

// Args flattens the Optional's argument actions in declaration order. Rule
// matching is the caller's concern; pre-filter with Relevant or Apply.
func (o *Optional) Args() []string {
	args := make([]string, 0)
	for i := range o.Actions {
		if o.Actions[i].Args != nil {
			args = append(args, o.Actions[i].Args...)
		}
	}
	return args
}

// Files groups the Optional's file actions by Location, appending original
// paths and merging rename mappings in declaration order. On duplicate rename
// keys the later action wins.
func (o *Optional) Files() map[Location]OptionalFiles {
	files := make(map[Location]OptionalFiles)
	for i := range o.Actions {
		action := o.Actions[i].Files
		if action == nil {
			continue
		}
		entry := files[action.Location]
		entry.OriginalPaths = append(entry.OriginalPaths, action.Files.OriginalPaths...)
		if entry.RenamePaths == nil {
			entry.RenamePaths = make(map[string]string)
		}
		for from, to := range action.Files.RenamePaths {
			entry.RenamePaths[from] = to
		}
		files[action.Location] = entry
	}
	return files
}

// Resolve computes the effective launch arguments and per-Location file
// actions over all relevant Optionals.
//
// Optionals are processed in declaration order; on rename-key collisions the
// last processed Optional wins. Argument order preserves declaration order
// across Optionals.
func Resolve(optionals []Optional, info ClientInfo, selected []string) ([]string, map[Location]OptionalFiles) {
	args := make([]string, 0)
	files := make(map[Location]OptionalFiles)

	for i := range optionals {
		if !optionals[i].Relevant(info, selected) {
			continue
		}
		args = append(args, optionals[i].Args()...)
		for location, contributed := range optionals[i].Files() {
			entry := files[location]
			entry.OriginalPaths = append(entry.OriginalPaths, contributed.OriginalPaths...)
			if entry.RenamePaths == nil {
				entry.RenamePaths = make(map[string]string)
			}
			for from, to := range contributed.RenamePaths {
				entry.RenamePaths[from] = to
			}
			files[location] = entry
		}
	}

	return args, files
}
