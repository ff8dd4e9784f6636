// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package profile defines the server-declared launch descriptor and the
// server-side profile catalog.
package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nsl-launcher/nsl-go/pkg/optional"
)

// Profile describes one launchable game configuration. It is immutable once
// fetched for the duration of a launch attempt.
type Profile struct {
	Name       string              `json:"name"`
	Version    string              `json:"version"`
	Libraries  []string            `json:"libraries"`
	ClassPath  []string            `json:"classPath"`
	ClientArgs []string            `json:"clientArgs"`
	AssetsDir  string              `json:"assetsDir"`
	Assets     string              `json:"assets"`
	ServerName string              `json:"serverName"`
	ServerPort uint16              `json:"serverPort"`
	Optionals  []optional.Optional `json:"optionals"`
}

// Validate checks the structural invariants enforced at load time. In
// particular a visible optional must carry a name; rejecting the profile here
// keeps the resolution engine free of that failure mode.
func (profile *Profile) Validate() error {
	if profile.Name == "" {
		return fmt.Errorf("profile without a name")
	}
	if profile.Version == "" {
		return fmt.Errorf("profile %q without a version", profile.Name)
	}
	for i := range profile.Optionals {
		if profile.Optionals[i].Visible && profile.Optionals[i].Name == "" {
			return fmt.Errorf("profile %q: visible optional #%d has no name", profile.Name, i)
		}
	}
	return nil
}

// Load reads and validates one profile file.
func Load(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer f.Close()

	var profile Profile
	if err := json.NewDecoder(f).Decode(&profile); err != nil {
		return Profile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
