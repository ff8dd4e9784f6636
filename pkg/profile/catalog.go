// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package profile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/nsl-launcher/nsl-go/pkg/message"
	"github.com/nsl-launcher/nsl-go/pkg/util"
)

// Catalog holds the server's configured profiles. It is read-mostly: request
// handlers take the read lock, a reload takes the write lock, so reloading
// never races in-flight requests.
type Catalog struct {
	stateMutex sync.RWMutex
	directory  string
	profiles   map[string]Profile
}

// catalogSingleton is the singleton object which should always be used for catalog access.
var catalogSingleton *Catalog

// InitialiseCatalog loads the profile directory and sets up the singleton.
// Further calls after initialisation return a util.AlreadyInitialised-error.
func InitialiseCatalog(directory string) error {
	if catalogSingleton != nil {
		return util.NewAlreadyInitialisedError("Profile Catalog")
	}

	catalog := Catalog{
		directory: directory,
		profiles:  make(map[string]Profile),
	}
	if err := catalog.Reload(); err != nil {
		return err
	}

	catalogSingleton = &catalog
	return nil
}

// GetCatalogSingleton returns the catalog singleton-instance.
// Attempting to call this function before initialisation will cause the program to panic.
func GetCatalogSingleton() *Catalog {
	if catalogSingleton == nil {
		log.Fatalf("Attempting to access an uninitialised catalog. This must never happen!")
	}
	return catalogSingleton
}

// Reload re-reads every profile file under the catalog directory. Per-file
// failures are accumulated and reported together; files that do load replace
// the previous catalog state atomically.
func (catalog *Catalog) Reload() error {
	entries, err := os.ReadDir(catalog.directory)
	if err != nil {
		return err
	}

	var loadErr *multierror.Error
	loaded := make(map[string]Profile)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(catalog.directory, entry.Name())
		prof, err := Load(path)
		if err != nil {
			log.WithFields(log.Fields{
				"path":  path,
				"error": err,
			}).Error("Skipping unloadable profile")
			loadErr = multierror.Append(loadErr, err)
			continue
		}
		loaded[prof.Name] = prof
	}

	catalog.stateMutex.Lock()
	catalog.profiles = loaded
	catalog.stateMutex.Unlock()

	log.WithField("profiles", len(loaded)).Info("Profile catalog loaded")

	return loadErr.ErrorOrNil()
}

// Get returns the named profile.
// This method is thread-safe.
func (catalog *Catalog) Get(name string) (Profile, bool) {
	catalog.stateMutex.RLock()
	defer catalog.stateMutex.RUnlock()
	prof, ok := catalog.profiles[name]
	return prof, ok
}

// Contains reports whether a profile of that name is configured.
// This method is thread-safe.
func (catalog *Catalog) Contains(name string) bool {
	_, ok := catalog.Get(name)
	return ok
}

// Summaries builds the profile catalog answer: name, version and the visible
// optionals of every profile, sorted by profile name for a stable listing.
// This method is thread-safe.
func (catalog *Catalog) Summaries() []message.ProfileSummary {
	catalog.stateMutex.RLock()
	defer catalog.stateMutex.RUnlock()

	summaries := make([]message.ProfileSummary, 0, len(catalog.profiles))
	for _, prof := range catalog.profiles {
		summary := message.ProfileSummary{
			Name:    prof.Name,
			Version: prof.Version,
		}
		for i := range prof.Optionals {
			if !prof.Optionals[i].Visible {
				continue
			}
			summary.Optionals = append(summary.Optionals, message.OptionalSummary{
				Name:        prof.Optionals[i].Name,
				Description: prof.Optionals[i].Description,
			})
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })

	return summaries
}
