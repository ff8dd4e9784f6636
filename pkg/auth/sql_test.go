// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestSQLProvider(t *testing.T) (*SQLProvider, uuid.UUID) {
	t.Helper()

	provider, err := NewSQLProvider(SQLConfig{Path: filepath.Join(t.TempDir(), "auth.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = provider.Close() })

	id := uuid.New()
	_, err = provider.db.Exec(
		`INSERT INTO users (uuid, username, password) VALUES (?, ?, ?)`,
		id.String(), "Test", "test")
	if err != nil {
		t.Fatal(err)
	}
	return provider, id
}

func TestSQLProviderAuth(t *testing.T) {
	provider, id := newTestSQLProvider(t)

	result, err := provider.Auth("Test", "test", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Message != nil {
		t.Fatalf("unexpected soft failure: %v", *result.Message)
	}
	if result.UUID == nil || *result.UUID != id {
		t.Fatalf("unexpected uuid: %v", result.UUID)
	}
}

func TestSQLProviderAuthWrongPassword(t *testing.T) {
	provider, _ := newTestSQLProvider(t)

	result, err := provider.Auth("Test", "wrong", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Message == nil {
		t.Fatal("expected soft failure for wrong password")
	}
	if result.UUID != nil {
		t.Fatal("soft failure must not carry a uuid")
	}
}

func TestSQLProviderAuthUnknownUser(t *testing.T) {
	provider, _ := newTestSQLProvider(t)

	result, err := provider.Auth("Nobody", "test", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Message == nil {
		t.Fatal("expected soft failure for unknown user")
	}
}

func TestSQLProviderEntries(t *testing.T) {
	provider, id := newTestSQLProvider(t)

	entry, err := provider.GetEntry(id)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Username != "Test" || entry.UUID != id {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.AccessToken != nil || entry.ServerID != nil {
		t.Fatalf("fresh entry should have no token or server id: %+v", entry)
	}

	byName, err := provider.GetEntryFromName("Test")
	if err != nil {
		t.Fatal(err)
	}
	if byName.UUID != id {
		t.Fatalf("lookup by name returned %v", byName.UUID)
	}
}

func TestSQLProviderUpdates(t *testing.T) {
	provider, id := newTestSQLProvider(t)

	if err := provider.UpdateAccessToken(id, "token-1"); err != nil {
		t.Fatal(err)
	}
	if err := provider.UpdateServerID(id, "server-1"); err != nil {
		t.Fatal(err)
	}

	entry, err := provider.GetEntry(id)
	if err != nil {
		t.Fatal(err)
	}
	if entry.AccessToken == nil || *entry.AccessToken != "token-1" {
		t.Fatalf("access token not persisted: %+v", entry)
	}
	if entry.ServerID == nil || *entry.ServerID != "server-1" {
		t.Fatalf("server id not persisted: %+v", entry)
	}

	// Concurrent updates race by design; the last write wins.
	if err := provider.UpdateAccessToken(id, "token-2"); err != nil {
		t.Fatal(err)
	}
	entry, err = provider.GetEntry(id)
	if err != nil {
		t.Fatal(err)
	}
	if *entry.AccessToken != "token-2" {
		t.Fatalf("expected last write to win, got %v", *entry.AccessToken)
	}
}

func TestSQLProviderUpdateUnknownIdentity(t *testing.T) {
	provider, _ := newTestSQLProvider(t)

	if err := provider.UpdateAccessToken(uuid.New(), "token"); err == nil {
		t.Fatal("expected error updating an unknown identity")
	}
}
