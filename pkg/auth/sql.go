// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLConfig holds the SQLite database location of the relational backend.
type SQLConfig struct {
	Path string `json:"path"`
}

const sqlSchema = `
CREATE TABLE IF NOT EXISTS users (
	uuid         TEXT PRIMARY KEY,
	username     TEXT NOT NULL UNIQUE,
	password     TEXT NOT NULL,
	access_token TEXT,
	server_id    TEXT
);
`

// SQLProvider verifies credentials against a local SQLite database.
type SQLProvider struct {
	db *sql.DB
}

func NewSQLProvider(config SQLConfig) (*SQLProvider, error) {
	db, err := sql.Open("sqlite", config.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &ProviderError{Message: "Can't connect"}
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLProvider{db: db}, nil
}

func (provider *SQLProvider) Close() error {
	return provider.db.Close()
}

func (provider *SQLProvider) Auth(login, password, ip string) (Result, error) {
	var (
		rawUUID string
		stored  string
	)
	err := provider.db.QueryRow(
		`SELECT uuid, password FROM users WHERE username = ?`, login,
	).Scan(&rawUUID, &stored)
	if errors.Is(err, sql.ErrNoRows) {
		message := "Wrong login or password"
		return Result{Message: &message}, nil
	}
	if err != nil {
		return Result{}, &ProviderError{Message: "Can't connect"}
	}

	if stored != password {
		message := "Wrong login or password"
		return Result{Message: &message}, nil
	}

	id, err := uuid.Parse(rawUUID)
	if err != nil {
		return Result{}, &ProviderError{Message: "Can't parse json"}
	}
	return Result{UUID: &id}, nil
}

func (provider *SQLProvider) getEntry(query string, arg interface{}) (Entry, error) {
	var (
		entry   Entry
		rawUUID string
	)
	err := provider.db.QueryRow(query, arg).Scan(&rawUUID, &entry.Username, &entry.AccessToken, &entry.ServerID)
	if err != nil {
		return Entry{}, &ProviderError{Message: "Can't connect"}
	}

	entry.UUID, err = uuid.Parse(rawUUID)
	if err != nil {
		return Entry{}, &ProviderError{Message: "Can't parse json"}
	}
	return entry, nil
}

func (provider *SQLProvider) GetEntry(id uuid.UUID) (Entry, error) {
	return provider.getEntry(
		`SELECT uuid, username, access_token, server_id FROM users WHERE uuid = ?`, id.String())
}

func (provider *SQLProvider) GetEntryFromName(username string) (Entry, error) {
	return provider.getEntry(
		`SELECT uuid, username, access_token, server_id FROM users WHERE username = ?`, username)
}

func (provider *SQLProvider) update(query string, value string, id uuid.UUID) error {
	result, err := provider.db.Exec(query, value, id.String())
	if err != nil {
		return &ProviderError{Message: "Can't connect"}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &ProviderError{Message: "Unknown identity"}
	}
	return nil
}

func (provider *SQLProvider) UpdateAccessToken(id uuid.UUID, token string) error {
	return provider.update(`UPDATE users SET access_token = ? WHERE uuid = ?`, token, id)
}

func (provider *SQLProvider) UpdateServerID(id uuid.UUID, serverID string) error {
	return provider.update(`UPDATE users SET server_id = ? WHERE uuid = ?`, serverID, id)
}
