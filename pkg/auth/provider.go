// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth abstracts the credential-verification backend of the launch
// server. Backends share one small interface; the server holds a single
// read-mostly Provider handle for all connections.
package auth

import (
	"fmt"

	"github.com/google/uuid"
)

// Entry is the server-side identity record held by a backend.
type Entry struct {
	AccessToken *string   `json:"accessToken"`
	ServerID    *string   `json:"serverId"`
	UUID        uuid.UUID `json:"uuid"`
	Username    string    `json:"username"`
}

// Result is a backend's answer to an authentication attempt. A non-nil
// Message signals a soft failure (bad credentials, backend-side veto) as
// opposed to a hard transport or parse failure, which is returned as an error.
type Result struct {
	UUID    *uuid.UUID `json:"uuid"`
	Message *string    `json:"message"`
}

// ProviderError is the single error kind surfaced by backends. Unreachable
// backends and unparsable responses both map onto it; the distinction is not
// propagated further.
type ProviderError struct {
	Message string
}

func (err *ProviderError) Error() string {
	return err.Message
}

// Provider is the pluggable credential backend.
//
// UpdateAccessToken and UpdateServerID report persistence failures so callers
// can withhold their answer to the client until the write is confirmed.
type Provider interface {
	Auth(login, password, ip string) (Result, error)
	GetEntry(id uuid.UUID) (Entry, error)
	GetEntryFromName(username string) (Entry, error)
	UpdateAccessToken(id uuid.UUID, token string) error
	UpdateServerID(id uuid.UUID, serverID string) error
}

// Backend kinds of the configuration union.
const (
	KindJSON   = "json"
	KindSQL    = "sql"
	KindAccept = "accept"
)

// Config is the tagged auth backend selection of the server configuration.
type Config struct {
	Kind string      `json:"kind"`
	JSON *JSONConfig `json:"json,omitempty"`
	SQL  *SQLConfig  `json:"sql,omitempty"`
}

// DefaultConfig selects the accept-all backend, which the operator must swap
// out before auth messages are used.
func DefaultConfig() Config {
	return Config{Kind: KindAccept}
}

// Provider constructs the configured backend.
func (config Config) Provider() (Provider, error) {
	switch config.Kind {
	case KindJSON:
		if config.JSON == nil {
			return nil, fmt.Errorf("auth kind %q requires a json block", config.Kind)
		}
		return NewJSONProvider(*config.JSON), nil
	case KindSQL:
		if config.SQL == nil {
			return nil, fmt.Errorf("auth kind %q requires a sql block", config.Kind)
		}
		return NewSQLProvider(*config.SQL)
	case KindAccept, "":
		return AcceptProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown auth kind %q", config.Kind)
	}
}
