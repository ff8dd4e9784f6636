// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "github.com/google/uuid"

// AcceptProvider is the "no backend configured" placeholder. It allows a
// server to start without auth configuration but never authenticates anyone;
// the operator has to swap it out before auth messages are used.
type AcceptProvider struct{}

func (AcceptProvider) err() error {
	return &ProviderError{Message: "No auth backend configured"}
}

func (provider AcceptProvider) Auth(login, password, ip string) (Result, error) {
	return Result{}, provider.err()
}

func (provider AcceptProvider) GetEntry(id uuid.UUID) (Entry, error) {
	return Entry{}, provider.err()
}

func (provider AcceptProvider) GetEntryFromName(username string) (Entry, error) {
	return Entry{}, provider.err()
}

func (provider AcceptProvider) UpdateAccessToken(id uuid.UUID, token string) error {
	return provider.err()
}

func (provider AcceptProvider) UpdateServerID(id uuid.UUID, serverID string) error {
	return provider.err()
}
