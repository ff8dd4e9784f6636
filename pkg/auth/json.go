// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/google/uuid"
)

// JSONConfig holds the endpoints of a delegated HTTP auth backend.
type JSONConfig struct {
	AuthURL              string `json:"authUrl"`
	EntryURL             string `json:"entryUrl"`
	UpdateAccessTokenURL string `json:"updateAccessTokenUrl"`
	UpdateServerIDURL    string `json:"updateServerIdUrl"`
}

// JSONProvider delegates every provider operation to an external HTTP service
// speaking JSON POST bodies.
type JSONProvider struct {
	config JSONConfig
	client *http.Client
}

func NewJSONProvider(config JSONConfig) *JSONProvider {
	return &JSONProvider{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// post sends one JSON request and decodes the JSON answer into out. Transport
// failures and unparsable answers map onto the provider's two coarse errors.
func (provider *JSONProvider) post(url string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return &ProviderError{Message: "Can't connect"}
	}

	response, err := provider.client.Post(url, "application/json", bytes.NewReader(encoded))
	if err != nil {
		log.WithFields(log.Fields{
			"url":   url,
			"error": err,
		}).Debug("Auth backend unreachable")
		return &ProviderError{Message: "Can't connect"}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		log.WithFields(log.Fields{
			"url":    url,
			"status": response.StatusCode,
		}).Debug("Auth backend returned non-success status")
		return &ProviderError{Message: "Can't connect"}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		log.WithFields(log.Fields{
			"url":   url,
			"error": err,
		}).Debug("Auth backend answer unparsable")
		return &ProviderError{Message: "Can't parse json"}
	}
	return nil
}

func (provider *JSONProvider) Auth(login, password, ip string) (Result, error) {
	var result Result
	err := provider.post(provider.config.AuthURL, map[string]string{
		"username": login,
		"password": password,
		"ip":       ip,
	}, &result)
	return result, err
}

func (provider *JSONProvider) GetEntry(id uuid.UUID) (Entry, error) {
	var entry Entry
	err := provider.post(provider.config.EntryURL, map[string]string{
		"uuid": id.String(),
	}, &entry)
	return entry, err
}

func (provider *JSONProvider) GetEntryFromName(username string) (Entry, error) {
	var entry Entry
	err := provider.post(provider.config.EntryURL, map[string]string{
		"username": username,
	}, &entry)
	return entry, err
}

func (provider *JSONProvider) UpdateAccessToken(id uuid.UUID, token string) error {
	return provider.post(provider.config.UpdateAccessTokenURL, map[string]string{
		"uuid":        id.String(),
		"accessToken": token,
	}, nil)
}

func (provider *JSONProvider) UpdateServerID(id uuid.UUID, serverID string) error {
	return provider.post(provider.config.UpdateServerIDURL, map[string]string{
		"uuid":     id.String(),
		"serverId": serverID,
	}, nil)
}
