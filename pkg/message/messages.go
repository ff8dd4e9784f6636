// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package message defines the closed set of frames exchanged between the
// launcher and the launch server, together with their JSON wire form.
//
// Every frame is a single JSON object with a "type" discriminator and a
// lower-camel-case payload. Each request kind has exactly one matching
// response kind; Error is the shared failure response.
package message

type Kind string

const (
	KindAuth             Kind = "auth"
	KindProfiles         Kind = "profiles"
	KindProfileResources Kind = "profileResources"
	KindError            Kind = "error"
)

// ClientMessage is a request frame sent by the launcher. The set of
// implementations is closed; dispatch is an exhaustive type switch.
type ClientMessage interface {
	Kind() Kind
	clientMessage()
}

// ServerMessage is a response frame sent by the launch server.
type ServerMessage interface {
	Kind() Kind
	serverMessage()
}

// AuthMessage carries the login and the bridge-encrypted password.
// The password never crosses the wire in plaintext.
type AuthMessage struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (AuthMessage) Kind() Kind     { return KindAuth }
func (AuthMessage) clientMessage() {}

// ProfilesMessage requests the server's profile catalog summary.
type ProfilesMessage struct{}

func (ProfilesMessage) Kind() Kind     { return KindProfiles }
func (ProfilesMessage) clientMessage() {}

// ProfileResourcesMessage requests the static resource listing of one profile.
type ProfileResourcesMessage struct {
	Profile string `json:"profile"`
}

func (ProfileResourcesMessage) Kind() Kind     { return KindProfileResources }
func (ProfileResourcesMessage) clientMessage() {}

// AuthResponse is the successful answer to an AuthMessage.
type AuthResponse struct {
	UUID        string `json:"uuid"`
	AccessToken string `json:"accessToken"`
}

func (AuthResponse) Kind() Kind     { return KindAuth }
func (AuthResponse) serverMessage() {}

// OptionalSummary describes one user-selectable optional of a profile.
type OptionalSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProfileSummary is one entry of the catalog answer. Only visible optionals
// are listed; rule evaluation happens on the client, which knows its own
// environment.
type ProfileSummary struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Optionals []OptionalSummary `json:"optionals,omitempty"`
}

// ProfilesResponse is the successful answer to a ProfilesMessage.
type ProfilesResponse struct {
	Profiles []ProfileSummary `json:"profiles"`
}

func (ProfilesResponse) Kind() Kind     { return KindProfiles }
func (ProfilesResponse) serverMessage() {}

// ProfileResourcesResponse lists the relative paths of every regular file in
// the profile's static resource directory.
type ProfileResourcesResponse struct {
	List []string `json:"list"`
}

func (ProfileResourcesResponse) Kind() Kind     { return KindProfileResources }
func (ProfileResourcesResponse) serverMessage() {}

// ErrorResponse is the generic failure answer shared by all request kinds.
// Internal causes are never leaked beyond its coarse message.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

func (ErrorResponse) Kind() Kind     { return KindError }
func (ErrorResponse) serverMessage() {}
