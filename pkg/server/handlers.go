// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package server

import (
	"crypto/rand"
	"fmt"
	"io/fs"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/nsl-launcher/nsl-go/pkg/message"
	"github.com/nsl-launcher/nsl-go/pkg/profile"
)

// newAccessToken draws an unpredictable 128-bit token, hex encoded. Tokens
// are generated fresh on every successful authentication.
func newAccessToken() (string, error) {
	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", tokenBytes), nil
}

// handleAuth verifies credentials through the auth provider and answers with
// a freshly issued access token. The token is persisted before the client is
// answered; an unconfirmed write yields an error response instead.
func (server *Server) handleAuth(request message.AuthMessage, remoteIP string, outbound chan<- message.ServerMessage) {
	password, err := server.options.Bridge.Decrypt(request.Password)
	if err != nil {
		log.WithFields(log.Fields{
			"login": request.Login,
			"error": err,
		}).Debug("Password decryption failed")
		outbound <- message.ErrorResponse{Msg: "Can't decrypt password"}
		return
	}

	result, err := server.options.Provider.Auth(request.Login, password, remoteIP)
	if err != nil {
		outbound <- message.ErrorResponse{Msg: err.Error()}
		return
	}
	if result.Message != nil {
		outbound <- message.ErrorResponse{Msg: *result.Message}
		return
	}
	if result.UUID == nil {
		log.WithField("login", request.Login).Error("Auth backend returned neither uuid nor message")
		outbound <- message.ErrorResponse{Msg: "Can't get uuid"}
		return
	}

	token, err := newAccessToken()
	if err != nil {
		outbound <- message.ErrorResponse{Msg: "Can't generate access token"}
		return
	}

	if err := server.options.Provider.UpdateAccessToken(*result.UUID, token); err != nil {
		log.WithFields(log.Fields{
			"uuid":  result.UUID,
			"error": err,
		}).Error("Failed to persist access token")
		outbound <- message.ErrorResponse{Msg: "Can't save access token"}
		return
	}

	log.WithFields(log.Fields{
		"login": request.Login,
		"uuid":  result.UUID,
	}).Info("Authenticated")

	outbound <- message.AuthResponse{
		UUID:        result.UUID.String(),
		AccessToken: token,
	}
}

// handleProfiles answers the catalog summary list.
func (server *Server) handleProfiles(outbound chan<- message.ServerMessage) {
	outbound <- message.ProfilesResponse{
		Profiles: profile.GetCatalogSingleton().Summaries(),
	}
}

// handleProfileResources lists the static resource files of one configured
// profile. The listing holds paths relative to the profile's static
// directory, in directory-walk order.
func (server *Server) handleProfileResources(request message.ProfileResourcesMessage, outbound chan<- message.ServerMessage) {
	if !profile.GetCatalogSingleton().Contains(request.Profile) {
		outbound <- message.ErrorResponse{Msg: "This profile doesn't exist!"}
		return
	}

	root := filepath.Join(server.options.StaticDir, request.Profile)
	list := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.Type().IsRegular() {
			return nil
		}
		relative, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		list = append(list, filepath.ToSlash(relative))
		return nil
	})
	if err != nil {
		log.WithFields(log.Fields{
			"profile": request.Profile,
			"error":   err,
		}).Debug("Static directory walk failed")
	}

	outbound <- message.ProfileResourcesResponse{List: list}
}
