// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package server implements the server side of the session protocol: one
// websocket endpoint owning persistent, message-framed connections, plus the
// HTTP surface for static profile files and texture URLs.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"

	"github.com/nsl-launcher/nsl-go/pkg/auth"
	"github.com/nsl-launcher/nsl-go/pkg/security"
)

// TextureInfo carries the skin/cape URL templates advertised to clients.
// "{username}" inside a template is substituted per request.
type TextureInfo struct {
	SkinURL string `json:"skinUrl"`
	CapeURL string `json:"capeUrl"`
}

// Options wires the server's collaborators and directories.
type Options struct {
	BindAddress string
	StaticDir   string
	Texture     TextureInfo
	Provider    auth.Provider
	Bridge      security.Bridge
}

// Server owns the listening socket and all client sessions. Besides the
// shared auth provider and profile catalog there is no cross-connection state.
type Server struct {
	options    Options
	httpServer *http.Server
}

func NewServer(options Options) *Server {
	server := &Server{options: options}

	router := mux.NewRouter()
	router.Handle("/api", websocket.Handler(server.handleSession))
	router.PathPrefix("/files/").Handler(
		http.StripPrefix("/files/", http.FileServer(http.Dir(options.StaticDir))))
	router.HandleFunc("/textures/{username}", server.handleTextures).Methods(http.MethodGet)

	server.httpServer = &http.Server{
		Addr:              options.BindAddress,
		Handler:           router,
		ReadHeaderTimeout: 60 * time.Second,
	}

	return server
}

// Handler exposes the server's routes, mainly for tests.
func (server *Server) Handler() http.Handler {
	return server.httpServer.Handler
}

// Start begins serving in the background.
func (server *Server) Start() error {
	log.WithField("address", server.options.BindAddress).Info("Starting launch server")

	go func() {
		if err := server.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Launch server terminated")
		}
	}()

	return nil
}

// Shutdown closes the listener and drains open connections.
func (server *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Error shutting down launch server")
	}
}

// handleTextures answers the texture URLs for one username.
func (server *Server) handleTextures(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	info := TextureInfo{
		SkinURL: strings.ReplaceAll(server.options.Texture.SkinURL, "{username}", username),
		CapeURL: strings.ReplaceAll(server.options.Texture.CapeURL, "{username}", username),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := writeJSON(w, info); err != nil {
		log.WithError(err).Warn("Failed to write texture response")
	}
}
