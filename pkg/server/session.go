// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package server

import (
	"encoding/json"
	"io"
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"

	"github.com/nsl-launcher/nsl-go/pkg/message"
)

func writeJSON(w http.ResponseWriter, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// handleSession drives one client connection. The read loop decodes and
// dispatches frames; responses go through the outbound channel, drained by a
// separate writer goroutine, so a slow client socket never blocks decoding.
// Responses are still delivered in the order handlers produced them.
func (server *Server) handleSession(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	remoteIP := remoteAddress(conn)
	log.WithField("remote", remoteIP).Info("Session opened")

	outbound := make(chan message.ServerMessage, 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for response := range outbound {
			data, err := message.EncodeServer(response)
			if err != nil {
				log.WithError(err).Error("Failed to encode response frame")
				continue
			}
			// A failed send is terminal for this message only.
			if err := websocket.Message.Send(conn, string(data)); err != nil {
				log.WithFields(log.Fields{
					"remote": remoteIP,
					"error":  err,
				}).Error("Websocket send error")
			}
		}
	}()
	defer func() {
		close(outbound)
		<-writerDone
	}()

	for {
		var frame string
		if err := websocket.Message.Receive(conn, &frame); err != nil {
			if err != io.EOF {
				log.WithFields(log.Fields{
					"remote": remoteIP,
					"error":  err,
				}).Debug("Websocket receive error")
			}
			log.WithField("remote", remoteIP).Info("Session closed")
			return
		}

		request, err := message.DecodeClient([]byte(frame))
		if err != nil {
			// Malformed and unknown frames are dropped without an answer.
			log.WithFields(log.Fields{
				"remote": remoteIP,
				"error":  err,
			}).Debug("Dropping undecodable frame")
			continue
		}

		switch request := request.(type) {
		case message.AuthMessage:
			server.handleAuth(request, remoteIP, outbound)
		case message.ProfilesMessage:
			server.handleProfiles(outbound)
		case message.ProfileResourcesMessage:
			server.handleProfileResources(request, outbound)
		}
	}
}

func remoteAddress(conn *websocket.Conn) string {
	request := conn.Request()
	if request == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
