// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client implements the client side of the session protocol: one
// persistent websocket connection with strictly ordered request/response
// pairs, plus the typed wrappers the launcher uses.
package client

import (
	"fmt"
	"net/url"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"

	"github.com/nsl-launcher/nsl-go/pkg/launch"
	"github.com/nsl-launcher/nsl-go/pkg/message"
	"github.com/nsl-launcher/nsl-go/pkg/optional"
	"github.com/nsl-launcher/nsl-go/pkg/profile"
	"github.com/nsl-launcher/nsl-go/pkg/security"
)

// AuthError is a soft authentication failure reported by the server.
type AuthError struct {
	Msg string
}

func (err *AuthError) Error() string {
	return err.Msg
}

// Client owns one session. The protocol carries no correlation ids, so only
// one request may be in flight; SendRequest serialises callers on a mutex.
type Client struct {
	conn   *websocket.Conn
	bridge security.Bridge

	requestMutex sync.Mutex

	stateMutex sync.Mutex
	state      State
	lastErr    error
}

// origin derives the HTTP origin matching a websocket URL.
func origin(wsURL *url.URL) string {
	scheme := "http"
	if wsURL.Scheme == "wss" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, wsURL.Host)
}

// Connect opens the session. The bridge supplies the encrypt/decrypt
// capability for sensitive fields of this session.
func Connect(address string, bridge security.Bridge) (*Client, error) {
	client := &Client{bridge: bridge, state: StateConnecting}

	wsURL, err := url.Parse(address)
	if err != nil {
		return nil, client.fail(err)
	}

	conn, err := websocket.Dial(address, "", origin(wsURL))
	if err != nil {
		return nil, client.fail(err)
	}

	log.WithField("address", address).Info("Session opened")

	client.conn = conn
	return client, nil
}

// Close tears the session down.
func (client *Client) Close() error {
	client.setState(StateDisconnected)
	if client.conn == nil {
		return nil
	}
	return client.conn.Close()
}

// State returns the current session state.
func (client *Client) State() State {
	client.stateMutex.Lock()
	defer client.stateMutex.Unlock()
	return client.state
}

// LastError returns the error that caused the last fall-back to
// StateDisconnected, if any.
func (client *Client) LastError() error {
	client.stateMutex.Lock()
	defer client.stateMutex.Unlock()
	return client.lastErr
}

func (client *Client) setState(state State) {
	client.stateMutex.Lock()
	client.state = state
	client.stateMutex.Unlock()
}

func (client *Client) fail(err error) error {
	client.stateMutex.Lock()
	client.state = StateDisconnected
	client.lastErr = err
	client.stateMutex.Unlock()
	return err
}

// SendRequest writes one request frame and reads exactly one response frame.
// Transport and decode failures disconnect the session.
func (client *Client) SendRequest(request message.ClientMessage) (message.ServerMessage, error) {
	client.requestMutex.Lock()
	defer client.requestMutex.Unlock()

	data, err := message.EncodeClient(request)
	if err != nil {
		return nil, client.fail(err)
	}
	if err := websocket.Message.Send(client.conn, string(data)); err != nil {
		return nil, client.fail(err)
	}

	var frame string
	if err := websocket.Message.Receive(client.conn, &frame); err != nil {
		return nil, client.fail(err)
	}

	response, err := message.DecodeServer([]byte(frame))
	if err != nil {
		return nil, client.fail(err)
	}
	return response, nil
}

// Auth encrypts the password, performs the auth round trip and maps the
// response onto a typed result.
func (client *Client) Auth(login, password string) (message.AuthResponse, error) {
	client.setState(StateAuthenticating)

	encrypted, err := client.bridge.Encrypt(password)
	if err != nil {
		return message.AuthResponse{}, client.fail(err)
	}

	response, err := client.SendRequest(message.AuthMessage{Login: login, Password: encrypted})
	if err != nil {
		return message.AuthResponse{}, err
	}

	switch response := response.(type) {
	case message.AuthResponse:
		client.setState(StateAuthenticated)
		return response, nil
	case message.ErrorResponse:
		return message.AuthResponse{}, &AuthError{Msg: response.Msg}
	default:
		return message.AuthResponse{}, &AuthError{Msg: "Auth not found"}
	}
}

// Profiles fetches the server's profile catalog summary.
func (client *Client) Profiles() ([]message.ProfileSummary, error) {
	client.setState(StateFetchingProfile)

	response, err := client.SendRequest(message.ProfilesMessage{})
	if err != nil {
		return nil, err
	}

	switch response := response.(type) {
	case message.ProfilesResponse:
		return response.Profiles, nil
	case message.ErrorResponse:
		return nil, &AuthError{Msg: response.Msg}
	default:
		return nil, &AuthError{Msg: "Profiles not found"}
	}
}

// ProfileResources fetches the static resource listing of one profile.
func (client *Client) ProfileResources(name string) ([]string, error) {
	client.setState(StateFetchingProfile)

	response, err := client.SendRequest(message.ProfileResourcesMessage{Profile: name})
	if err != nil {
		return nil, err
	}

	switch response := response.(type) {
	case message.ProfileResourcesResponse:
		return response.List, nil
	case message.ErrorResponse:
		return nil, &AuthError{Msg: response.Msg}
	default:
		return nil, &AuthError{Msg: "Profile resources not found"}
	}
}

// Resolve runs the optional engine and the launch assembler for one launch
// attempt and advances the session to ready-to-launch.
func (client *Client) Resolve(prof profile.Profile, root string, identity launch.Identity, info optional.ClientInfo, selected []string) launch.Invocation {
	client.setState(StateResolving)
	invocation := launch.Assemble(prof, root, identity, info, selected)
	client.setState(StateReadyToLaunch)
	return invocation
}
