// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package client

// State is the session-level state of a client. Any transport or decode
// failure falls back to StateDisconnected; reconnecting is the caller's
// concern, not the session's.
type State uint8

const (
	StateDisconnected State = iota
	StateConnecting
	StateAuthenticating
	StateAuthenticated
	StateFetchingProfile
	StateResolving
	StateReadyToLaunch
)

func (state State) String() string {
	switch state {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateFetchingProfile:
		return "fetchingProfile"
	case StateResolving:
		return "resolving"
	case StateReadyToLaunch:
		return "readyToLaunch"
	default:
		return "unknown"
	}
}
