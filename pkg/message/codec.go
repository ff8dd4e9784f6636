// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package message

import (
	"encoding/json"
	"fmt"
)

// frame is the on-wire envelope: discriminator plus variant payload.
type frame struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// UnknownKindError is returned when a frame carries a discriminator outside
// the closed set. The server read loop drops such frames without answering.
type UnknownKindError struct {
	Type Kind
}

func (err *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown message kind %q", string(err.Type))
}

func encode(kind Kind, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(frame{Type: kind, Payload: raw})
}

// EncodeClient serialises a request frame.
func EncodeClient(msg ClientMessage) ([]byte, error) {
	return encode(msg.Kind(), msg)
}

// EncodeServer serialises a response frame.
func EncodeServer(msg ServerMessage) ([]byte, error) {
	return encode(msg.Kind(), msg)
}

// DecodeClient parses a request frame. A syntactically valid frame with an
// out-of-set discriminator yields an UnknownKindError.
func DecodeClient(data []byte) (ClientMessage, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	switch f.Type {
	case KindAuth:
		var msg AuthMessage
		return msg, json.Unmarshal(f.Payload, &msg)
	case KindProfiles:
		var msg ProfilesMessage
		if len(f.Payload) == 0 {
			return msg, nil
		}
		return msg, json.Unmarshal(f.Payload, &msg)
	case KindProfileResources:
		var msg ProfileResourcesMessage
		return msg, json.Unmarshal(f.Payload, &msg)
	default:
		return nil, &UnknownKindError{Type: f.Type}
	}
}

// DecodeServer parses a response frame.
func DecodeServer(data []byte) (ServerMessage, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	switch f.Type {
	case KindAuth:
		var msg AuthResponse
		return msg, json.Unmarshal(f.Payload, &msg)
	case KindProfiles:
		var msg ProfilesResponse
		return msg, json.Unmarshal(f.Payload, &msg)
	case KindProfileResources:
		var msg ProfileResourcesResponse
		return msg, json.Unmarshal(f.Payload, &msg)
	case KindError:
		var msg ErrorResponse
		return msg, json.Unmarshal(f.Payload, &msg)
	default:
		return nil, &UnknownKindError{Type: f.Type}
	}
}
