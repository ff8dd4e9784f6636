// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package security provides the opaque encrypt/decrypt capability for
// sensitive message fields. Key establishment and protocol design are outside
// this package: both sides construct a bridge from pre-shared key material in
// their configuration.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// Bridge encrypts and decrypts sensitive fields exchanged over the session.
// Both directions operate on printable strings so results can be embedded in
// text frames directly.
type Bridge interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// AESBridge is a Bridge over AES-GCM with a fixed session key. Output is
// base64 of nonce||ciphertext.
type AESBridge struct {
	aead cipher.AEAD
}

// NewAESBridge builds a bridge from base64 key material of AES key length.
func NewAESBridge(keyMaterial string) (*AESBridge, error) {
	key, err := base64.StdEncoding.DecodeString(keyMaterial)
	if err != nil {
		return nil, fmt.Errorf("invalid key material: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESBridge{aead: aead}, nil
}

func (bridge *AESBridge) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, bridge.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := bridge.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (bridge *AESBridge) Decrypt(ciphertext string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext: %w", err)
	}
	if len(sealed) < bridge.aead.NonceSize() {
		return "", fmt.Errorf("ciphertext shorter than nonce")
	}

	nonce, payload := sealed[:bridge.aead.NonceSize()], sealed[bridge.aead.NonceSize():]
	plaintext, err := bridge.aead.Open(nil, nonce, payload, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// PassthroughBridge leaves fields untouched. It pairs with the accept-all
// auth configuration, where no credentials are ever verified.
type PassthroughBridge struct{}

func (PassthroughBridge) Encrypt(plaintext string) (string, error)  { return plaintext, nil }
func (PassthroughBridge) Decrypt(ciphertext string) (string, error) { return ciphertext, nil }
