// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package security

import (
	"encoding/base64"
	"testing"

	"pgregory.net/rapid"
)

var testKey = base64.StdEncoding.EncodeToString(make([]byte, 32))

func TestAESBridgeRoundTrip(t *testing.T) {
	bridge, err := NewAESBridge(testKey)
	if err != nil {
		t.Fatal(err)
	}

	rapid.Check(t, func(t *rapid.T) {
		plaintext := rapid.String().Draw(t, "plaintext")

		ciphertext, err := bridge.Encrypt(plaintext)
		if err != nil {
			t.Fatal(err)
		}
		if ciphertext == plaintext && plaintext != "" {
			t.Fatal("ciphertext equals plaintext")
		}

		decrypted, err := bridge.Decrypt(ciphertext)
		if err != nil {
			t.Fatal(err)
		}
		if decrypted != plaintext {
			t.Fatalf("round trip changed %q into %q", plaintext, decrypted)
		}
	})
}

func TestAESBridgeRejectsForeignKey(t *testing.T) {
	bridge, err := NewAESBridge(testKey)
	if err != nil {
		t.Fatal(err)
	}
	otherKey := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	other, err := NewAESBridge(otherKey)
	if err != nil {
		t.Fatal(err)
	}

	ciphertext, err := bridge.Encrypt("secret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Decrypt(ciphertext); err == nil {
		t.Fatal("decryption with a different key should fail")
	}
}

func TestAESBridgeRejectsGarbage(t *testing.T) {
	bridge, err := NewAESBridge(testKey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bridge.Decrypt("not-base64!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := bridge.Decrypt("aGk="); err == nil {
		t.Fatal("expected error for ciphertext shorter than nonce")
	}
}

func TestAESBridgeRejectsBadKeyMaterial(t *testing.T) {
	if _, err := NewAESBridge("###"); err == nil {
		t.Fatal("expected error for non-base64 key material")
	}
	short := base64.StdEncoding.EncodeToString([]byte("short"))
	if _, err := NewAESBridge(short); err == nil {
		t.Fatal("expected error for invalid key length")
	}
}

func TestPassthroughBridge(t *testing.T) {
	bridge := PassthroughBridge{}
	ciphertext, err := bridge.Encrypt("open")
	if err != nil || ciphertext != "open" {
		t.Fatalf("unexpected passthrough encrypt result: %q, %v", ciphertext, err)
	}
	plaintext, err := bridge.Decrypt("open")
	if err != nil || plaintext != "open" {
		t.Fatalf("unexpected passthrough decrypt result: %q, %v", plaintext, err)
	}
}
