// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/nsl-launcher/nsl-go/pkg/auth"
	"github.com/nsl-launcher/nsl-go/pkg/message"
	"github.com/nsl-launcher/nsl-go/pkg/profile"
	"github.com/nsl-launcher/nsl-go/pkg/security"
)

var testStaticDir string

// TestMain prepares the shared profile catalog and static directory. The
// catalog is a process-wide singleton, so it is initialised exactly once.
func TestMain(m *testing.M) {
	base, err := os.MkdirTemp("", "launchserver")
	if err != nil {
		panic(err)
	}

	profilesDir := filepath.Join(base, "profiles")
	testStaticDir = filepath.Join(base, "static")
	if err := os.MkdirAll(profilesDir, 0755); err != nil {
		panic(err)
	}
	if err := os.MkdirAll(filepath.Join(testStaticDir, "vanilla", "mods"), 0755); err != nil {
		panic(err)
	}

	files := map[string]string{
		filepath.Join(profilesDir, "vanilla.json"): `{
			"name": "vanilla",
			"version": "1.16",
			"optionals": [
				{"name": "hd", "description": "HD textures", "visible": true},
				{"enabled": false}
			]
		}`,
		filepath.Join(testStaticDir, "vanilla", "client.jar"):      "jar",
		filepath.Join(testStaticDir, "vanilla", "mods", "map.jar"): "jar",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			panic(err)
		}
	}

	if err := profile.InitialiseCatalog(profilesDir); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = os.RemoveAll(base)
	os.Exit(code)
}

// stubProvider records token persistence so tests can check ordering between
// the backend write and the client answer.
type stubProvider struct {
	id          uuid.UUID
	softMessage *string
	updateErr   error

	savedToken string
}

func (provider *stubProvider) Auth(login, password, ip string) (auth.Result, error) {
	if provider.softMessage != nil {
		return auth.Result{Message: provider.softMessage}, nil
	}
	return auth.Result{UUID: &provider.id}, nil
}

func (provider *stubProvider) GetEntry(id uuid.UUID) (auth.Entry, error) {
	return auth.Entry{UUID: id}, nil
}

func (provider *stubProvider) GetEntryFromName(username string) (auth.Entry, error) {
	return auth.Entry{UUID: provider.id, Username: username}, nil
}

func (provider *stubProvider) UpdateAccessToken(id uuid.UUID, token string) error {
	if provider.updateErr != nil {
		return provider.updateErr
	}
	provider.savedToken = token
	return nil
}

func (provider *stubProvider) UpdateServerID(id uuid.UUID, serverID string) error {
	return nil
}

func newTestSession(t *testing.T, options Options) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	if options.StaticDir == "" {
		options.StaticDir = testStaticDir
	}
	if options.Bridge == nil {
		options.Bridge = security.PassthroughBridge{}
	}
	if options.Provider == nil {
		options.Provider = auth.AcceptProvider{}
	}

	backend := httptest.NewServer(NewServer(options).Handler())
	t.Cleanup(backend.Close)

	conn, err := websocket.Dial("ws://"+backend.Listener.Addr().String()+"/api", "", backend.URL)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return backend, conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, request message.ClientMessage) message.ServerMessage {
	t.Helper()

	data, err := message.EncodeClient(request)
	if err != nil {
		t.Fatal(err)
	}
	if err := websocket.Message.Send(conn, string(data)); err != nil {
		t.Fatal(err)
	}

	var frame string
	if err := websocket.Message.Receive(conn, &frame); err != nil {
		t.Fatal(err)
	}
	response, err := message.DecodeServer([]byte(frame))
	if err != nil {
		t.Fatal(err)
	}
	return response
}

func TestAuthSuccessPersistsTokenFirst(t *testing.T) {
	provider := &stubProvider{id: uuid.New()}
	_, conn := newTestSession(t, Options{Provider: provider})

	response := roundTrip(t, conn, message.AuthMessage{Login: "Test", Password: "test"})
	authResponse, ok := response.(message.AuthResponse)
	if !ok {
		t.Fatalf("expected AuthResponse, got %T: %+v", response, response)
	}
	if authResponse.UUID != provider.id.String() {
		t.Fatalf("unexpected uuid %q", authResponse.UUID)
	}
	if authResponse.AccessToken == "" || authResponse.AccessToken != provider.savedToken {
		t.Fatalf("answered token %q, persisted token %q", authResponse.AccessToken, provider.savedToken)
	}
}

func TestAuthSoftFailure(t *testing.T) {
	msg := "Wrong login or password"
	_, conn := newTestSession(t, Options{Provider: &stubProvider{softMessage: &msg}})

	response := roundTrip(t, conn, message.AuthMessage{Login: "Test", Password: "wrong"})
	errResponse, ok := response.(message.ErrorResponse)
	if !ok || errResponse.Msg != msg {
		t.Fatalf("expected soft failure %q, got %+v", msg, response)
	}
}

func TestAuthTokenPersistenceFailure(t *testing.T) {
	provider := &stubProvider{id: uuid.New(), updateErr: fmt.Errorf("disk full")}
	_, conn := newTestSession(t, Options{Provider: provider})

	response := roundTrip(t, conn, message.AuthMessage{Login: "Test", Password: "test"})
	errResponse, ok := response.(message.ErrorResponse)
	if !ok || errResponse.Msg != "Can't save access token" {
		t.Fatalf("expected persistence failure answer, got %+v", response)
	}
}

func TestAuthWithAcceptBackend(t *testing.T) {
	_, conn := newTestSession(t, Options{})

	response := roundTrip(t, conn, message.AuthMessage{Login: "Test", Password: "test"})
	if _, ok := response.(message.ErrorResponse); !ok {
		t.Fatalf("accept-all backend must not authenticate, got %+v", response)
	}
}

func TestAuthUndecryptablePassword(t *testing.T) {
	bridge, err := security.NewAESBridge(base64.StdEncoding.EncodeToString(make([]byte, 32)))
	if err != nil {
		t.Fatal(err)
	}
	provider := &stubProvider{id: uuid.New()}
	_, conn := newTestSession(t, Options{Provider: provider, Bridge: bridge})

	response := roundTrip(t, conn, message.AuthMessage{Login: "Test", Password: "plaintext"})
	errResponse, ok := response.(message.ErrorResponse)
	if !ok || errResponse.Msg != "Can't decrypt password" {
		t.Fatalf("expected decryption failure answer, got %+v", response)
	}
}

func TestProfilesListing(t *testing.T) {
	_, conn := newTestSession(t, Options{})

	response := roundTrip(t, conn, message.ProfilesMessage{})
	profiles, ok := response.(message.ProfilesResponse)
	if !ok {
		t.Fatalf("expected ProfilesResponse, got %+v", response)
	}
	want := []message.ProfileSummary{{
		Name:      "vanilla",
		Version:   "1.16",
		Optionals: []message.OptionalSummary{{Name: "hd", Description: "HD textures"}},
	}}
	if !reflect.DeepEqual(profiles.Profiles, want) {
		t.Fatalf("got %+v, want %+v", profiles.Profiles, want)
	}
}

func TestProfileResourcesUnknownProfile(t *testing.T) {
	_, conn := newTestSession(t, Options{})

	response := roundTrip(t, conn, message.ProfileResourcesMessage{Profile: "missing"})
	errResponse, ok := response.(message.ErrorResponse)
	if !ok || errResponse.Msg != "This profile doesn't exist!" {
		t.Fatalf("expected unknown-profile answer, got %+v", response)
	}
}

func TestProfileResourcesListing(t *testing.T) {
	_, conn := newTestSession(t, Options{})

	response := roundTrip(t, conn, message.ProfileResourcesMessage{Profile: "vanilla"})
	resources, ok := response.(message.ProfileResourcesResponse)
	if !ok {
		t.Fatalf("expected ProfileResourcesResponse, got %+v", response)
	}
	want := []string{"client.jar", "mods/map.jar"}
	if !reflect.DeepEqual(resources.List, want) {
		t.Fatalf("got %v, want %v", resources.List, want)
	}
}

func TestMalformedFrameIsDropped(t *testing.T) {
	_, conn := newTestSession(t, Options{})

	// Garbage and unknown kinds get no answer; the session stays usable.
	if err := websocket.Message.Send(conn, "not json"); err != nil {
		t.Fatal(err)
	}
	if err := websocket.Message.Send(conn, `{"type":"bogus","payload":{}}`); err != nil {
		t.Fatal(err)
	}

	response := roundTrip(t, conn, message.ProfilesMessage{})
	if _, ok := response.(message.ProfilesResponse); !ok {
		t.Fatalf("session unusable after malformed frame, got %+v", response)
	}
}

func TestTexturesEndpoint(t *testing.T) {
	backend, _ := newTestSession(t, Options{Texture: TextureInfo{
		SkinURL: "http://cdn.example.com/skins/{username}.png",
		CapeURL: "http://cdn.example.com/capes/{username}.png",
	}})

	resp, err := http.Get(backend.URL + "/textures/Notch")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var info TextureInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.SkinURL != "http://cdn.example.com/skins/Notch.png" {
		t.Fatalf("username not substituted: %+v", info)
	}
	if info.CapeURL != "http://cdn.example.com/capes/Notch.png" {
		t.Fatalf("username not substituted: %+v", info)
	}
}

func TestFileServer(t *testing.T) {
	backend, _ := newTestSession(t, Options{})

	resp, err := http.Get(backend.URL + "/files/vanilla/client.jar")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("static file not served: %v", resp.Status)
	}
}
