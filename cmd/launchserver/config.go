package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/nsl-launcher/nsl-go/pkg/auth"
	"github.com/nsl-launcher/nsl-go/pkg/server"
)

type ConfigError struct {
	message string
	cause   error
}

func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{message: message, cause: cause}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Error during config parsing: %v", e.message)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// jsonConfig is the on-disk configuration. Environment variables override
// file values after decoding.
type jsonConfig struct {
	BindAddress    string             `json:"bindAddress" env:"NSL_BIND_ADDRESS"`
	Auth           auth.Config        `json:"auth"`
	Texture        server.TextureInfo `json:"texture"`
	FileServer     string             `json:"fileServer" env:"NSL_FILE_SERVER"`
	WebsocketURL   string             `json:"websocketUrl" env:"NSL_WEBSOCKET_URL"`
	ProjectName    string             `json:"projectName" env:"NSL_PROJECT_NAME"`
	StaticDir      string             `json:"staticDir" env:"NSL_STATIC_DIR"`
	ProfilesDir    string             `json:"profilesDir" env:"NSL_PROFILES_DIR"`
	SecretKey      string             `json:"secretKey" env:"NSL_SECRET_KEY"`
	LogLevel       string             `json:"logLevel" env:"NSL_LOG_LEVEL"`
	ReloadInterval string             `json:"reloadInterval" env:"NSL_RELOAD_INTERVAL"`
}

type config struct {
	jsonConfig
	reloadInterval time.Duration
}

func defaultConfig() jsonConfig {
	return jsonConfig{
		BindAddress: "127.0.0.1:8080",
		Auth:        auth.DefaultConfig(),
		Texture: server.TextureInfo{
			SkinURL: "http://example.com/skin/{username}.png",
			CapeURL: "http://example.com/cape/{username}.png",
		},
		FileServer:     "http://127.0.0.1:8080/files",
		WebsocketURL:   "ws://127.0.0.1:8080",
		ProjectName:    "NSL",
		StaticDir:      "static",
		ProfilesDir:    "profiles",
		LogLevel:       "info",
		ReloadInterval: "5m",
	}
}

func parse(filename string) (config, error) {
	jsonConf := defaultConfig()

	f, err := os.Open(filename)
	if err != nil {
		return config{}, NewConfigError("Can't read config file", err)
	}
	decoder := json.NewDecoder(f)
	err = decoder.Decode(&jsonConf)
	_ = f.Close()
	if err != nil {
		return config{}, NewConfigError("Error parsing json", err)
	}

	if err := env.Parse(&jsonConf); err != nil {
		return config{}, NewConfigError("Error parsing environment overrides", err)
	}

	interval, err := time.ParseDuration(jsonConf.ReloadInterval)
	if err != nil {
		return config{}, NewConfigError("Error parsing reloadInterval", err)
	}

	return config{jsonConfig: jsonConf, reloadInterval: interval}, nil
}
