package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
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

// config is the launcher's on-disk configuration with environment overrides.
type config struct {
	ServerURL string   `json:"serverUrl" env:"NSL_SERVER_URL"`
	GameDir   string   `json:"gameDir" env:"NSL_GAME_DIR"`
	SecretKey string   `json:"secretKey" env:"NSL_SECRET_KEY"`
	JavaBin   string   `json:"javaBin" env:"NSL_JAVA_BIN"`
	MainClass string   `json:"mainClass" env:"NSL_MAIN_CLASS"`
	Login     string   `json:"login" env:"NSL_LOGIN"`
	Selected  []string `json:"selected"`
}

func defaultConfig() config {
	return config{
		ServerURL: "ws://127.0.0.1:8080/api",
		GameDir:   ".",
		JavaBin:   "java",
	}
}

func parse(filename string) (config, error) {
	conf := defaultConfig()

	f, err := os.Open(filename)
	if err != nil {
		return config{}, NewConfigError("Can't read config file", err)
	}
	decoder := json.NewDecoder(f)
	err = decoder.Decode(&conf)
	_ = f.Close()
	if err != nil {
		return config{}, NewConfigError("Error parsing json", err)
	}

	if err := env.Parse(&conf); err != nil {
		return config{}, NewConfigError("Error parsing environment overrides", err)
	}

	return conf, nil
}
