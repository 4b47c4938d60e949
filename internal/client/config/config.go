// Package config loads runtime settings for the SIAP client.
//
// Sources, later ones winning: built-in defaults, an optional YAML file
// (~/.siap/config.yaml or ./config.yaml), then SIAP_* environment
// variables. An optional .env file is loaded first so both the file and
// the process environment can provide the variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultServerAddress matches the development default of the SIAP web
// client.
const DefaultServerAddress = "http://localhost:5000"

// Config holds runtime settings for the SIAP client.
type Config struct {
	// ServerAddress is the base URL of the SIAP API, without a
	// trailing slash.
	ServerAddress string

	// Env selects the runtime profile; "dev" enables debug logging.
	Env string

	// DataDir is where the client keeps local state such as the
	// persisted session token.
	DataDir string

	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration
}

// Load builds a Config from defaults, the optional config file and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v.SetDefault("server_address", DefaultServerAddress)
	v.SetDefault("env", "prod")
	v.SetDefault("data_dir", filepath.Join(home, ".siap"))
	v.SetDefault("request_timeout", 30*time.Second)

	v.SetEnvPrefix("SIAP")
	v.AutomaticEnv()
	// SIAP_API_URL is the name the web client uses; keep accepting it.
	_ = v.BindEnv("server_address", "SIAP_API_URL", "SIAP_SERVER_ADDRESS")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, ".siap"))
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		ServerAddress:  v.GetString("server_address"),
		Env:            v.GetString("env"),
		DataDir:        v.GetString("data_dir"),
		RequestTimeout: v.GetDuration("request_timeout"),
	}, nil
}
