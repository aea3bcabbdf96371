package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const ConfigFolderName = ".collie"

// Config represents the user's collie configuration.
type Config struct {
	Server    string      `json:"server"`
	Token     string      `json:"token"`
	LogLevel  string      `json:"log_level"`
	MaxDepth  int         `json:"max_depth"`
	RateLimit float64     `json:"rate_limit"`
	OAuth     OAuthConfig `json:"oauth"`
}

// OAuthConfig configures the client-credentials flow used to obtain a
// workspace token when no static token is set.
type OAuthConfig struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	TokenURL     string   `json:"token_url"`
	Scopes       []string `json:"scopes,omitempty"`
}

// DefaultConfig returns the configuration written by InitializeConfigFolder.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "warn",
		MaxDepth:  128,
		RateLimit: 5,
	}
}

// InitializeConfigFolder creates the config folder under baseDir with a
// default config.json. It returns false when the folder already existed.
func InitializeConfigFolder(baseDir string) (bool, error) {
	dir := filepath.Join(baseDir, ConfigFolderName)
	if _, err := os.Stat(dir); err == nil {
		// Fill in a config file removed by hand.
		return false, ensureConfigFile(dir)
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create %s folder: %w", ConfigFolderName, err)
	}
	if err := createDefaultConfig(dir); err != nil {
		return false, err
	}
	return true, nil
}

func ensureConfigFile(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, "config.json")); os.IsNotExist(err) {
		return createDefaultConfig(dir)
	}
	return nil
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig(dir string) error {
	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
