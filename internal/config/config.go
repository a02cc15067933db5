// Package config loads application configuration from environment variables.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	NotionAPIKey string
	ListenAddr   string
	DBPath       string
	SecretKey    []byte // 32-byte AES-256 key for credential storage; nil disables it.
}

// Load reads configuration from environment variables and returns a validated
// Config. The Notion API key (NOTECLIP_NOTION_API_KEY) is optional; if absent,
// the app starts and waits for a key to arrive via the settings API. Optional
// variables with defaults: NOTECLIP_LISTEN_ADDR (127.0.0.1:8090),
// NOTECLIP_DB_PATH (noteclip.db). NOTECLIP_SECRET_KEY, when set, must be a
// base64-encoded 32-byte key; without it credentials are not persisted and
// the key lives only in the environment.
func Load() (*Config, error) {
	apiKey := os.Getenv("NOTECLIP_NOTION_API_KEY")

	listenAddr := "127.0.0.1:8090"
	if v, ok := os.LookupEnv("NOTECLIP_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "noteclip.db"
	if v, ok := os.LookupEnv("NOTECLIP_DB_PATH"); ok {
		dbPath = v
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("NOTECLIP_SECRET_KEY"); ok && v != "" {
		decoded, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("NOTECLIP_SECRET_KEY is not valid base64: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("NOTECLIP_SECRET_KEY must decode to 32 bytes, got %d", len(decoded))
		}
		secretKey = decoded
	}

	return &Config{
		NotionAPIKey: apiKey,
		ListenAddr:   listenAddr,
		DBPath:       dbPath,
		SecretKey:    secretKey,
	}, nil
}
