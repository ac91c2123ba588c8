package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mohsen-hassani/manuscript-workbench/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. ChatTimeout is
// given in seconds so config files stay plain numbers.
type JsonConfig struct {
	ServerBaseURL string `json:"server_base_url"`
	ChatEndpoint  string `json:"chat_endpoint"`
	DatabasePath  string `json:"database_path"`
	DownloadsDir  string `json:"downloads_dir"`
	ChatTimeout   int    `json:"chat_timeout_seconds"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. Empty fields leave the current value untouched, so the
// defaults -> json -> flags layering holds.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.ChatEndpoint != "" {
		cfg.ChatEndpoint = jc.ChatEndpoint
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.DownloadsDir != "" {
		cfg.DownloadsDir = jc.DownloadsDir
	}
	if jc.ChatTimeout > 0 {
		cfg.ChatTimeout = time.Duration(jc.ChatTimeout) * time.Second
	}
}
