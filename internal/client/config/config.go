package config

import "time"

// Config holds runtime settings for the workbench client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - ChatEndpoint: websocket URL of the assistant stream.
//   - DatabasePath: path of the local sqlite database (ledger + grants).
//   - DownloadsDir: where pulled content lands when no vault write channel
//     is available.
//   - ChatTimeout: overall timeout on one assistant exchange.
type Config struct {
	ServerBaseURL string
	ChatEndpoint  string
	DatabasePath  string
	DownloadsDir  string
	ChatTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000/api"
	c.ChatEndpoint = "ws://127.0.0.1:8000/api/chat/ws"
	c.DatabasePath = "workbench.db"
	c.DownloadsDir = "downloads"
	c.ChatTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
