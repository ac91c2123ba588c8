package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.ServerBaseURL)
	assert.Equal(t, "workbench.db", cfg.DatabasePath)
	assert.Equal(t, "downloads", cfg.DownloadsDir)
	assert.Equal(t, 30*time.Second, cfg.ChatTimeout)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", "https://wb.example/api", "-d", "/tmp/wb.db"}

	cfg := LoadConfig()

	assert.Equal(t, "https://wb.example/api", cfg.ServerBaseURL)
	assert.Equal(t, "/tmp/wb.db", cfg.DatabasePath)
	// untouched fields keep their defaults
	assert.Equal(t, "downloads", cfg.DownloadsDir)
}
