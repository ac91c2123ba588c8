package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-a", "https://wb.example/api", "-w", "wss://wb.example/chat", "-d", "x.db", "-o", "dl"},
			expected: Config{
				ServerBaseURL: "https://wb.example/api",
				ChatEndpoint:  "wss://wb.example/chat",
				DatabasePath:  "x.db",
				DownloadsDir:  "dl",
			},
		},
		{
			name:     "no flags keeps current values",
			args:     []string{"cmd"},
			expected: Config{ServerBaseURL: "keep", ChatEndpoint: "keep", DatabasePath: "keep", DownloadsDir: "keep"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := tt.expected
			if tt.name == "all flags set" {
				config = Config{}
			}

			require.NotPanics(t, func() { parseFlags(&config) })
			assert.Equal(t, tt.expected.ServerBaseURL, config.ServerBaseURL)
			assert.Equal(t, tt.expected.ChatEndpoint, config.ChatEndpoint)
			assert.Equal(t, tt.expected.DatabasePath, config.DatabasePath)
			assert.Equal(t, tt.expected.DownloadsDir, config.DownloadsDir)
		})
	}
}
