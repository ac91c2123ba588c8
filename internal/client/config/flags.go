package config

import (
	"flag"
	"os"

	"github.com/mohsen-hassani/manuscript-workbench/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend REST API
//	-w string   websocket URL of the assistant stream
//	-d string   path of the local sqlite database
//	-o string   downloads directory
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-d", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend REST API")
	fs.StringVar(&cfg.ChatEndpoint, "w", cfg.ChatEndpoint, "websocket URL of the assistant stream")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.DownloadsDir, "o", cfg.DownloadsDir, "downloads directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
