package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/api"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/auth"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/chat"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/client"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/config"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/metadata"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/sync"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/vault"
	"github.com/mohsen-hassani/manuscript-workbench/internal/logging"
)

// App holds the wired services behind the interactive shell.
type App struct {
	config   *config.Config
	api      api.Client
	chat     *chat.Client
	engine   *sync.Engine
	repos    *client.Repositories
	probe    *vault.Probe
	verifier *vault.Verifier
	log      logging.Logger

	loggedIn  bool
	userEmail string
	projectID int64

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the whole client: database and repositories, REST and chat
// transports, and the sync engine with console implementations of its
// interactive collaborators.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	out := io.Writer(os.Stdout)

	apiClient := api.NewHTTPClient(cfg.ServerBaseURL)
	chatClient := chat.NewClient(cfg.ChatEndpoint, cfg.ChatTimeout, log)

	picker := &consolePicker{reader: reader, out: out}
	probe := vault.NewProbe(picker)
	verifier := vault.NewVerifier(&consolePrompter{reader: reader, out: out})

	engine := sync.NewEngine(apiClient, repos.Records, repos.Grants, sync.Options{
		Verifier:     verifier,
		Probe:        probe,
		Picker:       picker,
		Notifier:     &consoleNotifier{out: out},
		Logger:       log,
		DownloadsDir: cfg.DownloadsDir,
	})

	return &App{
		config:   cfg,
		api:      apiClient,
		chat:     chatClient,
		engine:   engine,
		repos:    repos,
		probe:    probe,
		verifier: verifier,
		log:      log,
		reader:   reader,
		out:      out,
	}, nil
}

// Run restores any saved session and enters the REPL. It returns when the
// user quits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.repos.DB.Close()

	a.restoreSession(ctx)

	fmt.Fprintln(a.out, "Manuscript workbench (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// restoreSession picks up the persisted bearer token and project selection
// from the previous run. An expired token is discarded with a hint instead of
// failing the first authenticated call later.
func (a *App) restoreSession(ctx context.Context) {
	token, err := a.repos.Metadata.Get(ctx, metadata.KeyAuthToken)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
		return
	}
	if len(token) > 0 {
		if auth.IsExpired(string(token), time.Now()) {
			fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
			_ = a.repos.Metadata.Delete(ctx, metadata.KeyAuthToken)
		} else {
			a.api.SetToken(string(token))
			a.chat.SetToken(string(token))
			a.loggedIn = true
		}
	}

	raw, err := a.repos.Metadata.Get(ctx, metadata.KeyLastProjectID)
	if err != nil || len(raw) == 0 {
		return
	}
	if id, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		a.projectID = id
	}
}

func (a *App) isLoggedIn() bool { return a.loggedIn }

func (a *App) getStatus() string {
	s := ""
	if a.userEmail != "" {
		s = a.userEmail
	}
	if a.projectID != 0 {
		s += fmt.Sprintf(" #%d", a.projectID)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// requireProject guards commands that need a project selection.
func (a *App) requireProject() error {
	if a.projectID == 0 {
		fmt.Fprintln(a.out, "Select a project first: project <id>")
		return fmt.Errorf("no project selected")
	}
	return nil
}
