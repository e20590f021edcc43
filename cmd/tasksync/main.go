package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasksync/internal/app"
	"github.com/nhle/tasksync/internal/cache"
	"github.com/nhle/tasksync/internal/credential"
	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/remote"
	"github.com/nhle/tasksync/internal/store"
	appsync "github.com/nhle/tasksync/internal/sync"
)

// tokenEnvVar overrides the keyring-stored API token when set.
const tokenEnvVar = "TASKSYNC_TOKEN"

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	setToken := flag.String("set-token", "", "store the API token in the system keyring and exit")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *setToken != "" {
		tokens, err := credential.Open()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open keyring: %v\n", err)
			os.Exit(1)
		}
		if err := tokens.StoreToken(cfg.API.TokenKey, *setToken); err != nil {
			fmt.Fprintf(os.Stderr, "failed to store token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("token stored")
		return
	}

	tokens, err := credential.Open()
	if err != nil {
		// Requests go out unauthenticated; a 401 surfaces in the UI.
		fmt.Fprintf(os.Stderr, "warning: keyring unavailable: %v\n", err)
		tokens = nil
	}

	client := remote.NewClient(
		cfg.API.BaseURL,
		tokenProvider(tokens, cfg.API.TokenKey),
		time.Duration(cfg.API.TimeoutSec)*time.Second,
	)
	repo := remote.NewAPI(client)

	taskCache, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		// The cache only serves offline fallback; run without it.
		fmt.Fprintf(os.Stderr, "warning: offline cache unavailable: %v\n", err)
		taskCache = nil
	} else {
		defer taskCache.Close()
	}

	taskStore := store.New()
	syncer := appsync.New(taskStore, repo, taskCache)
	poller := appsync.NewPoller(
		syncer,
		repo,
		time.Duration(cfg.Poll.ReminderIntervalSec)*time.Second,
		time.Duration(cfg.Poll.NotificationIntervalSec)*time.Second,
	)

	program := tea.NewProgram(app.New(syncer, poller), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}

// tokenProvider resolves the bearer token from the environment first and
// the system keyring second. Resolution happens per request so a token
// stored while the app is running is picked up without a restart.
func tokenProvider(tokens *credential.Store, tokenKey string) remote.TokenProvider {
	return func() string {
		if token := os.Getenv(tokenEnvVar); token != "" {
			return token
		}
		if tokens == nil {
			return ""
		}
		token, err := tokens.Token(tokenKey)
		if err != nil {
			return ""
		}
		return token
	}
}
